package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/backmassage/romsweep/internal/check"
	"github.com/backmassage/romsweep/internal/config"
	"github.com/backmassage/romsweep/internal/logging"
)

func newCheckCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report on the ROMs directory, reference directory and dat file without changing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.RomsDir = config.NormalizeDirArg(cfg.RomsDir)
			cfg.RefDir = config.NormalizeDirArg(cfg.RefDir)
			if cfg.RomsDir == "" {
				return usageError{errors.New("missing input path to ROMs directory (set --roms-dir)")}
			}
			if err := cfg.ApplyProfile(); err != nil {
				return usageError{err}
			}

			log, err := logging.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			_, err = check.RunCheck(cfg, log)
			return err
		},
	}
}
