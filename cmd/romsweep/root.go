package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/backmassage/romsweep/internal/config"
	"github.com/backmassage/romsweep/internal/display"
	"github.com/backmassage/romsweep/internal/logging"
	"github.com/backmassage/romsweep/internal/pipeline"
)

func newRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "romsweep",
		Short: "Clean a ROM collection using file names and an optional XML dat file",
		Long: `romsweep deletes redundant, superseded or unwanted files from a ROM
collection. Rules run in a fixed order; use --dry-run to see what would be
deleted first.`,
		Example: `  romsweep -r roms -o "*(USA)*" -l -y
  romsweep -r mame -d mame.dat -c -s -b "neogeo pgm"
  romsweep -r roms --profile arcade.yaml --tree`,
		Version:       config.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClean(cmd, &cfg)
		},
	}
	cmd.PersistentFlags().SortFlags = false
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	config.DefineFlags(cmd.PersistentFlags(), &cfg)

	cmd.AddCommand(newCheckCmd(&cfg))
	return cmd
}

// prepare applies the profile and validates cfg. Errors are usage errors.
func prepare(cfg *config.Config) error {
	cfg.RomsDir = config.NormalizeDirArg(cfg.RomsDir)
	cfg.RefDir = config.NormalizeDirArg(cfg.RefDir)
	if err := cfg.ApplyProfile(); err != nil {
		return usageError{err}
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	if cfg.RefDir == "" {
		return nil
	}
	romsAbs, err := absPath(cfg.RomsDir)
	if err != nil {
		return usageError{fmt.Errorf("cannot resolve %s: %w", cfg.RomsDir, err)}
	}
	refAbs, err := absPath(cfg.RefDir)
	if err != nil {
		return usageError{fmt.Errorf("cannot resolve %s: %w", cfg.RefDir, err)}
	}
	if err := cfg.ValidatePaths(romsAbs, refAbs); err != nil {
		return usageError{err}
	}
	return nil
}

func runClean(cmd *cobra.Command, cfg *config.Config) error {
	if err := prepare(cfg); err != nil {
		return err
	}

	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	if !cfg.Quiet {
		display.PrintBanner(cmd.OutOrStdout())
	}
	log.Info("=== romsweep v%s ===", config.Version)

	if cfg.Rules.Empty() {
		log.Warn("No rule selected, nothing to do (see --help)")
		return nil
	}

	stats, runErr := pipeline.Run(cfg, log)

	if cfg.Tree && len(stats.Decisions) > 0 {
		fmt.Fprint(cmd.OutOrStdout(), display.DecisionTree(cfg.RomsDir, stats.Decisions))
	}
	if cfg.MetricsFile != "" {
		if err := pipeline.ExportMetrics(&stats, cfg.MetricsFile); err != nil {
			log.Error("Cannot write metrics: %v", err)
		}
	}
	if runErr != nil {
		log.Error("%v", runErr)
		return runErr
	}
	if stats.Failed() > 0 {
		return fmt.Errorf("%d file(s) could not be deleted", stats.Failed())
	}
	return nil
}

// absPath returns the absolute path with symlinks resolved, for comparing
// the ROMs and reference hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
