package config

// This file registers the command-line flags on a pflag.FlagSet. Long names
// and short letters are part of the command-line contract; do not rename.
// Flags are grouped into paths, name rules, dat rules, behavior and display.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Version is shown by --version; override at build time with
// -ldflags "-X github.com/backmassage/romsweep/internal/config.Version=...".
var Version = "1.0.0-dev"

// DefineFlags registers every flag of the root command, bound to cfg.
func DefineFlags(fs *pflag.FlagSet, cfg *Config) {
	definePathFlags(fs, cfg)
	defineNameRuleFlags(fs, &cfg.Rules)
	defineDatRuleFlags(fs, &cfg.Rules)
	defineBehaviorFlags(fs, cfg)
	DefineDisplayFlags(fs, cfg)
}

// definePathFlags registers -r, -d, -e, --catalog-cache, --profile, --ignore.
func definePathFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.RomsDir, "roms-dir", "r", "", "input directory, including ROM files to be cleaned")
	fs.StringVarP(&cfg.DatFile, "dat-file", "d", "", "optional XML .dat file related to the ROMs directory")
	fs.StringVarP(&cfg.RefDir, "ref-roms-dir", "e", "", "reference directory for --del-duplicates")
	fs.StringVar(&cfg.CatalogCache, "catalog-cache", "", "SQLite file caching the parsed .dat file")
	fs.StringVar(&cfg.ProfileFile, "profile", "", "YAML rule profile; command-line flags win")
	fs.StringSliceVar(&cfg.Ignore, "ignore", nil, "glob of paths to leave alone (repeatable, ** supported)")
}

// defineNameRuleFlags registers the rules driven by file names alone.
func defineNameRuleFlags(fs *pflag.FlagSet, r *RuleSet) {
	fs.BoolVarP(&r.MakeFlat, "make-flat", "m", false, "move all files up to the ROMs directory and remove subdirectories")
	fs.StringVarP(&r.DelFilesWith, "del-files-with", "w", "", "delete files matching any of the patterns, e.g. \"*(Beta)* *(Proto)*\"")
	fs.StringVarP(&r.DelFilesWithout, "del-files-without", "o", "", "delete files NOT matching all of the patterns")
	fs.BoolVarP(&r.DelFirstVariants, "del-first-variants", "f", false, "when variants of a ROM are found, delete first variants and keep last")
	fs.BoolVarP(&r.DelLastVariants, "del-last-variants", "l", false, "when variants of a ROM are found, delete last variants and keep first")
	fs.StringVarP(&r.DelVariantsWith, "del-variants-with", "g", "", "when variants of a ROM are found, delete variants matching any of the patterns")
	fs.StringVarP(&r.DelVariantsWithout, "del-variants-without", "t", "", "when variants of a ROM are found, delete variants NOT matching all of the patterns")
	fs.BoolVarP(&r.DelNTSC, "del-ntsc-versions", "n", false, "when a PAL version of a ROM is found, delete the NTSC one")
	fs.BoolVarP(&r.DelPAL, "del-pal-versions", "p", false, "when an NTSC version of a ROM is found, delete the PAL one")
}

// defineDatRuleFlags registers the rules that need --dat-file.
func defineDatRuleFlags(fs *pflag.FlagSet, r *RuleSet) {
	fs.BoolVarP(&r.DelDuplicates, "del-duplicates", "u", false, "delete ROMs also present, with the same size, in --ref-roms-dir")
	fs.BoolVarP(&r.DelClones, "del-roms-clones", "c", false, "delete ROMs being 'cloneof', 'sampleof' or non-BIOS 'romof' other ROMs")
	fs.BoolVarP(&r.DelWithSamples, "del-roms-with-samples", "s", false, "delete ROMs using sound samples and every samples directory")
	fs.IntVarP(&r.DelOlderThan, "del-roms-older-than", "a", 0, "delete ROMs with a year older than this one")
	fs.StringVarP(&r.DelIfDescriptionHas, "del-if-description-has", "i", "", "delete ROMs with a description matching any of the patterns")
	fs.StringVarP(&r.DelIfManufacturerHas, "del-if-manufacturer-has", "j", "", "delete ROMs with a manufacturer matching any of the patterns")
	fs.StringVarP(&r.DelIfCommentHas, "del-if-comment-has", "k", "", "delete ROMs with a comment matching any of the patterns")
	fs.StringVarP(&r.DelIfBIOSIs, "del-if-bios-is", "b", "", "delete ROMs whose root BIOS is one of these, e.g. \"neogeo pgm\"")
	fs.StringVarP(&r.DelIfBIOSIsnt, "del-if-bios-isnt", "z", "", "delete ROMs whose root BIOS is NOT one of these")
}

// defineBehaviorFlags registers -y/--dry-run.
func defineBehaviorFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.DryRun, "dry-run", "y", false, "report decisions only; no file is deleted or moved")
}

// DefineDisplayFlags registers verbosity, color, log file, tree and
// metrics flags. Subcommands share them.
func DefineDisplayFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "debug output")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", false, "warnings and errors only")
	fs.Var(&colorModeValue{&cfg.ColorMode}, "color", "colored logs: auto | always | never")
	fs.StringVar(&cfg.LogFile, "log", "", "also write JSON logs to this file (rotated)")
	fs.BoolVar(&cfg.Tree, "tree", false, "print a tree of the decisions after the run")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
}

// colorModeValue adapts ColorMode to pflag.Value.
type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "mode" }
func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
