// Package config holds runtime configuration: defaults, CLI flags, rule
// profiles and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/romsweep/internal/fsys"
	"github.com/backmassage/romsweep/internal/pattern"
	"github.com/backmassage/romsweep/internal/rules"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by the command-line flags and an optional rule profile, before being
// passed (by pointer) to the packages that need it.
type Config struct {
	// Paths.
	RomsDir      string   // Directory to clean (required).
	DatFile      string   // Optional XML dat file describing RomsDir.
	RefDir       string   // Reference directory for --del-duplicates.
	CatalogCache string   // Optional SQLite file caching the parsed dat.
	ProfileFile  string   // Optional YAML rule profile.
	Ignore       []string // Doublestar globs, relative to the walked root.

	// Rules to run, in the fixed pipeline order.
	Rules RuleSet

	// Behavior.
	DryRun bool

	// Display and logging.
	Verbose     bool
	Quiet       bool
	ColorMode   ColorMode // Default: "auto".
	LogFile     string    // Optional rotating JSON log file.
	Tree        bool      // Print a tree of the decisions after the run.
	MetricsFile string    // Optional Prometheus textfile export.
}

// DefaultConfig returns a Config with every rule disabled.
func DefaultConfig() Config {
	return Config{
		ColorMode: ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks the settings before any rule runs: enums, required and
// existing paths, rule prerequisites and the syntax of every pattern list.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if c.Verbose && c.Quiet {
		return errors.New("--verbose and --quiet are mutually exclusive")
	}

	if c.RomsDir == "" {
		return errors.New("missing input path to ROMs directory (set --roms-dir)")
	}
	if !isDir(c.RomsDir) {
		return fmt.Errorf("%s directory: %w", c.RomsDir, rules.ErrNotFound)
	}
	if c.DatFile != "" && !isFile(c.DatFile) {
		return fmt.Errorf("%s file: %w", c.DatFile, rules.ErrNotFound)
	}
	if c.Rules.DelDuplicates && c.RefDir == "" {
		return fmt.Errorf("%w: setting --del-duplicates requires --ref-roms-dir to be also set", rules.ErrMissingPrerequisite)
	}
	if c.RefDir != "" && !isDir(c.RefDir) {
		return fmt.Errorf("%s directory: %w", c.RefDir, rules.ErrNotFound)
	}
	if c.DatFile == "" {
		if names := c.Rules.CatalogRules(); len(names) > 0 {
			return fmt.Errorf("%w: setting --%s requires --dat-file to be also set", rules.ErrMissingPrerequisite, names[0])
		}
	}
	if c.Rules.DelOlderThan < 0 {
		return fmt.Errorf("%w: invalid year %d for --del-roms-older-than (use a positive integer)", rules.ErrBadFormat, c.Rules.DelOlderThan)
	}
	if err := c.Rules.validateLists(); err != nil {
		return err
	}
	return fsys.ValidateIgnore(c.Ignore)
}

// ValidatePaths ensures the reference directory and the ROMs directory do
// not overlap: every file would otherwise be its own duplicate. Both
// arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(romsAbs, refAbs string) error {
	sep := string(filepath.Separator)
	if refAbs == romsAbs ||
		strings.HasPrefix(refAbs+sep, romsAbs+sep) ||
		strings.HasPrefix(romsAbs+sep, refAbs+sep) {
		return errors.New("reference directory must not overlap the ROMs directory")
	}
	return nil
}

func (r RuleSet) validateLists() error {
	lists := []struct{ flag, raw string }{
		{"del-files-without", r.DelFilesWithout},
		{"del-files-with", r.DelFilesWith},
		{"del-variants-with", r.DelVariantsWith},
		{"del-variants-without", r.DelVariantsWithout},
		{"del-if-description-has", r.DelIfDescriptionHas},
		{"del-if-manufacturer-has", r.DelIfManufacturerHas},
		{"del-if-comment-has", r.DelIfCommentHas},
	}
	for _, l := range lists {
		if l.raw == "" {
			continue
		}
		if _, err := pattern.ParseList(l.raw); err != nil {
			return fmt.Errorf("--%s: %w", l.flag, err)
		}
	}
	for _, l := range []struct{ flag, raw string }{
		{"del-if-bios-is", r.DelIfBIOSIs},
		{"del-if-bios-isnt", r.DelIfBIOSIsnt},
	} {
		if l.raw == "" {
			continue
		}
		if _, err := pattern.ParseBIOSList(l.raw); err != nil {
			return fmt.Errorf("--%s: %w", l.flag, err)
		}
	}
	return nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
