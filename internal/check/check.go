// Package check provides the diagnostics behind "romsweep check": a
// read-only report over the ROMs directory, the reference directory and the
// dat file, run before committing to a cleaning pass.
package check

import (
	"errors"
	"sort"

	"github.com/backmassage/romsweep/internal/catalog"
	"github.com/backmassage/romsweep/internal/config"
	"github.com/backmassage/romsweep/internal/fsys"
	"github.com/backmassage/romsweep/internal/pattern"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Report holds what RunCheck found.
type Report struct {
	RomFiles int
	RefFiles int

	CatalogEntries int
	BIOS           []string
	Clones         int
	SampleOwners   int
	Duplicates     []string
	Cycles         [][]string
	UnknownBIOS    []string // listed in a BIOS rule but not a BIOS record
	CacheFresh     bool
}

// RunCheck prints counts for the configured directories and, when a dat file
// is set, a summary of the catalog: BIOS records, clones, sample owners,
// duplicated names and ancestry cycles. It never modifies anything. Only a
// dat file that cannot be loaded is returned as an error; everything else
// is reported and the check goes on.
func RunCheck(cfg *config.Config, log Logger) (Report, error) {
	var r Report
	fs := fsys.OS{Ignore: cfg.Ignore}

	log.Info("=== ROM Collection Check ===")
	r.RomFiles = checkDir(fs, log, "ROMs directory", cfg.RomsDir)
	if cfg.RefDir != "" {
		r.RefFiles = checkDir(fs, log, "Reference directory", cfg.RefDir)
	}

	if cfg.DatFile == "" {
		log.Info("No dat file set, skipping catalog checks")
		return r, nil
	}

	c, err := catalog.Load(cfg.DatFile)
	if err != nil {
		log.Error("Cannot load dat file: %v", err)
		return r, err
	}
	r.CatalogEntries = c.Len()
	log.Success("Dat file: %d entries", c.Len())

	checkCatalog(c, log, &r)
	checkBIOSLists(cfg, c, log, &r)
	if cfg.CatalogCache != "" {
		r.CacheFresh = checkCache(cfg, log)
	}
	return r, nil
}

// checkDir logs and returns the number of files under dir.
func checkDir(fs fsys.FS, log Logger, label, dir string) int {
	if !fs.Exists(dir) {
		log.Error("%s not found: %s", label, dir)
		return 0
	}
	n := fsys.Count(fs, dir)
	log.Info("%s: %s (%d files)", label, dir, n)
	return n
}

// checkCatalog counts record kinds and resolves every record's ancestry.
func checkCatalog(c *catalog.Catalog, log Logger, r *Report) {
	seen := make(map[string]bool)
	inCycle := make(map[string]bool)
	for _, e := range c.Entries() {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true

		if e.IsBIOS {
			r.BIOS = append(r.BIOS, e.Name)
		}
		if e.CloneOf != "" {
			r.Clones++
		}
		if e.HasSample() {
			r.SampleOwners++
		}

		if inCycle[e.Name] {
			continue
		}
		_, err := catalog.ResolveRoot(c, e.Name)
		var cycle *catalog.CycleError
		if errors.As(err, &cycle) {
			r.Cycles = append(r.Cycles, cycle.Chain)
			for _, name := range cycle.Chain {
				inCycle[name] = true
			}
		}
	}
	r.Duplicates = c.Duplicates()

	log.Info("BIOS entries: %d", len(r.BIOS))
	for _, name := range r.BIOS {
		log.Debug("  %s", name)
	}
	log.Info("Clones: %d", r.Clones)
	log.Info("Entries with samples: %d", r.SampleOwners)

	if len(r.Duplicates) > 0 {
		log.Warn("Duplicate entry names: %d (first declaration wins)", len(r.Duplicates))
		for _, name := range r.Duplicates {
			log.Debug("  %s", name)
		}
	}
	if len(r.Cycles) > 0 {
		log.Warn("Ancestry cycles: %d (files in a cycle are kept by the BIOS rules)", len(r.Cycles))
		for _, chain := range r.Cycles {
			log.Warn("  %v", chain)
		}
	} else {
		log.Success("No ancestry cycles")
	}
}

// checkBIOSLists warns about names in the BIOS rule lists that are not BIOS
// records of the catalog; such names can never match.
func checkBIOSLists(cfg *config.Config, c *catalog.Catalog, log Logger, r *Report) {
	unknown := make(map[string]bool)
	for _, raw := range []string{cfg.Rules.DelIfBIOSIs, cfg.Rules.DelIfBIOSIsnt} {
		if raw == "" {
			continue
		}
		names, err := pattern.ParseBIOSList(raw)
		if err != nil {
			log.Error("%v", err)
			continue
		}
		for _, name := range names {
			if e, ok := c.Lookup(name); !ok || !e.IsBIOS {
				unknown[name] = true
			}
		}
	}
	for name := range unknown {
		r.UnknownBIOS = append(r.UnknownBIOS, name)
	}
	sort.Strings(r.UnknownBIOS)
	for _, name := range r.UnknownBIOS {
		log.Warn("Not a BIOS in the dat file: %s", name)
	}
}

// checkCache reports whether the catalog cache matches the dat file on disk.
func checkCache(cfg *config.Config, log Logger) bool {
	fp, err := catalog.FingerprintOf(cfg.DatFile)
	if err != nil {
		log.Error("Cannot stat dat file: %v", err)
		return false
	}
	s, err := catalog.OpenStore(cfg.CatalogCache)
	if err != nil {
		log.Error("Cannot open catalog cache: %v", err)
		return false
	}
	defer s.Close()

	_, ok, err := s.Get(fp)
	switch {
	case err != nil:
		log.Error("Cannot read catalog cache: %v", err)
		return false
	case ok:
		log.Success("Catalog cache is up to date: %s", cfg.CatalogCache)
	default:
		log.Warn("Catalog cache is stale or empty; it will be refreshed on the next run")
	}
	return ok
}
