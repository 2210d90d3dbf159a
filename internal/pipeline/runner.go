package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/romsweep/internal/catalog"
	"github.com/backmassage/romsweep/internal/config"
	"github.com/backmassage/romsweep/internal/display"
	"github.com/backmassage/romsweep/internal/fsys"
	"github.com/backmassage/romsweep/internal/logging"
	"github.com/backmassage/romsweep/internal/rules"
)

// step is one rule of the fixed pipeline order.
type step struct {
	name    string
	enabled func(r *config.RuleSet) bool
	run     func(rc *rules.Context, cfg *config.Config) error
}

var steps = []step{
	{"make-flat", func(r *config.RuleSet) bool { return r.MakeFlat },
		func(rc *rules.Context, cfg *config.Config) error { return rules.MakeFlat(rc, cfg.RomsDir) }},
	{"del-files-without", func(r *config.RuleSet) bool { return r.DelFilesWithout != "" },
		func(rc *rules.Context, cfg *config.Config) error {
			return rules.DeleteFilesWithout(rc, cfg.RomsDir, cfg.Rules.DelFilesWithout)
		}},
	{"del-files-with", func(r *config.RuleSet) bool { return r.DelFilesWith != "" },
		func(rc *rules.Context, cfg *config.Config) error {
			return rules.DeleteFilesWith(rc, cfg.RomsDir, cfg.Rules.DelFilesWith)
		}},
	{"del-ntsc", func(r *config.RuleSet) bool { return r.DelNTSC },
		func(rc *rules.Context, cfg *config.Config) error { return rules.DeleteRegion(rc, cfg.RomsDir, true) }},
	{"del-pal", func(r *config.RuleSet) bool { return r.DelPAL },
		func(rc *rules.Context, cfg *config.Config) error { return rules.DeleteRegion(rc, cfg.RomsDir, false) }},
	{"del-first-variants", func(r *config.RuleSet) bool { return r.DelFirstVariants },
		func(rc *rules.Context, cfg *config.Config) error { return rules.DeleteVariants(rc, cfg.RomsDir, true) }},
	{"del-last-variants", func(r *config.RuleSet) bool { return r.DelLastVariants },
		func(rc *rules.Context, cfg *config.Config) error { return rules.DeleteVariants(rc, cfg.RomsDir, false) }},
	{"del-variants-with", func(r *config.RuleSet) bool { return r.DelVariantsWith != "" },
		func(rc *rules.Context, cfg *config.Config) error {
			return rules.DeleteVariantsMatching(rc, cfg.RomsDir, cfg.Rules.DelVariantsWith, true)
		}},
	{"del-variants-without", func(r *config.RuleSet) bool { return r.DelVariantsWithout != "" },
		func(rc *rules.Context, cfg *config.Config) error {
			return rules.DeleteVariantsMatching(rc, cfg.RomsDir, cfg.Rules.DelVariantsWithout, false)
		}},
	{"del-duplicates", func(r *config.RuleSet) bool { return r.DelDuplicates },
		func(rc *rules.Context, cfg *config.Config) error {
			return rules.DeleteDuplicates(rc, cfg.RomsDir, cfg.RefDir)
		}},
	{"del-clones", func(r *config.RuleSet) bool { return r.DelClones },
		func(rc *rules.Context, cfg *config.Config) error { return rules.DeleteClones(rc, cfg.RomsDir) }},
	{"del-with-samples", func(r *config.RuleSet) bool { return r.DelWithSamples },
		func(rc *rules.Context, cfg *config.Config) error { return rules.DeleteWithSamples(rc, cfg.RomsDir) }},
	{"del-older-than", func(r *config.RuleSet) bool { return r.DelOlderThan != 0 },
		func(rc *rules.Context, cfg *config.Config) error {
			return rules.DeleteOlderThan(rc, cfg.RomsDir, cfg.Rules.DelOlderThan)
		}},
	{"del-if-description-has", func(r *config.RuleSet) bool { return r.DelIfDescriptionHas != "" },
		func(rc *rules.Context, cfg *config.Config) error {
			return rules.DeleteIfFieldHas(rc, cfg.RomsDir, catalog.FieldDescription, cfg.Rules.DelIfDescriptionHas)
		}},
	{"del-if-manufacturer-has", func(r *config.RuleSet) bool { return r.DelIfManufacturerHas != "" },
		func(rc *rules.Context, cfg *config.Config) error {
			return rules.DeleteIfFieldHas(rc, cfg.RomsDir, catalog.FieldManufacturer, cfg.Rules.DelIfManufacturerHas)
		}},
	{"del-if-comment-has", func(r *config.RuleSet) bool { return r.DelIfCommentHas != "" },
		func(rc *rules.Context, cfg *config.Config) error {
			return rules.DeleteIfFieldHas(rc, cfg.RomsDir, catalog.FieldComment, cfg.Rules.DelIfCommentHas)
		}},
	{"del-if-bios-is", func(r *config.RuleSet) bool { return r.DelIfBIOSIs != "" },
		func(rc *rules.Context, cfg *config.Config) error {
			return rules.DeleteByBIOS(rc, cfg.RomsDir, cfg.Rules.DelIfBIOSIs, true)
		}},
	{"del-if-bios-isnt", func(r *config.RuleSet) bool { return r.DelIfBIOSIsnt != "" },
		func(rc *rules.Context, cfg *config.Config) error {
			return rules.DeleteByBIOS(rc, cfg.RomsDir, cfg.Rules.DelIfBIOSIsnt, false)
		}},
}

// StepNames returns the rule names in pipeline order.
func StepNames() []string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.name
	}
	return names
}

// Run is the top-level entry point. It loads the catalog once, runs every
// enabled rule in the fixed order against the same context and stops at the
// first rule error. The returned stats cover the rules that ran, including
// on error.
func Run(cfg *config.Config, log *logging.Logger) (RunStats, error) {
	stats := RunStats{
		RunID:  uuid.NewString()[:8],
		DryRun: cfg.DryRun,
	}
	log = log.With("run", stats.RunID)

	idx, err := loadCatalog(cfg, log, &stats)
	if err != nil {
		return stats, err
	}

	fs := fsys.OS{Ignore: cfg.Ignore}
	rc := rules.NewContext(fs, idx, cfg.DryRun, log)

	logRunHeader(cfg, log)

	for _, s := range steps {
		if !s.enabled(&cfg.Rules) {
			continue
		}
		log.Debug("Running %s", s.name)
		before := len(rc.Tally.Rules)
		start := time.Now()
		err := s.run(rc, cfg)
		for _, rt := range rc.Tally.Rules[before:] {
			rt.Elapsed = time.Since(start)
		}
		if err != nil {
			stats.collect(rc, fs, cfg.RomsDir)
			return stats, err
		}
	}

	stats.collect(rc, fs, cfg.RomsDir)
	logSummary(log, &stats)
	return stats, nil
}

func (s *RunStats) collect(rc *rules.Context, fs fsys.FS, root string) {
	s.Tally = *rc.Tally
	s.TotalFiles = fsys.Count(fs, root)
}

// loadCatalog returns nil (and no error) when no dat file is configured.
func loadCatalog(cfg *config.Config, log *logging.Logger, stats *RunStats) (catalog.Index, error) {
	if cfg.DatFile == "" {
		return nil, nil
	}

	var c *catalog.Catalog
	var err error
	if cfg.CatalogCache != "" {
		c, stats.CacheHit, err = catalog.LoadCached(cfg.DatFile, cfg.CatalogCache)
	} else {
		c, err = catalog.Load(cfg.DatFile)
	}
	if err != nil {
		return nil, fmt.Errorf("load dat file: %w", err)
	}

	stats.CatalogEntries = c.Len()
	if stats.CacheHit {
		log.Debug("Catalog served from cache: %s", cfg.CatalogCache)
	}
	log.Info("Loaded %d catalog entries from %s", c.Len(), cfg.DatFile)
	for _, name := range c.Duplicates() {
		log.Debug("Duplicate catalog entry ignored: %s", name)
	}
	return c, nil
}

func logRunHeader(cfg *config.Config, log *logging.Logger) {
	log.Info("ROMs directory: %s", cfg.RomsDir)
	if cfg.RefDir != "" {
		log.Info("Reference directory: %s", cfg.RefDir)
	}
	if len(cfg.Ignore) > 0 {
		log.Debug("Ignoring: %v", cfg.Ignore)
	}
	if cfg.DryRun {
		log.Warn("Dry run: nothing will be deleted or moved")
	}
}

func logSummary(log *logging.Logger, stats *RunStats) {
	for _, rt := range stats.Rules {
		log.Debug("%s: %d deleted, %d kept, %d failed (%s)",
			rt.Rule, rt.Deleted, rt.Kept, rt.Failed, display.FormatBytes(rt.Bytes))
	}

	n, total := stats.Matched()
	if n == 0 {
		log.Info("No matching file")
		return
	}
	log.Info("Matching files count: %s", display.FormatCount(n, total))

	if stats.DryRun {
		log.Info("Space that would be freed: %s", display.FormatBytes(stats.Bytes()))
	} else {
		log.Success("Space freed: %s", display.FormatBytes(stats.Bytes()))
	}
	if f := stats.Failed(); f > 0 {
		log.Warn("%d file(s) could not be deleted", f)
	}
}
