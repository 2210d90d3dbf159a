package rules

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/backmassage/romsweep/internal/catalog"
	"github.com/backmassage/romsweep/internal/fsys"
	"github.com/backmassage/romsweep/internal/pattern"
)

// DeleteDuplicates deletes every file under root that has a file of the
// same name and byte size somewhere under refDir. BIOS files found under
// root are kept.
func DeleteDuplicates(rc *Context, root, refDir string) error {
	const rule = "del-duplicates"
	if err := rc.requireCatalog(rule); err != nil {
		return err
	}
	if refDir == "" {
		return fmt.Errorf("%s: %w: no reference directory (set --ref-roms-dir)", rule, ErrMissingPrerequisite)
	}
	if !rc.FS.Exists(refDir) {
		return fmt.Errorf("%s: reference directory %s: %w", rule, refDir, ErrNotFound)
	}
	rc.Log.Info("Removing duplicates of ROMs found in %s", refDir)
	bios, err := rc.biosSet(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	refs, err := rc.FS.Files(refDir)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	byName := make(map[string][]fsys.File)
	for _, f := range refs {
		byName[f.Name] = append(byName[f.Name], f)
	}
	entries, err := rc.scan(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	rt := rc.Tally.Begin(rule)
	for _, e := range entries {
		candidates := byName[e.Name]
		if len(candidates) == 0 {
			continue
		}
		size, err := rc.FS.Size(e.Path)
		if err != nil {
			rc.Log.Error("Cannot stat %s: %v", e.Path, err)
			rt.Failed++
			continue
		}
		for _, ref := range candidates {
			refSize, err := rc.FS.Size(ref.Path)
			if err != nil {
				rc.Log.Error("Cannot stat %s: %v", ref.Path, err)
				rt.Failed++
				continue
			}
			if refSize != size {
				continue
			}
			if bios[e.ROMName] {
				if rc.DryRun {
					rc.Log.Debug("Would keep BIOS: %s", e.Path)
				} else {
					rc.Log.Debug("Keeping BIOS: %s", e.Path)
				}
				rc.keep(rt, e.Path, "bios")
			} else {
				rc.remove(rt, e.Path, "duplicate of "+ref.Path)
			}
			break
		}
	}
	return nil
}

// DeleteClones deletes every file whose catalog record is a clone of, or
// takes samples from, another record, or whose romof does not name a BIOS
// present under root.
func DeleteClones(rc *Context, root string) error {
	const rule = "del-clones"
	if err := rc.requireCatalog(rule); err != nil {
		return err
	}
	rc.Log.Info("Removing clones of ROMs")
	bios, err := rc.biosSet(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	entries, err := rc.scan(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	rt := rc.Tally.Begin(rule)
	for _, e := range entries {
		ce, ok := rc.Catalog.Lookup(e.ROMName)
		if !ok {
			continue
		}
		switch {
		case ce.CloneOf != "":
			rc.remove(rt, e.Path, "cloneof "+ce.CloneOf)
		case ce.SampleOf != "":
			rc.remove(rt, e.Path, "sampleof "+ce.SampleOf)
		case ce.RomOf != "" && !bios[ce.RomOf]:
			rc.remove(rt, e.Path, "romof "+ce.RomOf)
		}
	}
	return nil
}

// DeleteWithSamples deletes every file whose catalog record owns a sample,
// then every directory named "samples".
func DeleteWithSamples(rc *Context, root string) error {
	const rule = "del-with-samples"
	if err := rc.requireCatalog(rule); err != nil {
		return err
	}
	rc.Log.Info("Removing ROMs with samples")
	owners := rc.Catalog.TitlesWithSamples()
	rc.Log.Debug("ROMs with samples: %d", len(owners))
	entries, err := rc.scan(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	rt := rc.Tally.Begin(rule)
	for _, e := range entries {
		if _, ok := owners[e.ROMName]; ok {
			rc.remove(rt, e.Path, "samples")
		}
	}
	dirs, err := rc.FS.Dirs(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	var removed []string
	for _, dir := range dirs {
		if filepath.Base(dir) != "samples" || under(dir, removed) {
			continue
		}
		rc.removeDir(rt, dir, "samples directory")
		removed = append(removed, dir)
	}
	return nil
}

func under(path string, dirs []string) bool {
	for _, d := range dirs {
		if strings.HasPrefix(path, d+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// DeleteOlderThan deletes every file whose catalog year is before year.
// A year that is not a number ("198?") counts as 0. BIOS files found under
// root are kept.
func DeleteOlderThan(rc *Context, root string, year int) error {
	const rule = "del-older-than"
	if err := rc.requireCatalog(rule); err != nil {
		return err
	}
	if year <= 0 {
		return fmt.Errorf("%s: %w: year %d (shall be a positive integer)", rule, ErrBadFormat, year)
	}
	rc.Log.Info("Removing ROMs older than %d", year)
	bios, err := rc.biosSet(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	entries, err := rc.scan(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	rt := rc.Tally.Begin(rule)
	for _, e := range entries {
		raw, ok := rc.Catalog.Attribute(e.ROMName, catalog.FieldYear)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			n = 0
		}
		if n >= year {
			continue
		}
		if bios[e.ROMName] {
			if rc.DryRun {
				rc.Log.Debug("Would keep BIOS: %s", e.Path)
			} else {
				rc.Log.Debug("Keeping BIOS: %s", e.Path)
			}
			rc.keep(rt, e.Path, "bios")
			continue
		}
		rc.remove(rt, e.Path, strconv.Quote(raw))
	}
	return nil
}

// DeleteIfFieldHas deletes every file whose catalog description,
// manufacturer or comment contains any pattern of raw. Records without the
// field are kept.
func DeleteIfFieldHas(rc *Context, root string, field catalog.Field, raw string) error {
	rule := "del-if-" + string(field) + "-has"
	switch field {
	case catalog.FieldDescription, catalog.FieldManufacturer, catalog.FieldComment:
	default:
		return fmt.Errorf("%s: %w: field %q cannot be matched against patterns", rule, ErrBadFormat, field)
	}
	if err := rc.requireCatalog(rule); err != nil {
		return err
	}
	list, err := rc.parseList(rule, raw)
	if err != nil {
		return err
	}
	rc.Log.Info("Removing ROMs with %s matching any of %q", field, raw)
	entries, err := rc.scan(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	rt := rc.Tally.Begin(rule)
	for _, e := range entries {
		value, ok := rc.Catalog.Attribute(e.ROMName, field)
		if !ok || value == "" {
			continue
		}
		if _, found := pattern.FirstPresent(value, list); found {
			rc.remove(rt, e.Path, strconv.Quote(value))
		}
	}
	return nil
}
