package rules

import (
	"errors"
	"fmt"

	"github.com/backmassage/romsweep/internal/catalog"
	"github.com/backmassage/romsweep/internal/pattern"
)

// BIOSExemptions returns the ROM names of the files under root that the
// catalog marks as BIOS, in listing order without repeats. Rules that
// could otherwise delete a BIOS consult this list.
func BIOSExemptions(rc *Context, root string) ([]string, error) {
	if err := rc.requireCatalog("bios-exemptions"); err != nil {
		return nil, err
	}
	entries, err := rc.scan(root)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if seen[e.ROMName] {
			continue
		}
		if ce, ok := rc.Catalog.Lookup(e.ROMName); ok && ce.IsBIOS {
			rc.Log.Debug("Found BIOS ROM: %s", e.ROMName)
			seen[e.ROMName] = true
			out = append(out, e.ROMName)
		}
	}
	return out, nil
}

func (rc *Context) biosSet(root string) (map[string]bool, error) {
	list, err := BIOSExemptions(rc, root)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(list))
	for _, name := range list {
		set[name] = true
	}
	return set, nil
}

// DeleteByBIOS resolves the root ancestor of every catalogued file. When
// that root is a BIOS, the file is deleted if the BIOS is listed in raw
// (deleteOnMatch) or if it is not listed (otherwise). Files whose ancestry
// has no BIOS root, or cannot be resolved, are kept.
func DeleteByBIOS(rc *Context, root, raw string, deleteOnMatch bool) error {
	rule := "del-if-bios-isnt"
	if deleteOnMatch {
		rule = "del-if-bios-is"
	}
	if err := rc.requireCatalog(rule); err != nil {
		return err
	}
	list, err := pattern.ParseBIOSList(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	for _, b := range list {
		rc.Log.Debug("Adding BIOS: '%s'", b)
	}
	if deleteOnMatch {
		rc.Log.Info("Removing ROMs matching BIOS %v", list)
	} else {
		rc.Log.Info("Removing ROMs NOT matching BIOS %v", list)
	}
	entries, err := rc.scan(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	rt := rc.Tally.Begin(rule)
	for _, e := range entries {
		if _, ok := rc.Catalog.Lookup(e.ROMName); !ok {
			continue
		}
		anc, err := catalog.ResolveRoot(rc.Catalog, e.ROMName)
		if err != nil {
			var cyc *catalog.CycleError
			if errors.As(err, &cyc) {
				rc.Log.Warn("Keeping %s: %v", e.Path, err)
			} else {
				rc.Log.Error("Keeping %s: %v", e.Path, err)
			}
			rc.keep(rt, e.Path, err.Error())
			continue
		}
		switch {
		case anc.Root == "":
			rc.Log.Debug("%s has no root ROM; keeping", e.ROMName)
		case !anc.IsBIOS:
			rc.Log.Debug("%s root ROM is no BIOS but %s; keeping", e.ROMName, anc.Root)
		default:
			rc.Log.Debug("%s root ROM is a BIOS: %s", e.ROMName, anc.Root)
			if pattern.Contains(list, anc.Root) == deleteOnMatch {
				rc.remove(rt, e.Path, anc.Root)
			}
		}
	}
	return nil
}
