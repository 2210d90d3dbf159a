package rules

import "fmt"

// DeleteRegion keeps one region of every title that exists in both a PAL
// and a non-PAL version in the same directory. With deleteNTSC the
// non-PAL files go, otherwise the PAL ones.
func DeleteRegion(rc *Context, root string, deleteNTSC bool) error {
	rule := "del-pal"
	if deleteNTSC {
		rule = "del-ntsc"
		rc.Log.Info("Removing NTSC versions of ROMs")
	} else {
		rc.Log.Info("Removing PAL versions of ROMs")
	}
	entries, err := rc.scan(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	rt := rc.Tally.Begin(rule)
	rc.deleteMarked(rt, entries, markRegion(entries, groupByTitle(entries), deleteNTSC))
	return nil
}

// DeleteVariants keeps a single file per title and directory: the last
// one listed when deleteFirst is set, the first one otherwise. "Listed"
// means byte-wise path order, where a space sorts before '.', so
// "A (Rev 2).rom" comes before "A.rom" and "keep last" keeps "A.rom".
func DeleteVariants(rc *Context, root string, deleteFirst bool) error {
	rule := "del-last-variants"
	if deleteFirst {
		rule = "del-first-variants"
		rc.Log.Info("Removing first variants of ROMs")
	} else {
		rc.Log.Info("Removing last variants of ROMs")
	}
	entries, err := rc.scan(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	rt := rc.Tally.Begin(rule)
	rc.deleteMarked(rt, entries, markVariants(entries, groupByTitle(entries), deleteFirst))
	return nil
}

// DeleteVariantsMatching compares the variant tags of files sharing a
// title. With deleteWith, variants whose tag contains any pattern of raw
// are deleted; otherwise variants whose tag misses a pattern are deleted.
// Files without a variant tag are ignored.
func DeleteVariantsMatching(rc *Context, root, raw string, deleteWith bool) error {
	rule := "del-variants-without"
	if deleteWith {
		rule = "del-variants-with"
	}
	list, err := rc.parseList(rule, raw)
	if err != nil {
		return err
	}
	if deleteWith {
		rc.Log.Info("Removing variants of ROMs matching any of %q", raw)
	} else {
		rc.Log.Info("Removing variants of ROMs NOT matching all of %q", raw)
	}
	all, err := rc.scan(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	var entries []Entry
	for _, e := range all {
		if !e.HasVariant {
			rc.Log.Debug("Ignoring: %s", e.Path)
			continue
		}
		entries = append(entries, e)
	}
	rt := rc.Tally.Begin(rule)
	rc.deleteMarked(rt, entries, markVariantsMatching(entries, groupByTitle(entries), list, deleteWith))
	return nil
}
