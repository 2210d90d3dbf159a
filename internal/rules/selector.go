package rules

import (
	"github.com/backmassage/romsweep/internal/fsys"
	"github.com/backmassage/romsweep/internal/naming"
	"github.com/backmassage/romsweep/internal/pattern"
)

// Entry is a listed file with its parsed name.
type Entry struct {
	fsys.File
	naming.ParsedName
}

// scan lists root afresh and parses every file name.
func (rc *Context) scan(root string) ([]Entry, error) {
	files, err := rc.FS.Files(root)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(files))
	for i, f := range files {
		entries[i] = Entry{File: f, ParsedName: naming.ParseFilename(f.Name)}
	}
	return entries, nil
}

// groupByTitle partitions entry indexes by (directory, title key), keeping
// listing order within and across groups.
func groupByTitle(entries []Entry) [][]int {
	type key struct{ dir, title string }
	pos := make(map[key]int)
	var groups [][]int
	for i, e := range entries {
		k := key{e.Dir, e.TitleKey}
		g, ok := pos[k]
		if !ok {
			g = len(groups)
			pos[k] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

// markRegion pairs every PAL member of a group with the first non-PAL
// member, wherever it is listed; deleteNTSC marks the non-PAL one,
// otherwise the PAL one.
func markRegion(entries []Entry, groups [][]int, deleteNTSC bool) []bool {
	marked := make([]bool, len(entries))
	for _, g := range groups {
		for _, a := range g {
			if !entries[a].Region.IsPAL() {
				continue
			}
			for _, b := range g {
				if b == a || entries[b].Region.IsPAL() {
					continue
				}
				if deleteNTSC {
					marked[b] = true
				} else {
					marked[a] = true
				}
				break
			}
		}
	}
	return marked
}

// markVariants compares every member with the members listed before it:
// the first one not yet marked loses (deleteFirst) or wins. One member of
// each group survives.
func markVariants(entries []Entry, groups [][]int, deleteFirst bool) []bool {
	marked := make([]bool, len(entries))
	for _, g := range groups {
		for ai, a := range g {
			for _, b := range g[:ai] {
				if marked[b] {
					continue
				}
				if deleteFirst {
					marked[b] = true
				} else {
					marked[a] = true
				}
				break
			}
		}
	}
	return marked
}

// markVariantsMatching checks the variant tag of every opponent b of every
// member a. With deleteWith, b is marked on the first pattern its tag
// contains. Otherwise b is un-marked for each pattern its tag contains and
// marked at the first it lacks.
func markVariantsMatching(entries []Entry, groups [][]int, patterns []string, deleteWith bool) []bool {
	marked := make([]bool, len(entries))
	for _, g := range groups {
		for _, a := range g {
			for _, b := range g {
				if b == a {
					continue
				}
				tag := entries[b].VariantTag
				if deleteWith {
					if _, ok := pattern.FirstPresent(tag, patterns); ok {
						marked[b] = true
					}
					continue
				}
				for _, p := range patterns {
					if _, ok := pattern.FirstPresent(tag, []string{p}); !ok {
						marked[b] = true
						break
					}
					marked[b] = false
				}
			}
		}
	}
	return marked
}

// deleteMarked runs the deletion pass in listing order.
func (rc *Context) deleteMarked(rt *RuleTally, entries []Entry, marked []bool) {
	for i, e := range entries {
		if marked[i] {
			rc.remove(rt, e.Path, "")
		}
	}
}
