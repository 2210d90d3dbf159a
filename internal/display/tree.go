package display

import (
	"path/filepath"
	"strings"

	"github.com/disiqueira/gotree/v3"

	"github.com/backmassage/romsweep/internal/rules"
	"github.com/backmassage/romsweep/internal/term"
)

// DecisionTree renders the decisions of a run as a directory tree rooted
// at root, each leaf prefixed with its action:
//
//	/roms
//	├── [delete] Game (NTSC).rom
//	└── arcade
//	    └── [keep] neogeo.zip
func DecisionTree(root string, decisions []rules.Decision) string {
	t := newVisualTree(root)
	for _, d := range decisions {
		rel, err := filepath.Rel(root, d.Path)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = d.Path
		}
		label := string(d.Action)
		if d.Reason != "" && d.Action != rules.ActionDelete {
			label += ": " + d.Reason
		}
		t.insert(rel, actionColor(d.Action)+"["+label+"]"+term.NC+" ")
	}
	return t.tree.Print()
}

func actionColor(a rules.Action) string {
	switch a {
	case rules.ActionDelete, rules.ActionFailed:
		return term.Red
	case rules.ActionKeep:
		return term.Green
	case rules.ActionRemoveDir:
		return term.Yellow
	default:
		return term.Cyan
	}
}

type visualTree struct {
	tree gotree.Tree
	dirs map[string]gotree.Tree
}

func newVisualTree(label string) visualTree {
	return visualTree{tree: gotree.New(label), dirs: make(map[string]gotree.Tree)}
}

func (t visualTree) dir(path string) gotree.Tree {
	if path == "." || path == string(filepath.Separator) || path == "" {
		return t.tree
	}
	d := t.dirs[path]
	if d == nil {
		d = t.dir(filepath.Dir(path)).Add(filepath.Base(path))
		t.dirs[path] = d
	}
	return d
}

func (t visualTree) insert(path, prefix string) {
	t.dir(filepath.Dir(path)).Add(prefix + filepath.Base(path))
}
