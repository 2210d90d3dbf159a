package rules

import (
	"fmt"

	"github.com/backmassage/romsweep/internal/fsys"
)

// MakeFlat moves every file up to root and removes the emptied
// subdirectories.
func MakeFlat(rc *Context, root string) error {
	const rule = "make-flat"
	rc.Log.Info("Moving all files up to %s", root)
	rt := rc.Tally.Begin(rule)
	res, err := fsys.Flatten(rc.FS, root, rc.DryRun, rc.Log)
	rt.Moved = res.Moved
	rt.Failed = res.Failed
	rt.DirsRemoved = res.DirsRemoved
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	return nil
}
