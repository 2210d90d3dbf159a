package rules

import (
	"fmt"

	"github.com/backmassage/romsweep/internal/catalog"
	"github.com/backmassage/romsweep/internal/fsys"
)

// Logger is the logging interface the rules need. *logging.Logger
// satisfies it; tests use a recording fake.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Context carries everything a rule needs for one run.
type Context struct {
	FS      fsys.FS
	Catalog catalog.Index // nil when no dat file was given
	DryRun  bool
	Log     Logger
	Tally   *Tally
}

// NewContext returns a Context with a fresh Tally.
func NewContext(fs fsys.FS, idx catalog.Index, dryRun bool, log Logger) *Context {
	return &Context{FS: fs, Catalog: idx, DryRun: dryRun, Log: log, Tally: &Tally{}}
}

func (rc *Context) requireCatalog(rule string) error {
	if rc.Catalog == nil {
		return fmt.Errorf("%s: %w: no catalog loaded (set --dat-file)", rule, ErrMissingPrerequisite)
	}
	return nil
}

// remove deletes path (or logs that it would) and records the decision.
func (rc *Context) remove(rt *RuleTally, path, reason string) {
	suffix := ""
	if reason != "" {
		suffix = " (" + reason + ")"
	}
	size, err := rc.FS.Size(path)
	if err != nil {
		rc.Log.Debug("Cannot stat %s: %v", path, err)
		size = 0
	}
	d := Decision{Rule: rt.Rule, Path: path, Action: ActionDelete, Reason: reason, DryRun: rc.DryRun}
	if rc.DryRun {
		rc.Log.Info("Would delete: %s%s", path, suffix)
	} else {
		rc.Log.Info("Deleting: %s%s", path, suffix)
		if err := rc.FS.Remove(path); err != nil {
			rc.Log.Error("Cannot delete %s: %v", path, err)
			rt.Failed++
			d.Action = ActionFailed
			rc.Tally.record(d)
			return
		}
	}
	rt.Deleted++
	rt.Bytes += size
	rc.Tally.record(d)
}

// keep records a file a rule explicitly decided to spare.
func (rc *Context) keep(rt *RuleTally, path, reason string) {
	rt.Kept++
	rc.Tally.record(Decision{Rule: rt.Rule, Path: path, Action: ActionKeep, Reason: reason, DryRun: rc.DryRun})
}

// removeDir deletes a whole directory (or logs that it would).
func (rc *Context) removeDir(rt *RuleTally, dir, label string) {
	d := Decision{Rule: rt.Rule, Path: dir, Action: ActionRemoveDir, DryRun: rc.DryRun}
	if rc.DryRun {
		rc.Log.Info("Would delete %s: %s", label, dir)
	} else {
		rc.Log.Info("Deleting %s: %s", label, dir)
		if err := rc.FS.RemoveAll(dir); err != nil {
			rc.Log.Error("Cannot delete %s: %v", dir, err)
			rt.Failed++
			d.Action = ActionFailed
			rc.Tally.record(d)
			return
		}
	}
	rt.DirsRemoved++
	rc.Tally.record(d)
}
