package rules

import "time"

// Action is what happened to a path.
type Action string

const (
	ActionDelete    Action = "delete"
	ActionKeep      Action = "keep"
	ActionMove      Action = "move"
	ActionRemoveDir Action = "rmdir"
	ActionFailed    Action = "failed"
)

// Decision is one logged outcome of a rule.
type Decision struct {
	Rule   string
	Path   string
	Action Action
	Reason string
	DryRun bool
}

// RuleTally counts the outcomes of one rule invocation.
type RuleTally struct {
	Rule        string
	Deleted     int
	Kept        int
	Moved       int
	Failed      int
	DirsRemoved int
	Bytes       int64
	Elapsed     time.Duration // set by the caller that timed the rule
}

// Tally accumulates rule outcomes for a run, in execution order.
type Tally struct {
	Rules     []*RuleTally
	Decisions []Decision
}

// Begin opens the tally of a rule invocation.
func (t *Tally) Begin(rule string) *RuleTally {
	rt := &RuleTally{Rule: rule}
	t.Rules = append(t.Rules, rt)
	return rt
}

func (t *Tally) record(d Decision) { t.Decisions = append(t.Decisions, d) }

// Deleted returns the number of files deleted (or that would be) so far.
func (t *Tally) Deleted() int {
	n := 0
	for _, rt := range t.Rules {
		n += rt.Deleted
	}
	return n
}

// Bytes returns the bytes freed (or that would be) so far.
func (t *Tally) Bytes() int64 {
	var n int64
	for _, rt := range t.Rules {
		n += rt.Bytes
	}
	return n
}

// Failed returns the number of per-file failures so far.
func (t *Tally) Failed() int {
	n := 0
	for _, rt := range t.Rules {
		n += rt.Failed
	}
	return n
}

// Deletions returns the delete decisions in order.
func (t *Tally) Deletions() []Decision {
	var out []Decision
	for _, d := range t.Decisions {
		if d.Action == ActionDelete {
			out = append(out, d)
		}
	}
	return out
}
