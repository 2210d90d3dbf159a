package rules

import (
	"fmt"

	"github.com/backmassage/romsweep/internal/pattern"
)

// parseList parses a pattern list for rule and logs its patterns.
func (rc *Context) parseList(rule, raw string) ([]string, error) {
	list, err := pattern.ParseList(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rule, err)
	}
	for _, p := range list {
		rc.Log.Debug("Adding pattern: '%s'", p)
	}
	return list, nil
}

// DeleteFilesWithout deletes every file whose name lacks any of the
// patterns in raw.
func DeleteFilesWithout(rc *Context, root, raw string) error {
	const rule = "del-files-without"
	list, err := rc.parseList(rule, raw)
	if err != nil {
		return err
	}
	rc.Log.Info("Removing files with name NOT matching all of %q", raw)
	entries, err := rc.scan(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	rt := rc.Tally.Begin(rule)
	for _, e := range entries {
		if p, missing := pattern.FirstMissing(e.Name, list); missing {
			rc.remove(rt, e.Path, "no "+p)
		}
	}
	return nil
}

// DeleteFilesWith deletes every file whose name contains any of the
// patterns in raw.
func DeleteFilesWith(rc *Context, root, raw string) error {
	const rule = "del-files-with"
	list, err := rc.parseList(rule, raw)
	if err != nil {
		return err
	}
	rc.Log.Info("Removing files with name matching any of %q", raw)
	entries, err := rc.scan(root)
	if err != nil {
		return fmt.Errorf("%s: %w", rule, err)
	}
	rt := rc.Tally.Begin(rule)
	for _, e := range entries {
		if p, found := pattern.FirstPresent(e.Name, list); found {
			rc.remove(rt, e.Path, p)
		}
	}
	return nil
}
