package pipeline

import "github.com/backmassage/romsweep/internal/rules"

// RunStats is the outcome of one run.
type RunStats struct {
	RunID  string
	DryRun bool
	rules.Tally

	TotalFiles     int // files left under the ROMs directory (all of them on a dry run)
	CatalogEntries int
	CacheHit       bool
}

// Matched returns the number of files the run matched. On a real run the
// deleted files are gone from TotalFiles, so they are added back.
func (s *RunStats) Matched() (n, total int) {
	n = s.Deleted()
	total = s.TotalFiles
	if !s.DryRun {
		total += n
	}
	return n, total
}
