package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/backmassage/romsweep/internal/metrics"
)

// ExportMetrics writes the stats of a finished run to a Prometheus textfile
// at path. Every series carries the run id as a constant label.
func ExportMetrics(stats *RunStats, path string) error {
	reg := prometheus.NewRegistry()
	m := metrics.New(prometheus.WrapRegistererWith(prometheus.Labels{"run": stats.RunID}, reg))

	for _, rt := range stats.Rules {
		m.ObserveRule(rt, rt.Elapsed, stats.DryRun)
	}
	m.CatalogEntries.Set(float64(stats.CatalogEntries))
	m.Finish(stats.TotalFiles, time.Now())

	return metrics.WriteFile(path, reg)
}
