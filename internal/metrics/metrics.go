// Package metrics exports the outcome of a run as Prometheus metrics,
// written to a node_exporter textfile after the run.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/backmassage/romsweep/internal/rules"
)

const namespace = "romsweep"

// Metrics holds the per-run collectors.
type Metrics struct {
	Files          *prometheus.CounterVec
	Bytes          *prometheus.CounterVec
	RuleDuration   *prometheus.GaugeVec
	CatalogEntries prometheus.Gauge
	FilesRemaining prometheus.Gauge
	LastRun        prometheus.Gauge
}

// New creates and registers the run metrics with the given registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rule",
			Name:      "files_total",
			Help:      "Files acted on by a rule, by action.",
		}, []string{"rule", "action", "dry_run"}),
		Bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rule",
			Name:      "deleted_bytes_total",
			Help:      "Bytes deleted (or that would be) by a rule.",
		}, []string{"rule", "dry_run"}),
		RuleDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rule",
			Name:      "duration_seconds",
			Help:      "Wall time of the last invocation of a rule.",
		}, []string{"rule"}),
		CatalogEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_entries",
			Help:      "Distinct records in the loaded dat file.",
		}),
		FilesRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "files_remaining",
			Help:      "Files left under the ROMs directory after the run.",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}

	reg.MustRegister(
		m.Files,
		m.Bytes,
		m.RuleDuration,
		m.CatalogEntries,
		m.FilesRemaining,
		m.LastRun,
	)

	return m
}

// ObserveRule records the tally of one rule invocation.
func (m *Metrics) ObserveRule(rt *rules.RuleTally, elapsed time.Duration, dryRun bool) {
	dry := strconv.FormatBool(dryRun)
	counts := []struct {
		action rules.Action
		n      int
	}{
		{rules.ActionDelete, rt.Deleted},
		{rules.ActionKeep, rt.Kept},
		{rules.ActionMove, rt.Moved},
		{rules.ActionRemoveDir, rt.DirsRemoved},
		{rules.ActionFailed, rt.Failed},
	}
	for _, c := range counts {
		m.Files.WithLabelValues(rt.Rule, string(c.action), dry).Add(float64(c.n))
	}
	m.Bytes.WithLabelValues(rt.Rule, dry).Add(float64(rt.Bytes))
	m.RuleDuration.WithLabelValues(rt.Rule).Set(elapsed.Seconds())
}

// Finish records the end-of-run gauges.
func (m *Metrics) Finish(remaining int, at time.Time) {
	m.FilesRemaining.Set(float64(remaining))
	m.LastRun.Set(float64(at.Unix()))
}

// WriteFile writes everything gathered by g to path in the text exposition
// format, atomically, for the node_exporter textfile collector.
func WriteFile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
