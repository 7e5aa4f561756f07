package observability

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/logica/pkg/logic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the editor collectors.
type Metrics struct {
	Scans    prometheus.Counter
	Items    prometheus.Gauge
	Commits  *prometheus.CounterVec
	Bindings *prometheus.CounterVec
	Rejects  *prometheus.CounterVec
	Renames  prometheus.Counter
	Rewrites prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Scans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logica_scans_total",
			Help: "Total number of document scans",
		}),
		Items: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "logica_items",
			Help: "Logic items found by the last scan",
		}),
		Commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logica_commits_total",
			Help: "Changes written to documents, by editor mode",
		}, []string{"mode"}),
		Bindings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logica_commit_bindings_total",
			Help: "Bindings handled by commits, by outcome",
		}, []string{"outcome"}),
		Rejects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logica_rejected_saves_total",
			Help: "Saves refused by validation, by reason",
		}, []string{"reason"}),
		Renames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logica_renames_total",
			Help: "Total number of rename propagations",
		}),
		Rewrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logica_rename_rewrites_total",
			Help: "Properties rewritten by rename propagations",
		}),
	}

	for _, c := range []prometheus.Collector{m.Scans, m.Items, m.Commits, m.Bindings, m.Rejects, m.Renames, m.Rewrites} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

// Hooks returns editor hooks feeding the collectors.
func (m *Metrics) Hooks() logic.Hooks {
	return logic.Hooks{
		OnScan: func(e *logic.ScanEvent) {
			m.Scans.Inc()
			m.Items.Set(float64(e.Items))
		},
		OnCommit: func(e *logic.CommitEvent) {
			m.Commits.WithLabelValues(string(e.Mode)).Inc()
			m.Bindings.WithLabelValues("written").Add(float64(e.Written))
			m.Bindings.WithLabelValues("cleared").Add(float64(e.Cleared))
			m.Bindings.WithLabelValues("dropped").Add(float64(e.Dropped))
			m.Bindings.WithLabelValues("merged").Add(float64(e.Merged))
		},
		OnReject: func(e *logic.RejectEvent) {
			m.Rejects.WithLabelValues(RejectReason(e.Err)).Inc()
		},
		OnRename: func(e *logic.RenameEvent) {
			m.Renames.Inc()
			m.Rewrites.Add(float64(e.Changed))
		},
	}
}

// RejectReason maps a save error to a metric label.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, logic.ErrInvalidExpression):
		return "expression"
	case errors.Is(err, logic.ErrNoOperations):
		return "no_operations"
	case errors.Is(err, logic.ErrInvalidOperation):
		return "operation"
	case errors.Is(err, logic.ErrReadOnly):
		return "read_only"
	}
	return "other"
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
