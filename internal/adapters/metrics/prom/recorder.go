package prom

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "asnap"

// Recorder counts engine outcomes on a private registry. The CLI is short-lived, so the
// registry is flushed to a node-exporter textfile instead of being scraped.
type Recorder struct {
	registry *prometheus.Registry

	captures   *prometheus.CounterVec
	applies    *prometheus.CounterVec
	reverted   prometheus.Counter
	migrations *prometheus.CounterVec
}

var _ ports.Metrics = (*Recorder)(nil)

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		captures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "captures_total",
			Help:      "Snapshot captures by result",
		}, []string{"result"}),
		applies: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "applies_total",
			Help:      "Snapshot applies by result",
		}, []string{"result"}),
		reverted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reverted_sessions_total",
			Help:      "Active sessions reverted",
		}),
		migrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "migrations_total",
			Help:      "Record migrations by kind and result",
		}, []string{"kind", "result"}),
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) CaptureFinished(result string) {
	r.captures.WithLabelValues(result).Inc()
}

func (r *Recorder) ApplyFinished(result string) {
	r.applies.WithLabelValues(result).Inc()
}

func (r *Recorder) SessionsReverted(count int) {
	if count <= 0 {
		return
	}
	r.reverted.Add(float64(count))
}

func (r *Recorder) MigrationFinished(kind, result string) {
	r.migrations.WithLabelValues(kind, result).Inc()
}

// WriteTextfile writes the registry in the text exposition format. An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
