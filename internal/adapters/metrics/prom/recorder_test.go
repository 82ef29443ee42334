package prom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func TestRecorderCountsOutcomes(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.CaptureFinished("success")
	r.CaptureFinished("success")
	r.CaptureFinished("failure")
	r.ApplyFinished("success")
	r.SessionsReverted(3)
	r.SessionsReverted(0)
	r.MigrationFinished("legacy", "aborted")

	assert.Equal(t, 2.0, counterValue(t, r.captures.WithLabelValues("success")))
	assert.Equal(t, 1.0, counterValue(t, r.captures.WithLabelValues("failure")))
	assert.Equal(t, 1.0, counterValue(t, r.applies.WithLabelValues("success")))
	assert.Equal(t, 3.0, counterValue(t, r.reverted))
	assert.Equal(t, 1.0, counterValue(t, r.migrations.WithLabelValues("legacy", "aborted")))
}

func TestRecordersDoNotShareRegistries(t *testing.T) {
	t.Parallel()

	first := NewRecorder()
	second := NewRecorder()
	first.ApplyFinished("success")

	assert.Zero(t, counterValue(t, second.applies.WithLabelValues("success")))
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.CaptureFinished("success")
	r.MigrationFinished("stamp", "success")

	path := filepath.Join(t.TempDir(), "textfile", "asnap.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `asnap_captures_total{result="success"} 1`)
	assert.Contains(t, string(data), `asnap_migrations_total{kind="stamp",result="success"} 1`)
}

func TestWriteTextfileWithoutPath(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewRecorder().WriteTextfile(""))
}
