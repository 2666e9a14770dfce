package history

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports the activity of a Store. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	records       *prometheus.CounterVec
	skipped       prometheus.Counter
	undo          *prometheus.CounterVec
	redo          *prometheus.CounterVec
	groups        prometheus.Gauge
	snapshotBytes prometheus.Histogram
	codecErrors   *prometheus.CounterVec
}

// NewMetrics registers the history collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		records: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voxmemento_records_total",
			Help: "Total records stored by kind",
		}, []string{"kind"}),
		skipped: f.NewCounter(prometheus.CounterOpts{
			Name: "voxmemento_records_skipped_total",
			Help: "Total records dropped because the store was locked",
		}),
		undo: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voxmemento_undo_total",
			Help: "Total undo requests by result",
		}, []string{"result"}),
		redo: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voxmemento_redo_total",
			Help: "Total redo requests by result",
		}, []string{"result"}),
		groups: f.NewGauge(prometheus.GaugeOpts{
			Name: "voxmemento_groups",
			Help: "Number of groups currently held",
		}),
		snapshotBytes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "voxmemento_snapshot_bytes",
			Help:    "Compressed size of captured volume snapshots",
			Buckets: prometheus.ExponentialBuckets(64, 4, 10), // 64B to 16MiB
		}),
		codecErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voxmemento_codec_errors_total",
			Help: "Total codec failures by operation",
		}, []string{"op"}),
	}
}

func (m *Metrics) recorded(k Kind) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(k.String()).Inc()
}

func (m *Metrics) skip() {
	if m == nil {
		return
	}
	m.skipped.Inc()
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "noop"
}

func (m *Metrics) undone(ok bool) {
	if m == nil {
		return
	}
	m.undo.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) redone(ok bool) {
	if m == nil {
		return
	}
	m.redo.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) setGroups(n int) {
	if m == nil {
		return
	}
	m.groups.Set(float64(n))
}

func (m *Metrics) snapshot(size int) {
	if m == nil {
		return
	}
	m.snapshotBytes.Observe(float64(size))
}

func (m *Metrics) codecError(op string) {
	if m == nil {
		return
	}
	m.codecErrors.WithLabelValues(op).Inc()
}
