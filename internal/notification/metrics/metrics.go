package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the notification dispatch loop.
type Metrics struct {
	// Dispatch outcomes by status and notification type
	Dispatched *prometheus.CounterVec

	// Latency of a single send attempt
	SendLatency prometheus.Histogram

	// Pending rows seen at the start of each dispatch cycle
	QueueDepth prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		Dispatched: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hrms_notification_dispatched_total",
			Help: "Total notification dispatch attempts by outcome and type",
		}, []string{"status", "type"}),

		SendLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "hrms_notification_send_duration_seconds",
			Help:    "Duration of a single notification send attempt",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		QueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "hrms_notification_queue_depth",
			Help: "Pending notifications observed at the start of a dispatch cycle",
		}),
	}
}

// IncrementDispatched records a dispatch attempt outcome.
func (m *Metrics) IncrementDispatched(status, notificationType string) {
	if m != nil {
		m.Dispatched.WithLabelValues(status, notificationType).Inc()
	}
}

// ObserveSendLatency records the duration of one send attempt.
func (m *Metrics) ObserveSendLatency(d time.Duration) {
	if m != nil {
		m.SendLatency.Observe(d.Seconds())
	}
}

// SetQueueDepth records the pending backlog size.
func (m *Metrics) SetQueueDepth(depth int) {
	if m != nil {
		m.QueueDepth.Set(float64(depth))
	}
}
