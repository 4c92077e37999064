package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	redfishRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iloctl",
			Subsystem: "redfish",
			Name:      "requests_total",
			Help:      "Total Redfish requests issued to the controller.",
		},
		[]string{"method", "path", "status"},
	)
	redfishDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "iloctl",
			Subsystem: "redfish",
			Name:      "request_duration_seconds",
			Help:      "Redfish request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	sessionEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iloctl",
			Subsystem: "redfish",
			Name:      "session_events_total",
			Help:      "Session lifecycle events against the controller.",
		},
		[]string{"event", "success"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(redfishRequests, redfishDuration, sessionEvents)
	})
}

func RecordRedfishRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	redfishRequests.WithLabelValues(method, path, statusLabel).Inc()
	redfishDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func RecordSessionEvent(event string, success bool) {
	RegisterMetrics()
	sessionEvents.WithLabelValues(event, strconv.FormatBool(success)).Inc()
}
