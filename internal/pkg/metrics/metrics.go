package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the portal's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	UpstreamRequests   *prometheus.CounterVec
	UpstreamDuration   *prometheus.HistogramVec
	AttendanceCaptures *prometheus.CounterVec
	AccessDenied       *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrms_portal",
			Name:      "upstream_requests_total",
			Help:      "Requests sent to the HRMS API by method and status class.",
		}, []string{"method", "status"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hrms_portal",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of requests sent to the HRMS API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		AttendanceCaptures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrms_portal",
			Name:      "attendance_captures_total",
			Help:      "Attendance captures by kind and outcome.",
		}, []string{"kind", "result"}),
		AccessDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrms_portal",
			Name:      "access_denied_total",
			Help:      "Requests rejected by module access checks.",
		}, []string{"module", "action"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.AttendanceCaptures,
		m.AccessDenied,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StatusClass buckets an HTTP status code into "2xx".."5xx".
func StatusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	default:
		return "error"
	}
}
