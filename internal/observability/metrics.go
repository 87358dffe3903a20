package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpLatencySeconds   *prometheus.HistogramVec
	httpErrorsTotal      *prometheus.CounterVec
	activityListLatency  prometheus.Histogram
	activitySubmissions  *prometheus.CounterVec
	verificationOutcomes *prometheus.CounterVec
	uploadLatencySeconds prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olahraga_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "olahraga_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olahraga_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		activityListLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "olahraga_activity_list_latency_seconds",
			Help:    "Latency distribution for activity list queries.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		activitySubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olahraga_activity_submissions_total",
			Help: "Total number of submitted activity reports by exercise type.",
		}, []string{"type"})

		verificationOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olahraga_verification_decisions_total",
			Help: "Total number of verification decisions by outcome, including precondition conflicts.",
		}, []string{"outcome"})

		uploadLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "olahraga_upload_latency_seconds",
			Help:    "Latency distribution for proof photo uploads.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			activityListLatency,
			activitySubmissions,
			verificationOutcomes,
			uploadLatencySeconds,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// ActivityListLatency exposes the histogram for list queries.
func ActivityListLatency() prometheus.Histogram {
	RegisterMetrics()
	return activityListLatency
}

// ActivitySubmissions exposes the submission counter.
func ActivitySubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return activitySubmissions
}

// VerificationDecisions exposes the decision outcome counter.
func VerificationDecisions() *prometheus.CounterVec {
	RegisterMetrics()
	return verificationOutcomes
}

// UploadLatency exposes the histogram for proof uploads.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatencySeconds
}
