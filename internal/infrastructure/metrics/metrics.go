package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "nomadreads"
	subsystem = "api"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// LLM inference duration
	LLMDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "llm_duration_seconds",
			Help:      "Model call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model"},
	)

	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "provider_errors_total",
			Help:      "Total model provider call failures",
		},
		[]string{"error_type"},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "recommendations_total",
			Help:      "Recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	BooksPerResponse = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "books_per_response",
			Help:      "Number of books returned per successful response",
			Buckets:   []float64{0, 3, 6, 9, 12, 15, 20},
		},
	)

	RetailerDomainTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "retailer_domain_total",
			Help:      "Successful responses by retailer domain",
		},
		[]string{"domain"},
	)

	// Normalised to keep label cardinality low
	UserAgentFamilyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "user_agent_family_total",
			Help:      "Requests by user agent family (browser/cli/sdk/unknown)",
		},
		[]string{"family"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordLLMDuration records the duration of a model call
func RecordLLMDuration(model string, durationSec float64) {
	LLMDuration.WithLabelValues(model).Observe(durationSec)
}

// RecordProviderError records a provider error
func RecordProviderError(errorType string) {
	if errorType == "" {
		errorType = "unknown"
	}
	ProviderErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordRecommendation records the outcome of one recommendation request.
// books and domain are only recorded for outcome "success".
func RecordRecommendation(outcome, domain string, books int) {
	if outcome == "" {
		outcome = "unknown"
	}
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	if outcome != "success" {
		return
	}
	BooksPerResponse.Observe(float64(books))
	RetailerDomainTotal.WithLabelValues(domain).Inc()
}

// RecordUserAgent buckets ua into a family counter
func RecordUserAgent(ua string) {
	UserAgentFamilyTotal.WithLabelValues(UserAgentFamily(ua)).Inc()
}

// UserAgentFamily classifies a raw User-Agent header.
func UserAgentFamily(ua string) string {
	ua = strings.ToLower(strings.TrimSpace(ua))
	switch {
	case ua == "":
		return "unknown"
	case strings.HasPrefix(ua, "mozilla/"):
		return "browser"
	case strings.HasPrefix(ua, "curl/"), strings.HasPrefix(ua, "wget/"), strings.HasPrefix(ua, "httpie/"), strings.HasPrefix(ua, "nomadreads-cli"):
		return "cli"
	case strings.Contains(ua, "python"), strings.Contains(ua, "go-http-client"), strings.Contains(ua, "node"), strings.Contains(ua, "axios"), strings.Contains(ua, "resty"):
		return "sdk"
	default:
		return "unknown"
	}
}
