package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RetailerDomainTotal.WithLabelValues("amazon.fr"))
	failuresBefore := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("model_error"))

	RecordRecommendation("success", "amazon.fr", 12)
	RecordRecommendation("model_error", "amazon.fr", 0)

	assert.Equal(t, before+1, testutil.ToFloat64(RetailerDomainTotal.WithLabelValues("amazon.fr")))
	assert.Equal(t, failuresBefore+1, testutil.ToFloat64(RecommendationsTotal.WithLabelValues("model_error")))
}

func TestRecordProviderError_DefaultsLabel(t *testing.T) {
	before := testutil.ToFloat64(ProviderErrorsTotal.WithLabelValues("unknown"))
	RecordProviderError("")
	assert.Equal(t, before+1, testutil.ToFloat64(ProviderErrorsTotal.WithLabelValues("unknown")))
}

func TestUserAgentFamily(t *testing.T) {
	tests := map[string]string{
		"":                        "unknown",
		"Mozilla/5.0 (Macintosh)": "browser",
		"curl/8.4.0":              "cli",
		"nomadreads-cli/dev":      "cli",
		"python-requests/2.31":    "sdk",
		"Go-http-client/1.1":      "sdk",
		"SomethingElse/1.0":       "unknown",
	}
	for ua, want := range tests {
		assert.Equal(t, want, UserAgentFamily(ua), ua)
	}
}
