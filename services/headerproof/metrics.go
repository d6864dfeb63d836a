package headerproof

import (
	"sync"

	"github.com/bsv-blockchain/headerproof/errors"
	"github.com/bsv-blockchain/headerproof/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK              = "ok"
	outcomeMalformedHeader = "malformed_header"
	outcomePowInvalid      = "pow_invalid"
	outcomeError           = "error"
)

var (
	prometheusHeaderProofVerify         *prometheus.CounterVec
	prometheusHeaderProofVerifyDuration prometheus.Histogram
	prometheusHeaderProofInputSize      prometheus.Histogram
)

var (
	prometheusMetricsInitOnce sync.Once
)

// initPrometheusMetrics registers the metrics once, no matter how many
// verifiers are created.
func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusHeaderProofVerify = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "headerproof",
			Subsystem: "verifier",
			Name:      "verify",
			Help:      "Number of header verifications by outcome",
		},
		[]string{"outcome"},
	)

	prometheusHeaderProofVerifyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "headerproof",
			Subsystem: "verifier",
			Name:      "verify_duration_seconds",
			Help:      "Duration of header verification, from decode to encoded envelope",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)

	prometheusHeaderProofInputSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "headerproof",
			Subsystem: "verifier",
			Name:      "input_size_bytes",
			Help:      "Size of the input read for verification",
			Buckets:   util.MetricsBucketsSizeSmall,
		},
	)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.IsMalformedHeaderError(err):
		return outcomeMalformedHeader
	case errors.IsProofOfWorkError(err):
		return outcomePowInvalid
	default:
		return outcomeError
	}
}
