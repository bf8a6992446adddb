// Package metrics provides prometheus instrumentation for the data
// service transport.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockset",
		Subsystem: "system_client",
		Name:      "requests_total",
		Help:      "Count of data service requests.",
	}, []string{"operation", "blockchain", "code", "outcome"})
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockset",
		Subsystem: "system_client",
		Name:      "request_duration_seconds",
		Help:      "Duration of data service requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "blockchain", "code", "outcome"})
)

// SystemClient tracks metrics for requests against the data service.
type SystemClient struct {
	blockchain string
}

// NewSystemClient constructs a metrics collector scoped to one blockchain.
func NewSystemClient(blockchain string) *SystemClient {
	if blockchain == "" {
		blockchain = "unknown"
	}
	return &SystemClient{blockchain: blockchain}
}

// Observe records a single request outcome and duration.
func (m SystemClient) Observe(operation string, status int, err error, started time.Time) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	code := strconv.Itoa(status)

	requestsTotal.WithLabelValues(operation, m.blockchain, code, outcome).Inc()
	requestDuration.WithLabelValues(operation, m.blockchain, code, outcome).Observe(time.Since(started).Seconds())
}
