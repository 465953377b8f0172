package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "barcode"

// Metrics groups the collectors of the lookup pipeline.
type Metrics struct {
	LookupOutcomes       *prometheus.CounterVec
	StoreFailOpen        *prometheus.CounterVec
	CacheWriteFailures   prometheus.Counter
	ScanCountFailures    prometheus.Counter
	ExternalFetchSeconds *prometheus.HistogramVec
	Promotions           *prometheus.CounterVec
	StaleCacheRows       prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LookupOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_outcomes_total",
			Help:      "Barcode lookups by outcome.",
		}, []string{"outcome"}),
		StoreFailOpen: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_fail_open_total",
			Help:      "Store errors treated as a miss, by lookup stage.",
		}, []string{"stage"}),
		CacheWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_write_failures_total",
			Help:      "Cache writes that failed and returned a synthetic row.",
		}),
		ScanCountFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_count_failures_total",
			Help:      "Failed scan counter increments on cache hits.",
		}),
		ExternalFetchSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "external_fetch_duration_seconds",
			Help:      "Latency of external product fetches.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source", "result"}),
		Promotions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promotions_total",
			Help:      "Cache row promotions by result.",
		}, []string{"result"}),
		StaleCacheRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_stale_rows",
			Help:      "Cache rows past the staleness threshold at the last report.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.LookupOutcomes,
			m.StoreFailOpen,
			m.CacheWriteFailures,
			m.ScanCountFailures,
			m.ExternalFetchSeconds,
			m.Promotions,
			m.StaleCacheRows,
		)
	}

	return m
}
