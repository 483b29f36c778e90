package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	IngestRuns     *prometheus.CounterVec
	ParksStored    prometheus.Counter
	UpstreamErrors *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		IngestRuns: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "charger_ingest_runs_total",
			Help: "Total number of cluster-expansion ingestion runs.",
		}, []string{"status"}),
		ParksStored: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "charger_parks_stored_total",
			Help: "Total number of newly stored charging parks.",
		}),
		UpstreamErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "charger_upstream_errors_total",
			Help: "Total number of errors received from external providers.",
		}, []string{"provider"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "charger_upstream_request_duration_seconds",
			Help:    "Duration of requests to external providers.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}
}
