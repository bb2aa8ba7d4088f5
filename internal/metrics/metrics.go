package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_search_duration_seconds",
			Help:    "Duration of each search query in seconds.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"backend"},
	)
	RecommendationDuration = prometheus.NewSummary(
		prometheus.SummaryOpts{
			Name:       "discovery_recommendation_duration_seconds",
			Help:       "Duration of each recommendation computation.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
	)
	SyncedJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_jobs_synced_total",
			Help: "Total number of jobs synced to the derived index.",
		},
	)
	ExternalSyncFailuresCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_external_sync_failures_total",
			Help: "Total number of failed external search mirror calls.",
		},
	)
)

func Register() {
	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(RecommendationDuration)
	prometheus.MustRegister(SyncedJobsCounter)
	prometheus.MustRegister(ExternalSyncFailuresCounter)
}
