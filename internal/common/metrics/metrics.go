// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prediction sources used as the "source" label.
const (
	SourceHTTP   = "http"
	SourceWorker = "worker"
	SourceQueue  = "queue"
	SourceCLI    = "cli"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerfit_predictions_total",
			Help: "Career predictions produced, by request source and outcome",
		},
		[]string{"source", "outcome"},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "careerfit_prediction_duration_seconds",
			Help:    "End-to-end prediction latency including data loading",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"source"},
	)

	TopMatchScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "careerfit_top_match_score",
			Help:    "Match score of the best ranked career per prediction",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	UserDataCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerfit_userdata_cache_total",
			Help: "User data cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	QueueMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerfit_queue_messages_total",
			Help: "Prediction requests consumed from the queue by disposition",
		},
		[]string{"disposition"},
	)
)
