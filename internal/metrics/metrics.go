// Package metrics declares the prometheus collectors of the intake pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careers_application_submissions_total",
			Help: "Application submissions by outcome",
		},
		[]string{"outcome"},
	)

	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "careers_application_submission_duration_seconds",
			Help:    "Time spent on the synchronous part of a submission",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	UploadRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careers_upload_rejections_total",
			Help: "Rejected resume uploads by reason",
		},
		[]string{"reason"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careers_notifications_total",
			Help: "Notification send attempts by kind and status",
		},
		[]string{"kind", "status"},
	)

	NotificationsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "careers_notifications_in_flight",
			Help: "Notification dispatches currently running",
		},
	)

	JobCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careers_job_cache_lookups_total",
			Help: "Job cache lookups by result",
		},
		[]string{"result"},
	)
)
