package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "khusela_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "code"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "khusela_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	ApplicationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "khusela_applications_created_total",
			Help: "Total number of applications created",
		},
	)

	ApplicationCreateFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "khusela_application_create_failures_total",
			Help: "Total number of application creations rolled back",
		},
	)

	StatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "khusela_application_status_changes_total",
			Help: "Total number of application status changes by target status",
		},
		[]string{"status"},
	)

	DocumentUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "khusela_document_uploads_total",
			Help: "Total number of uploaded documents by owner kind",
		},
		[]string{"owner"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "khusela_notifications_sent_total",
			Help: "Total number of client notifications by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)
)
