package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wodup_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wodup_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wodup_reservations_total",
			Help: "Total number of reservations created",
		},
		[]string{"status"},
	)

	ReservationCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wodup_reservation_cancellations_total",
			Help: "Total number of reservation cancellations",
		},
	)

	SessionRefundsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wodup_session_refunds_total",
			Help: "Total number of subscription sessions returned on cancellation",
		},
	)

	ClassesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wodup_classes_created_total",
			Help: "Total number of classes created",
		},
	)

	SubscriptionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wodup_subscriptions_created_total",
			Help: "Total number of subscriptions created",
		},
		[]string{"tariff"},
	)

	ActiveSubscriptions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wodup_active_subscriptions",
			Help: "Number of active subscriptions",
		},
		[]string{"tariff"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservation(status string) {
	ReservationsTotal.WithLabelValues(status).Inc()
}

func RecordCancellation() {
	ReservationCancellationsTotal.Inc()
}

func RecordSessionRefund() {
	SessionRefundsTotal.Inc()
}

func RecordClassCreated() {
	ClassesCreatedTotal.Inc()
}

func RecordSubscription(tariff string) {
	SubscriptionsCreatedTotal.WithLabelValues(tariff).Inc()
}
