package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "velostudio_bookings_total",
			Help: "Total number of booking attempts by outcome",
		},
		[]string{"result"},
	)

	CancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "velostudio_cancellations_total",
			Help: "Total number of cancellation attempts by outcome",
		},
		[]string{"result"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "velostudio_notifications_total",
			Help: "Total number of recorded notifications",
		},
		[]string{"event"},
	)

	NotificationDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "velostudio_notification_deliveries_total",
			Help: "Total number of best-effort notification deliveries",
		},
		[]string{"event", "status"},
	)
)
