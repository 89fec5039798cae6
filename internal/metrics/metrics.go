package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	reservationCreated  *prometheus.CounterVec
	reservationRejected *prometheus.CounterVec
	reservationCanceled prometheus.Counter
	notification        *prometheus.CounterVec
}

// New builds the counters and registers them with reg. It panics if reg already holds them.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reservationCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "teetimes",
				Name:      "reservation_created_total",
				Help:      "Count of accepted reservations by tournament.",
			},
			[]string{"tournament"},
		),
		reservationRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "teetimes",
				Name:      "reservation_rejected_total",
				Help:      "Count of rejected reservations by reason.",
			},
			[]string{"reason"},
		),
		reservationCanceled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "teetimes",
				Name:      "reservation_canceled_total",
				Help:      "Count of reservations removed by golfers.",
			},
		),
		notification: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "teetimes",
				Name:      "notification_total",
				Help:      "Count of confirmation messages by channel and outcome.",
			},
			[]string{"channel", "outcome"},
		),
	}
	reg.MustRegister(m.reservationCreated, m.reservationRejected, m.reservationCanceled, m.notification)
	return m
}

func (m *Metrics) IncReservationCreated(tournament string) {
	if m == nil {
		return
	}
	m.reservationCreated.WithLabelValues(tournament).Inc()
}

func (m *Metrics) IncReservationRejected(reason string) {
	if m == nil {
		return
	}
	m.reservationRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncReservationCanceled() {
	if m == nil {
		return
	}
	m.reservationCanceled.Inc()
}

func (m *Metrics) IncNotificationSent(channel string) {
	if m == nil {
		return
	}
	m.notification.WithLabelValues(channel, "sent").Inc()
}

func (m *Metrics) IncNotificationFailed(channel string) {
	if m == nil {
		return
	}
	m.notification.WithLabelValues(channel, "failed").Inc()
}
