package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncReservationRejected("full")
	m.IncReservationRejected("full")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.reservationRejected.WithLabelValues("full")))

	m.IncNotificationFailed("email")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notification.WithLabelValues("email", "failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.notification.WithLabelValues("email", "sent")))

	m.IncReservationCanceled()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reservationCanceled))
}

func TestNew_RegistriesAreIndependent(t *testing.T) {
	first := prometheus.NewRegistry()
	second := prometheus.NewRegistry()
	a := New(first)
	New(second)

	a.IncReservationCreated("U.S. Open")

	n, err := testutil.GatherAndCount(first, "teetimes_reservation_created_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = testutil.GatherAndCount(second, "teetimes_reservation_created_total")
	assert.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.Panics(t, func() { New(first) }, "same registry twice")
}

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncReservationCreated("U.S. Open")
		m.IncReservationRejected("full")
		m.IncReservationCanceled()
		m.IncNotificationSent("sms")
		m.IncNotificationFailed("sms")
	})
}
