//go:build unit

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.SlotClaim(true)
	m.SlotClaim(false)
	m.SlotClaim(false)
	m.PaymentCallback("COMPLETED")
	m.SignatureFailure()
	m.Cancellation("LATE_NOTICE")
	m.Reschedule(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotClaims.WithLabelValues("won")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.slotClaims.WithLabelValues("lost")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentCallbacks.WithLabelValues("COMPLETED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.signatureFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cancellations.WithLabelValues("LATE_NOTICE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reschedules.WithLabelValues("true")))
}

func TestNilBookingMetrics(t *testing.T) {
	var m *BookingMetrics
	assert.NotPanics(t, func() {
		m.SlotClaim(true)
		m.PaymentCallback("FAILED")
		m.SignatureFailure()
		m.Cancellation("NO_REFUND")
		m.Reschedule(false)
	})
}
