// Package metrics exposes booking outcomes to Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type BookingMetrics struct {
	slotClaims        *prometheus.CounterVec
	paymentCallbacks  *prometheus.CounterVec
	signatureFailures prometheus.Counter
	cancellations     *prometheus.CounterVec
	reschedules       *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		slotClaims: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "therapy",
			Subsystem: "booking",
			Name:      "slot_claims_total",
			Help:      "Conditional slot claims by outcome",
		}, []string{"result"}),
		paymentCallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "therapy",
			Subsystem: "booking",
			Name:      "payment_callbacks_total",
			Help:      "Verified gateway callbacks by mapped status",
		}, []string{"status"}),
		signatureFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "therapy",
			Subsystem: "booking",
			Name:      "payment_signature_failures_total",
			Help:      "Gateway callbacks rejected for a bad signature",
		}),
		cancellations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "therapy",
			Subsystem: "booking",
			Name:      "cancellations_total",
			Help:      "Session cancellations by refund tier",
		}, []string{"tier"}),
		reschedules: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "therapy",
			Subsystem: "booking",
			Name:      "reschedules_total",
			Help:      "Session reschedules by whether a fee was charged",
		}, []string{"fee_charged"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotClaims, m.paymentCallbacks, m.signatureFailures, m.cancellations, m.reschedules)
	return m
}

func (m *BookingMetrics) SlotClaim(won bool) {
	if m == nil {
		return
	}
	result := "lost"
	if won {
		result = "won"
	}
	m.slotClaims.WithLabelValues(result).Inc()
}

func (m *BookingMetrics) PaymentCallback(status string) {
	if m == nil {
		return
	}
	m.paymentCallbacks.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) SignatureFailure() {
	if m == nil {
		return
	}
	m.signatureFailures.Inc()
}

func (m *BookingMetrics) Cancellation(tier string) {
	if m == nil {
		return
	}
	m.cancellations.WithLabelValues(tier).Inc()
}

func (m *BookingMetrics) Reschedule(feeCharged bool) {
	if m == nil {
		return
	}
	m.reschedules.WithLabelValues(strconv.FormatBool(feeCharged)).Inc()
}
