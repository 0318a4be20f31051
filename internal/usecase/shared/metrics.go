package shared

// BookingMetrics receives booking outcomes. Implementations must tolerate a nil receiver.
type BookingMetrics interface {
	SlotClaim(won bool)
	PaymentCallback(status string)
	SignatureFailure()
	Cancellation(tier string)
	Reschedule(feeCharged bool)
}
