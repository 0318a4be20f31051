// Package policy holds the refund and fee rules applied when sessions are
// cancelled or moved. Everything here is pure and works in integer cents.
package policy

import "time"

type Tier string

const (
	TierFullNotice         Tier = "FULL_NOTICE"
	TierLateNotice         Tier = "LATE_NOTICE"
	TierNoRefund           Tier = "NO_REFUND"
	TierGuardianFullNotice Tier = "GUARDIAN_FULL_NOTICE"
	TierGuardianLateNotice Tier = "GUARDIAN_LATE_NOTICE"
	TierProviderCancelled  Tier = "PROVIDER_CANCELLED"
	TierUnpaid             Tier = "UNPAID"
)

// NoticeWindow separates full-notice from late-notice cancellations.
const NoticeWindow = 24 * time.Hour

const platformPercent = 10

type split struct {
	refundPercent int64
	tier          Tier
}

// RefundComputation is how a paid amount is divided after a cancellation.
// RefundCents + PlatformCents + TherapistCents always equals AmountCents.
type RefundComputation struct {
	Tier           Tier
	AmountCents    int64
	RefundCents    int64
	PlatformCents  int64
	TherapistCents int64
	HoursBefore    float64
}

// RetainedCents is everything not returned to the payer.
func (r RefundComputation) RetainedCents() int64 {
	return r.AmountCents - r.RefundCents
}

func (r RefundComputation) RefundDue() bool {
	return r.RefundCents > 0
}

func (r RefundComputation) RefundPercent() int64 {
	if r.AmountCents == 0 {
		return 0
	}
	return r.RefundCents * 100 / r.AmountCents
}

// PatientCancellation applies the own-pay tiers: 90/10/0 with a day's notice,
// 60/10/30 inside a day, nothing back once the session has started.
func PatientCancellation(scheduledAt, now time.Time, amountCents int64) RefundComputation {
	return compute(scheduledAt, now, amountCents,
		split{refundPercent: 90, tier: TierFullNotice},
		split{refundPercent: 60, tier: TierLateNotice},
	)
}

// GuardianCancellation uses the same splits as PatientCancellation under guardian tier names.
// The refund is paid out to the guardian's bank account.
func GuardianCancellation(scheduledAt, now time.Time, amountCents int64) RefundComputation {
	return compute(scheduledAt, now, amountCents,
		split{refundPercent: 90, tier: TierGuardianFullNotice},
		split{refundPercent: 60, tier: TierGuardianLateNotice},
	)
}

// ProviderCancellation refunds everything when the therapist or the practice cancels.
func ProviderCancellation(scheduledAt, now time.Time, amountCents int64) RefundComputation {
	return RefundComputation{
		Tier:        TierProviderCancelled,
		AmountCents: amountCents,
		RefundCents: amountCents,
		HoursBefore: hoursBefore(scheduledAt, now),
	}
}

func compute(scheduledAt, now time.Time, amountCents int64, full, late split) RefundComputation {
	until := scheduledAt.Sub(now)
	out := RefundComputation{AmountCents: amountCents, HoursBefore: until.Hours()}
	if amountCents <= 0 {
		out.Tier = TierUnpaid
		return out
	}

	var refundPercent int64
	switch {
	case until >= NoticeWindow:
		out.Tier, refundPercent = full.tier, full.refundPercent
	case until >= 0:
		out.Tier, refundPercent = late.tier, late.refundPercent
	default:
		out.Tier = TierNoRefund
	}

	out.RefundCents = amountCents * refundPercent / 100
	out.PlatformCents = amountCents * platformPercent / 100
	out.TherapistCents = amountCents - out.RefundCents - out.PlatformCents
	return out
}

func hoursBefore(scheduledAt, now time.Time) float64 {
	return scheduledAt.Sub(now).Hours()
}

// FeeDecision says whether moving a session costs money.
type FeeDecision struct {
	Required    bool
	AmountCents int64
	FreeWindow  time.Duration
}

// RescheduleFee is free when the session is at least freeWindow away, otherwise flatFeeCents.
func RescheduleFee(scheduledAt, now time.Time, freeWindow time.Duration, flatFeeCents int64) FeeDecision {
	if scheduledAt.Sub(now) >= freeWindow || flatFeeCents <= 0 {
		return FeeDecision{FreeWindow: freeWindow}
	}
	return FeeDecision{Required: true, AmountCents: flatFeeCents, FreeWindow: freeWindow}
}
