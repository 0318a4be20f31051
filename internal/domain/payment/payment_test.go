//go:build unit

package payment_test

import (
	"testing"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	cases := map[int64]string{
		100000: "1000.00",
		5:      "0.05",
		123456: "1234.56",
		0:      "0.00",
	}
	for cents, want := range cases {
		assert.Equal(t, want, payment.FormatAmount(cents))
	}
}

func TestParseAmount(t *testing.T) {
	ok := map[string]int64{
		"1000.00":  100000,
		"1000":     100000,
		"1000.5":   100050,
		"1,000.00": 100000,
		" 0.05 ":   5,
	}
	for in, want := range ok {
		got, err := payment.ParseAmount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "abc", "10.001", "-5.00", "1.x"} {
		_, err := payment.ParseAmount(bad)
		assert.ErrorIs(t, err, payment.ErrInvalidAmount, bad)
	}
}

func TestNewOrderID(t *testing.T) {
	id, err := payment.NewOrderID(time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-20250303-[0-9A-F]{8}$`, id)
	assert.True(t, payment.ValidOrderID(id))

	other, err := payment.NewOrderID(time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func newBookingIntent(t *testing.T) *payment.Intent {
	t.Helper()
	orderID, err := payment.NewOrderID(time.Now())
	require.NoError(t, err)
	intent, err := payment.NewIntent(payment.NewIntentParams{
		OrderID:     orderID,
		Purpose:     payment.PurposeBooking,
		PatientID:   uuid.New(),
		PayerUserID: uuid.New(),
		AmountCents: 500000,
		Currency:    "LKR",
		Booking: &payment.PendingBooking{
			TherapistID:     uuid.New(),
			Date:            availability.MustParseDate("2025-03-03"),
			Start:           availability.MustParseClockTime("10:00"),
			SlotID:          uuid.New(),
			SessionType:     "individual",
			DurationMinutes: 45,
		},
		Now: time.Now(),
	})
	require.NoError(t, err)
	return intent
}

func TestIntentLifecycle(t *testing.T) {
	t.Run("new intent starts pending and unlinked", func(t *testing.T) {
		intent := newBookingIntent(t)
		assert.Equal(t, payment.StatusPending, intent.Status())
		assert.False(t, intent.IsLinked())
		assert.True(t, intent.PaidBy(intent.PayerUserID()))
	})

	t.Run("settle only from pending", func(t *testing.T) {
		intent := newBookingIntent(t)
		require.NoError(t, intent.Settle(payment.StatusCompleted, "320027150501", "VISA", "2", time.Now()))
		assert.True(t, intent.IsCompleted())

		err := intent.Settle(payment.StatusFailed, "", "", "-2", time.Now())
		assert.ErrorIs(t, err, payment.ErrNotPending)
		assert.True(t, intent.IsCompleted())
	})

	t.Run("session link is set once", func(t *testing.T) {
		intent := newBookingIntent(t)
		first := uuid.New()
		require.NoError(t, intent.LinkSession(first, time.Now()))
		assert.ErrorIs(t, intent.LinkSession(uuid.New(), time.Now()), payment.ErrAlreadyLinked)
		assert.Equal(t, first, *intent.SessionID())
	})

	t.Run("validation", func(t *testing.T) {
		_, err := payment.NewIntent(payment.NewIntentParams{OrderID: "ORD-20250303-ABCDEF01", Purpose: payment.PurposeRescheduleFee, AmountCents: 0})
		assert.ErrorIs(t, err, payment.ErrInvalidAmount)

		_, err = payment.NewIntent(payment.NewIntentParams{OrderID: "bad", Purpose: payment.PurposeRescheduleFee, AmountCents: 100})
		assert.ErrorIs(t, err, payment.ErrInvalidOrderID)

		_, err = payment.NewIntent(payment.NewIntentParams{OrderID: "ORD-20250303-ABCDEF01", Purpose: payment.PurposeBooking, AmountCents: 100})
		assert.ErrorIs(t, err, payment.ErrInvalidPurpose)
	})
}
