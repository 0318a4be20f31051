package shared

import (
	"fmt"
	"time"

	"therapy-booking/internal/pkg/config"

	"github.com/google/uuid"
)

// BookingSettings are the policy knobs every booking use case reads.
type BookingSettings struct {
	LeadTime          time.Duration
	RescheduleWindow  time.Duration
	RescheduleFee     int64
	Currency          string
	AdminUserID       uuid.UUID
	Location          *time.Location
	IntentTTL         time.Duration
	IdempotencyKeyTTL time.Duration
}

func NewBookingSettings(cfg config.Config) (BookingSettings, error) {
	adminID, err := uuid.Parse(cfg.Booking.AdminUserID)
	if err != nil {
		return BookingSettings{}, fmt.Errorf("invalid BOOKING_ADMIN_USER_ID: %w", err)
	}
	return BookingSettings{
		LeadTime:          cfg.Booking.LeadTime,
		RescheduleWindow:  cfg.Booking.RescheduleWindow,
		RescheduleFee:     cfg.Booking.RescheduleFee,
		Currency:          cfg.Booking.Currency,
		AdminUserID:       adminID,
		Location:          cfg.Booking.Location(),
		IntentTTL:         cfg.Booking.IntentTTL,
		IdempotencyKeyTTL: cfg.Booking.IdempotencyKeyTTL,
	}, nil
}
