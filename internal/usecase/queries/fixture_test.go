//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/pkg/clock"
	"therapy-booking/internal/usecase/shared"
	"therapy-booking/tests/common/builder"
	"therapy-booking/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

var wednesday = availability.MustParseDate("2026-03-04")

type fixture struct {
	ctx      context.Context
	clock    *clock.MockClock
	store    *memstore.Store
	settings shared.BookingSettings

	therapist shared.TherapistSnapshot
	patient   shared.PatientSnapshot
	rule      *availability.Rule

	patientUser   user.Principal
	guardianUser  user.Principal
	therapistUser user.Principal
	adminUser     user.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := clock.NewMockClock(fixedNow)
	f := &fixture{
		ctx:   context.Background(),
		clock: clk,
		store: memstore.New(clk),
		settings: shared.BookingSettings{
			LeadTime:         3 * time.Hour,
			RescheduleWindow: 120 * time.Hour,
			RescheduleFee:    50000,
			Currency:         "LKR",
			Location:         time.UTC,
		},
		patientUser:   user.NewPrincipal(uuid.New(), user.RolePatient),
		guardianUser:  user.NewPrincipal(uuid.New(), user.RoleGuardian),
		therapistUser: user.NewPrincipal(uuid.New(), user.RoleTherapist),
		adminUser:     user.NewPrincipal(uuid.New(), user.RoleAdmin),
	}
	guardianID := f.guardianUser.UserID
	f.therapist = shared.TherapistSnapshot{ID: uuid.New(), UserID: f.therapistUser.UserID, Name: "Dr. Fernando", SessionRateCents: 500000}
	f.patient = shared.PatientSnapshot{ID: uuid.New(), UserID: f.patientUser.UserID, GuardianUserID: &guardianID, Name: "Kamala Jayasuriya"}
	f.store.AddTherapist(f.therapist)
	f.store.AddPatient(f.patient)

	rule, err := builder.NewRuleBuilder(f.therapist.ID).BuildDomain()
	require.NoError(t, err)
	f.rule = rule
	f.store.AddRule(rule)
	return f
}

func at(date availability.Date, hhmm string) time.Time {
	return availability.MustParseClockTime(hhmm).On(date, time.UTC)
}
