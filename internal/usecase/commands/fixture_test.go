//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/infra/gateway"
	"therapy-booking/internal/pkg/clock"
	"therapy-booking/internal/pkg/config"
	"therapy-booking/internal/usecase/commands"
	"therapy-booking/internal/usecase/shared"
	"therapy-booking/tests/common/builder"
	"therapy-booking/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Monday morning. The default rule offers Wednesday 09:00, 10:00 and 11:00.
var fixedNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

const (
	wednesday = "2026-03-04"
	rateCents = int64(500000)
	feeCents  = int64(50000)
)

type recordingMetrics struct {
	mu         sync.Mutex
	claimsWon  int
	claimsLost int
	callbacks  []string
	sigFails   int
	tiers      []string
	reschedule []bool
}

func (m *recordingMetrics) SlotClaim(won bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if won {
		m.claimsWon++
	} else {
		m.claimsLost++
	}
}

func (m *recordingMetrics) PaymentCallback(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, status)
}

func (m *recordingMetrics) SignatureFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sigFails++
}

func (m *recordingMetrics) Cancellation(tier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tiers = append(m.tiers, tier)
}

func (m *recordingMetrics) Reschedule(feeCharged bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reschedule = append(m.reschedule, feeCharged)
}

type fixture struct {
	ctx      context.Context
	clock    *clock.MockClock
	store    *memstore.Store
	settings shared.BookingSettings
	gateway  *gateway.PayHere
	gwCfg    config.GatewayConfig
	metrics  *recordingMetrics

	therapist shared.TherapistSnapshot
	patient   shared.PatientSnapshot

	patientUser   user.Principal
	guardianUser  user.Principal
	therapistUser user.Principal
	adminUser     user.Principal
	strangerUser  user.Principal

	availability  commands.AvailabilityCommands
	booking       commands.BookingCommands
	payments      commands.PaymentCommands
	sessions      commands.SessionCommands
	refunds       commands.RefundCommands
	notifications commands.NotificationCommands
	maintenance   commands.MaintenanceCommands
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := clock.NewMockClock(fixedNow)
	store := memstore.New(clk)
	cfg := config.NewTestConfig()
	gw := gateway.NewPayHere(cfg.Gateway)

	f := &fixture{
		ctx:   context.Background(),
		clock: clk,
		store: store,
		settings: shared.BookingSettings{
			LeadTime:          3 * time.Hour,
			RescheduleWindow:  120 * time.Hour,
			RescheduleFee:     feeCents,
			Currency:          "LKR",
			AdminUserID:       uuid.New(),
			Location:          time.UTC,
			IntentTTL:         2 * time.Hour,
			IdempotencyKeyTTL: 24 * time.Hour,
		},
		gateway:       gw,
		gwCfg:         cfg.Gateway,
		metrics:       &recordingMetrics{},
		patientUser:   user.NewPrincipal(uuid.New(), user.RolePatient),
		guardianUser:  user.NewPrincipal(uuid.New(), user.RoleGuardian),
		therapistUser: user.NewPrincipal(uuid.New(), user.RoleTherapist),
		strangerUser:  user.NewPrincipal(uuid.New(), user.RolePatient),
	}
	f.adminUser = user.NewPrincipal(f.settings.AdminUserID, user.RoleAdmin)

	guardianID := f.guardianUser.UserID
	f.therapist = shared.TherapistSnapshot{
		ID:               uuid.New(),
		UserID:           f.therapistUser.UserID,
		Name:             "Dr. Perera",
		SessionRateCents: rateCents,
	}
	f.patient = shared.PatientSnapshot{
		ID:             uuid.New(),
		UserID:         f.patientUser.UserID,
		GuardianUserID: &guardianID,
		Name:           "Nimal Silva",
		Email:          "nimal@example.com",
		Phone:          "0771234567",
	}
	store.AddTherapist(f.therapist)
	store.AddPatient(f.patient)

	rule, err := builder.NewRuleBuilder(f.therapist.ID).BuildDomain()
	require.NoError(t, err)
	store.AddRule(rule)

	f.availability = commands.NewAvailabilityUseCase(store, f.settings)
	f.booking = commands.NewBookingUseCase(store, f.settings, f.metrics, clk)
	f.payments = commands.NewPaymentUseCase(store, gw, f.booking, f.settings, f.metrics, clk)
	f.sessions = commands.NewSessionUseCase(store, f.settings, f.metrics, clk)
	f.refunds = commands.NewRefundUseCase(store, f.settings, clk)
	f.notifications = commands.NewNotificationUseCase(store, clk)
	f.maintenance = commands.NewMaintenanceUseCase(store, clk)
	return f
}

func (f *fixture) bookingInput(start string) commands.InitiatePaymentInput {
	return commands.InitiatePaymentInput{
		Channel:     session.ChannelPatient,
		PatientID:   f.patient.ID,
		TherapistID: f.therapist.ID,
		Date:        wednesday,
		StartTime:   start,
		AmountCents: rateCents,
	}
}

// notify builds a correctly signed gateway callback for intent.
func (f *fixture) notify(intent *payment.Intent, statusCode string) shared.GatewayNotification {
	n := shared.GatewayNotification{
		MerchantID: f.gwCfg.MerchantID,
		OrderID:    intent.OrderID(),
		PaymentID:  "320025" + intent.OrderID()[len(intent.OrderID())-4:],
		Amount:     payment.FormatAmount(intent.AmountCents()),
		Currency:   intent.Currency(),
		StatusCode: statusCode,
		Method:     "VISA",
	}
	n.Signature = f.gateway.NotifySignature(n)
	return n
}

// initiate creates a pending booking intent for the patient at start on Wednesday.
func (f *fixture) initiate(t *testing.T, start string) *payment.Intent {
	t.Helper()
	res, err := f.payments.InitiatePayment(f.ctx, f.patientUser, f.bookingInput(start), uuid.New())
	require.NoError(t, err)
	return res.Payment
}

// paidSession runs initiate + successful callback and returns the materialized session.
func (f *fixture) paidSession(t *testing.T, start string) (*payment.Intent, *session.Session) {
	t.Helper()
	intent := f.initiate(t, start)
	res, err := f.payments.ConfirmPayment(f.ctx, f.notify(intent, gateway.StatusCodeSuccess))
	require.NoError(t, err)
	require.NotNil(t, res.Session)
	return res.Payment, res.Session
}

func (f *fixture) slot(t *testing.T, start string) *availability.Slot {
	t.Helper()
	for _, s := range f.store.Slots(f.therapist.ID) {
		if s.Date().String() == wednesday && s.Start().String() == start {
			return s
		}
	}
	t.Fatalf("no slot row for %s %s", wednesday, start)
	return nil
}
