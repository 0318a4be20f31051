//go:build unit

package gateway_test

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/infra/gateway"
	"therapy-booking/internal/pkg/config"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upperMD5(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func newGateway() (*gateway.PayHere, config.GatewayConfig) {
	cfg := config.NewTestConfig().Gateway
	return gateway.NewPayHere(cfg), cfg
}

func TestCheckoutHash(t *testing.T) {
	gw, cfg := newGateway()

	want := upperMD5(cfg.MerchantID + "ORD-20250310-0A1B2C3D" + "1000.00" + "LKR" + upperMD5(cfg.MerchantSecret))
	assert.Equal(t, want, gw.CheckoutHash("ORD-20250310-0A1B2C3D", "1000.00", "LKR"))
}

func TestCheckout(t *testing.T) {
	gw, cfg := newGateway()
	patientID := uuid.New()

	intent, err := payment.NewIntent(payment.NewIntentParams{
		OrderID:     "ORD-20250310-0A1B2C3D",
		Purpose:     payment.PurposeBooking,
		PatientID:   patientID,
		PayerUserID: uuid.New(),
		AmountCents: 100000,
		Currency:    "LKR",
		Booking: &payment.PendingBooking{
			TherapistID:     uuid.New(),
			Date:            availability.MustParseDate("2025-03-10"),
			Start:           availability.MustParseClockTime("10:00"),
			SlotID:          uuid.New(),
			SessionType:     "individual",
			DurationMinutes: 60,
		},
		Now: time.Now(),
	})
	require.NoError(t, err)

	params := gw.Checkout(intent, "Therapy session", shared.Customer{FirstName: "Nimal", LastName: "Perera", Email: "nimal@example.com"})

	assert.Equal(t, cfg.MerchantID, params.MerchantID)
	assert.Equal(t, "1000.00", params.Amount)
	assert.Equal(t, "LKR", params.Currency)
	assert.Equal(t, "BOOKING", params.Custom1)
	assert.Equal(t, patientID.String(), params.Custom2)
	assert.Equal(t, cfg.NotifyURL, params.NotifyURL)
	assert.Equal(t, gw.CheckoutHash(intent.OrderID(), "1000.00", "LKR"), params.Hash)
}

func TestVerify(t *testing.T) {
	gw, cfg := newGateway()

	signed := func(mutate func(*shared.GatewayNotification)) shared.GatewayNotification {
		n := shared.GatewayNotification{
			MerchantID: cfg.MerchantID,
			OrderID:    "ORD-20250310-0A1B2C3D",
			PaymentID:  "320025071278",
			Amount:     "1000.00",
			Currency:   "LKR",
			StatusCode: "2",
		}
		n.Signature = upperMD5(n.MerchantID + n.OrderID + n.Amount + n.Currency + n.StatusCode + upperMD5(cfg.MerchantSecret))
		if mutate != nil {
			mutate(&n)
		}
		return n
	}

	testCases := []struct {
		name    string
		n       shared.GatewayNotification
		wantErr bool
	}{
		{name: "valid signature", n: signed(nil)},
		{name: "lower-case signature accepted", n: signed(func(n *shared.GatewayNotification) { n.Signature = strings.ToLower(n.Signature) })},
		{name: "tampered amount", n: signed(func(n *shared.GatewayNotification) { n.Amount = "1.00" }), wantErr: true},
		{name: "tampered status", n: signed(func(n *shared.GatewayNotification) { n.StatusCode = "-2" }), wantErr: true},
		{name: "foreign merchant", n: signed(func(n *shared.GatewayNotification) { n.MerchantID = "999" }), wantErr: true},
		{name: "missing signature", n: signed(func(n *shared.GatewayNotification) { n.Signature = "" }), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := gw.Verify(tc.n)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errs.Is(err, errs.ErrInvalidSignature))
				assert.NotContains(t, err.Error(), cfg.MerchantSecret)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVerify_SingleCharacterChange(t *testing.T) {
	gw, cfg := newGateway()
	n := shared.GatewayNotification{
		MerchantID: cfg.MerchantID,
		OrderID:    "ORD-20250310-0A1B2C3D",
		PaymentID:  "320025071278",
		Amount:     "1000.00",
		Currency:   "LKR",
		StatusCode: "2",
	}
	n.Signature = upperMD5(n.MerchantID + n.OrderID + n.Amount + n.Currency + n.StatusCode + upperMD5(cfg.MerchantSecret))
	require.NoError(t, gw.Verify(n))

	valid := n.Signature
	for i := range len(valid) {
		sig := []byte(valid)
		if sig[i] == '0' {
			sig[i] = '1'
		} else {
			sig[i] = '0'
		}
		n.Signature = string(sig)
		err := gw.Verify(n)
		assert.True(t, errs.Is(err, errs.ErrInvalidSignature), "position %d: got %v", i, err)
	}

	n.Signature = valid[:len(valid)-1]
	assert.True(t, errs.Is(gw.Verify(n), errs.ErrInvalidSignature))
	n.Signature = valid + "0"
	assert.True(t, errs.Is(gw.Verify(n), errs.ErrInvalidSignature))
}

func TestMapStatus(t *testing.T) {
	gw, _ := newGateway()

	testCases := []struct {
		code string
		want payment.Status
	}{
		{"2", payment.StatusCompleted},
		{"0", payment.StatusPending},
		{"-1", payment.StatusCancelled},
		{"-2", payment.StatusFailed},
		{"-3", payment.StatusCancelled},
	}
	for _, tc := range testCases {
		got, err := gw.MapStatus(tc.code)
		require.NoError(t, err, tc.code)
		assert.Equal(t, tc.want, got, tc.code)
	}

	_, err := gw.MapStatus("7")
	assert.True(t, errs.Is(err, errs.ErrValidation))
}
