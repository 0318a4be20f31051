// Package gateway adapts the hosted-checkout payment gateway to the booking use cases.
package gateway

import (
	"crypto/md5" // #nosec G501 -- the gateway's signature scheme is MD5 based
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/pkg/config"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/shared"
)

// Gateway status codes carried in the notify callback.
const (
	StatusCodeSuccess    = "2"
	StatusCodePending    = "0"
	StatusCodeCancelled  = "-1"
	StatusCodeFailed     = "-2"
	StatusCodeChargeback = "-3"
)

type PayHere struct {
	cfg config.GatewayConfig
	// secretDigest is UPPER(MD5(secret)); the raw secret never leaves this struct.
	secretDigest string
}

func NewPayHere(cfg config.GatewayConfig) *PayHere {
	return &PayHere{
		cfg:          cfg,
		secretDigest: md5Upper(cfg.MerchantSecret),
	}
}

func (p *PayHere) Checkout(intent *payment.Intent, items string, customer shared.Customer) shared.CheckoutParams {
	amount := payment.FormatAmount(intent.AmountCents())
	return shared.CheckoutParams{
		CheckoutURL: p.cfg.CheckoutURL,
		MerchantID:  p.cfg.MerchantID,
		ReturnURL:   p.cfg.ReturnURL,
		CancelURL:   p.cfg.CancelURL,
		NotifyURL:   p.cfg.NotifyURL,
		OrderID:     intent.OrderID(),
		Items:       items,
		Currency:    intent.Currency(),
		Amount:      amount,
		FirstName:   customer.FirstName,
		LastName:    customer.LastName,
		Email:       customer.Email,
		Phone:       customer.Phone,
		Address:     customer.Address,
		City:        customer.City,
		Country:     customer.Country,
		Custom1:     intent.Purpose().String(),
		Custom2:     intent.PatientID().String(),
		Hash:        p.CheckoutHash(intent.OrderID(), amount, intent.Currency()),
	}
}

// CheckoutHash is UPPER(MD5(merchant_id + order_id + amount + currency + UPPER(MD5(secret)))).
func (p *PayHere) CheckoutHash(orderID, amount, currency string) string {
	return md5Upper(p.cfg.MerchantID + orderID + amount + currency + p.secretDigest)
}

// NotifySignature is UPPER(MD5(merchant_id + order_id + amount + currency + status_code + UPPER(MD5(secret)))).
func (p *PayHere) NotifySignature(n shared.GatewayNotification) string {
	return md5Upper(n.MerchantID + n.OrderID + n.Amount + n.Currency + n.StatusCode + p.secretDigest)
}

func (p *PayHere) Verify(n shared.GatewayNotification) error {
	if n.MerchantID != p.cfg.MerchantID {
		slog.Warn("gateway callback for foreign merchant",
			slog.String("order_id", n.OrderID),
			slog.String("merchant_id", n.MerchantID))
		return errs.Mark(errs.New("merchant id mismatch"), errs.ErrInvalidSignature)
	}

	computed := p.NotifySignature(n)
	received := strings.ToUpper(strings.TrimSpace(n.Signature))
	if received == "" || subtle.ConstantTimeCompare([]byte(computed), []byte(received)) != 1 {
		slog.Warn("gateway signature mismatch",
			slog.String("order_id", n.OrderID),
			slog.String("computed_signature", computed),
			slog.String("received_signature", n.Signature))
		return errs.Mark(errs.New("signature mismatch"), errs.ErrInvalidSignature)
	}
	return nil
}

func (p *PayHere) MapStatus(code string) (payment.Status, error) {
	switch strings.TrimSpace(code) {
	case StatusCodeSuccess:
		return payment.StatusCompleted, nil
	case StatusCodePending:
		return payment.StatusPending, nil
	case StatusCodeCancelled, StatusCodeChargeback:
		return payment.StatusCancelled, nil
	case StatusCodeFailed:
		return payment.StatusFailed, nil
	default:
		return "", errs.Mark(fmt.Errorf("unknown gateway status code %q", code), errs.ErrValidation)
	}
}

func md5Upper(s string) string {
	sum := md5.Sum([]byte(s)) // #nosec G401
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
