package request

import (
	"strings"

	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/usecase/commands"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CustomerRequest struct {
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"max=30"`
	Address   string `json:"address" binding:"max=255"`
	City      string `json:"city" binding:"max=100"`
	Country   string `json:"country" binding:"max=100"`
}

func (c CustomerRequest) ToShared() shared.Customer {
	return shared.Customer{
		FirstName: strings.TrimSpace(c.FirstName),
		LastName:  strings.TrimSpace(c.LastName),
		Email:     strings.TrimSpace(c.Email),
		Phone:     strings.TrimSpace(c.Phone),
		Address:   strings.TrimSpace(c.Address),
		City:      strings.TrimSpace(c.City),
		Country:   strings.TrimSpace(c.Country),
	}
}

type InitiatePaymentRequest struct {
	Channel     string          `json:"channel" binding:"required,oneof=PATIENT GUARDIAN"`
	PatientID   uuid.UUID       `json:"patientId" binding:"required"`
	TherapistID uuid.UUID       `json:"therapistId" binding:"required"`
	Date        string          `json:"date" binding:"required"`
	StartTime   string          `json:"startTime" binding:"required"`
	AmountCents int64           `json:"amountCents" binding:"required,min=1"`
	SessionType string          `json:"sessionType" binding:"max=50"`
	Customer    CustomerRequest `json:"customer"`
}

func (r InitiatePaymentRequest) ToInput() commands.InitiatePaymentInput {
	return commands.InitiatePaymentInput{
		Channel:     session.BookingChannel(r.Channel),
		PatientID:   r.PatientID,
		TherapistID: r.TherapistID,
		Date:        strings.TrimSpace(r.Date),
		StartTime:   strings.TrimSpace(r.StartTime),
		AmountCents: r.AmountCents,
		SessionType: r.SessionType,
		Customer:    r.Customer.ToShared(),
	}
}

// NotifyForm is the gateway's form-encoded server callback.
type NotifyForm struct {
	MerchantID    string `form:"merchant_id" binding:"required"`
	OrderID       string `form:"order_id" binding:"required"`
	PaymentID     string `form:"payment_id"`
	Amount        string `form:"payhere_amount" binding:"required"`
	Currency      string `form:"payhere_currency" binding:"required"`
	StatusCode    string `form:"status_code" binding:"required"`
	Signature     string `form:"md5sig" binding:"required"`
	Method        string `form:"method"`
	StatusMessage string `form:"status_message"`
	Custom1       string `form:"custom_1"`
	Custom2       string `form:"custom_2"`
}

func (f NotifyForm) ToNotification() shared.GatewayNotification {
	return shared.GatewayNotification{
		MerchantID:    f.MerchantID,
		OrderID:       f.OrderID,
		PaymentID:     f.PaymentID,
		Amount:        f.Amount,
		Currency:      f.Currency,
		StatusCode:    f.StatusCode,
		Signature:     f.Signature,
		Method:        f.Method,
		StatusMessage: f.StatusMessage,
		Custom1:       f.Custom1,
		Custom2:       f.Custom2,
	}
}
