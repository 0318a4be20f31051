package queries

import (
	"context"

	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/shared"
)

type PaymentQueries interface {
	GetPayment(ctx context.Context, p user.Principal, orderID string) (*PaymentView, error)
}

type paymentQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewPaymentQueries(uow shared.UnitOfWork) PaymentQueries {
	return &paymentQueriesImpl{uow: uow}
}

func (q *paymentQueriesImpl) GetPayment(ctx context.Context, p user.Principal, orderID string) (view *PaymentView, err error) {
	ctx, span := startSpan(ctx, "PaymentQueries.GetPayment")
	defer func() { endSpan(span, err) }()

	reads := q.uow.CommandReads()
	intent, err := reads.PaymentByOrderID(ctx, orderID)
	if err != nil {
		return nil, lookupErr(err, "payment")
	}
	if err = q.checkAccess(ctx, reads, p, intent); err != nil {
		return nil, err
	}
	return ToPaymentView(intent), nil
}

// checkAccess lets the payer, the patient side and the booked therapist see a payment.
func (q *paymentQueriesImpl) checkAccess(ctx context.Context, reads shared.CommandReads, p user.Principal, intent *payment.Intent) error {
	if p.IsPrivileged() || intent.PaidBy(p.UserID) {
		return nil
	}
	patient, err := reads.PatientByID(ctx, intent.PatientID())
	if err != nil {
		return lookupErr(err, "patient")
	}
	if shared.CanActForPatient(p, patient) {
		return nil
	}
	if b := intent.Booking(); b != nil && p.IsTherapist() {
		therapist, err := reads.TherapistByID(ctx, b.TherapistID)
		if err != nil {
			return lookupErr(err, "therapist")
		}
		if shared.CanActForTherapist(p, therapist) {
			return nil
		}
	}
	return errs.Mark(errs.New("payment belongs to another user"), errs.ErrForbidden)
}

func ToPaymentView(i *payment.Intent) *PaymentView {
	view := &PaymentView{
		ID:               i.ID(),
		OrderID:          i.OrderID(),
		Purpose:          i.Purpose().String(),
		Status:           i.Status().String(),
		AmountCents:      i.AmountCents(),
		Currency:         i.Currency(),
		PatientID:        i.PatientID(),
		SessionID:        i.SessionID(),
		GatewayPaymentID: i.GatewayPaymentID(),
		PaymentMethod:    i.PaymentMethod(),
		CreatedAt:        i.CreatedAt(),
		UpdatedAt:        i.UpdatedAt(),
	}
	if b := i.Booking(); b != nil {
		therapistID := b.TherapistID
		date := b.Date.String()
		start := b.Start.String()
		view.TherapistID = &therapistID
		view.BookingDate = &date
		view.StartTime = &start
		view.SessionType = b.SessionType
	}
	if r := i.Refund(); r != nil {
		cents := r.Cents
		tier := r.Tier
		view.RefundCents = &cents
		view.RefundTier = &tier
	}
	return view
}
