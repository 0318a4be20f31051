//go:build e2e

package booking

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/handler/dto/request"
	"therapy-booking/internal/handler/dto/response"
	"therapy-booking/internal/infra/gateway"
	"therapy-booking/internal/usecase/shared"
	"therapy-booking/tests/common/authtest"
	"therapy-booking/tests/common/dbtest"
	"therapy-booking/tests/common/httptest"
	"therapy-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const sessionRateCents = 500000

type BookingFlowSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
	gw  *gateway.PayHere

	therapistUser uuid.UUID
	therapistID   uuid.UUID
	patientUser   uuid.UUID
	patientID     uuid.UUID
	rivalUser     uuid.UUID
	rivalID       uuid.UUID
	date          string
}

func TestBookingFlowSuite(t *testing.T) {
	suite.Run(t, new(BookingFlowSuite))
}

func (s *BookingFlowSuite) SetupTest() {
	s.SharedSuite.SetupTest()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
	s.gw = gateway.NewPayHere(s.Config.Gateway)

	t := s.T()
	s.therapistUser, s.patientUser, s.rivalUser = uuid.New(), uuid.New(), uuid.New()
	s.therapistID = dbtest.CreateTherapist(t, s.DB, s.therapistUser, "Dr Nimal Perera", sessionRateCents)
	s.patientID = dbtest.CreatePatient(t, s.DB, s.patientUser, nil, "Kamala Silva")
	s.rivalID = dbtest.CreatePatient(t, s.DB, s.rivalUser, nil, "Sunil Fernando")

	s.date = time.Now().In(s.Config.Booking.Location()).AddDate(0, 0, 7).Format("2006-01-02")
	s.publishAvailability()
}

func (s *BookingFlowSuite) token(userID uuid.UUID, role user.Role) string {
	return s.jwt.GenerateToken(s.T(), userID, role)
}

func (s *BookingFlowSuite) publishAvailability() {
	body := request.ReplaceAvailabilityRequest{Rules: []request.RuleRequest{{
		SpecificDate:   &s.date,
		StartTime:      "09:00",
		EndTime:        "12:00",
		SessionMinutes: 60,
	}}}
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPut,
		"/api/therapists/"+s.therapistID.String()+"/availability", body, s.token(s.therapistUser, user.RoleTherapist))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *BookingFlowSuite) slots() response.DaySlotsResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
		"/api/therapists/"+s.therapistID.String()+"/slots?date="+s.date, nil, s.token(s.patientUser, user.RolePatient))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var day response.DaySlotsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &day))
	return day
}

func (s *BookingFlowSuite) slotAt(start string) response.SlotResponse {
	for _, slot := range s.slots().Slots {
		if slot.StartTime == start {
			return slot
		}
	}
	s.FailNow("slot not offered", start)
	return response.SlotResponse{}
}

func (s *BookingFlowSuite) initiate(userID, patientID uuid.UUID, key string) (int, response.InitiatePaymentResponse) {
	body := request.InitiatePaymentRequest{
		Channel:     "PATIENT",
		PatientID:   patientID,
		TherapistID: s.therapistID,
		Date:        s.date,
		StartTime:   "10:00",
		AmountCents: sessionRateCents,
	}
	w := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/payments/intents", body,
		s.token(userID, user.RolePatient), map[string]string{"Idempotency-Key": key})
	s.Require().Contains([]int{http.StatusCreated, http.StatusOK}, w.Code, w.Body.String())
	var res response.InitiatePaymentResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	return w.Code, res
}

func (s *BookingFlowSuite) notifyForm(checkout shared.CheckoutParams, statusCode string) url.Values {
	n := shared.GatewayNotification{
		MerchantID: checkout.MerchantID,
		OrderID:    checkout.OrderID,
		PaymentID:  "PH-" + checkout.OrderID,
		Amount:     checkout.Amount,
		Currency:   checkout.Currency,
		StatusCode: statusCode,
	}
	return url.Values{
		"merchant_id":      {n.MerchantID},
		"order_id":         {n.OrderID},
		"payment_id":       {n.PaymentID},
		"payhere_amount":   {n.Amount},
		"payhere_currency": {n.Currency},
		"status_code":      {n.StatusCode},
		"md5sig":           {s.gw.NotifySignature(n)},
		"method":           {"VISA"},
	}
}

type notifyResult struct {
	OrderID   string     `json:"orderId"`
	Status    string     `json:"status"`
	Conflict  bool       `json:"conflict"`
	SessionID *uuid.UUID `json:"sessionId"`
}

func (s *BookingFlowSuite) TestPaidBooking() {
	s.False(s.slotAt("10:00").IsBooked)

	key := uuid.NewString()
	code, intent := s.initiate(s.patientUser, s.patientID, key)
	s.Equal(http.StatusCreated, code)
	s.Equal("PENDING", intent.Payment.Status)
	s.Equal("5000.00", intent.Checkout.Amount)
	s.NotEmpty(intent.Checkout.Hash)

	code, replay := s.initiate(s.patientUser, s.patientID, key)
	s.Equal(http.StatusOK, code)
	s.True(replay.Replayed)
	s.Equal(intent.Payment.OrderID, replay.Payment.OrderID)

	w := httptest.PerformForm(s.T(), s.Router, "/api/payments/notify", s.notifyForm(intent.Checkout, "2"))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var notified notifyResult
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &notified))
	s.Equal("COMPLETED", notified.Status)
	s.False(notified.Conflict)
	s.Require().NotNil(notified.SessionID)

	// the gateway retries callbacks; a duplicate must not book twice
	w = httptest.PerformForm(s.T(), s.Router, "/api/payments/notify", s.notifyForm(intent.Checkout, "2"))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	patientToken := s.token(s.patientUser, user.RolePatient)
	w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
		"/api/payments/"+intent.Payment.OrderID+"/complete", nil, patientToken)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var booked response.BookingResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &booked))
	s.True(booked.Replayed)
	s.Equal(*notified.SessionID, booked.Session.ID)
	s.Equal("SCHEDULED", booked.Session.Status)
	s.Equal(int64(sessionRateCents), booked.Session.BookedRateCents)

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/sessions/"+notified.SessionID.String(), nil, patientToken)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	s.True(s.slotAt("10:00").IsBooked)
	s.Equal(1, dbtest.CountRows(s.T(), s.DB, "SELECT count(*) FROM therapy_sessions"))
	s.Positive(dbtest.CountRows(s.T(), s.DB,
		"SELECT count(*) FROM notifications WHERE receiver_id = $1 AND type = 'SESSION_BOOKED'", s.therapistUser))
	s.Positive(dbtest.CountRows(s.T(), s.DB, "SELECT count(*) FROM notification_jobs WHERE status = 'queued'"))
}

func (s *BookingFlowSuite) TestConcurrentCallbacksForOneSlot() {
	_, first := s.initiate(s.patientUser, s.patientID, uuid.NewString())
	_, second := s.initiate(s.rivalUser, s.rivalID, uuid.NewString())

	type result struct {
		code int
		body []byte
	}
	results := make([]result, 2)
	var wg sync.WaitGroup
	for i, checkout := range []shared.CheckoutParams{first.Checkout, second.Checkout} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.PerformForm(s.T(), s.Router, "/api/payments/notify", s.notifyForm(checkout, "2"))
			results[i] = result{code: w.Code, body: w.Body.Bytes()}
		}()
	}
	wg.Wait()

	var booked, conflicted []notifyResult
	for _, r := range results {
		s.Require().Equal(http.StatusOK, r.code, string(r.body))
		var res notifyResult
		s.Require().NoError(json.Unmarshal(r.body, &res))
		s.Equal("COMPLETED", res.Status)
		if res.Conflict {
			conflicted = append(conflicted, res)
		} else {
			booked = append(booked, res)
		}
	}
	s.Require().Len(booked, 1)
	s.Require().Len(conflicted, 1)
	s.NotNil(booked[0].SessionID)
	s.Nil(conflicted[0].SessionID)
	s.Equal(1, dbtest.CountRows(s.T(), s.DB, "SELECT count(*) FROM therapy_sessions"))
	s.Equal(1, dbtest.CountRows(s.T(), s.DB, "SELECT count(*) FROM notifications WHERE type = 'BOOKING_CONFLICT' AND is_urgent"))

	loser := s.patientUser
	if conflicted[0].OrderID == second.Payment.OrderID {
		loser = s.rivalUser
	}
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
		"/api/payments/"+conflicted[0].OrderID+"/complete", nil, s.token(loser, user.RolePatient))
	httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Slot already booked")
}

func (s *BookingFlowSuite) TestNotifyRejectsForgedSignature() {
	_, intent := s.initiate(s.patientUser, s.patientID, uuid.NewString())

	form := s.notifyForm(intent.Checkout, "2")
	form.Set("md5sig", "0123456789ABCDEF0123456789ABCDEF")
	w := httptest.PerformForm(s.T(), s.Router, "/api/payments/notify", form)
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid signature")

	s.Equal(0, dbtest.CountRows(s.T(), s.DB, "SELECT count(*) FROM payments WHERE status <> 'PENDING'"))
	s.False(s.slotAt("10:00").IsBooked)
}

func (s *BookingFlowSuite) TestTherapistBookingAndProviderCancel() {
	therapistToken := s.token(s.therapistUser, user.RoleTherapist)
	body := request.RequestSessionRequest{
		Channel:     "THERAPIST",
		PatientID:   s.patientID,
		TherapistID: s.therapistID,
		Date:        s.date,
		StartTime:   "11:00",
	}
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/sessions/request", body, therapistToken)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created response.SessionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	s.Equal("SCHEDULED", created.Status)
	s.Equal(fmt.Sprintf("/api/sessions/%s", created.ID), w.Header().Get("Location"))
	s.True(s.slotAt("11:00").IsBooked)

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/sessions/request", body, therapistToken)
	httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Slot unavailable")

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/sessions/"+created.ID.String()+"/cancel",
		request.CancelSessionRequest{Reason: "therapist unwell"}, therapistToken)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var cancelled response.CancelResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &cancelled))
	s.Equal("CANCELLED", cancelled.Session.Status)
	s.False(s.slotAt("11:00").IsBooked)

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/sessions/"+created.ID.String()+"/cancel",
		nil, therapistToken)
	httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Invalid state")
}

func (s *BookingFlowSuite) TestAuthentication() {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/sessions/"+uuid.NewString(), nil, "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/therapists/"+s.therapistID.String()+"/slots?date="+s.date, nil, "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")

	expired := s.jwt.CreateExpiredToken(s.T(), s.patientUser, user.RolePatient)
	w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/sessions/"+uuid.NewString(), nil, expired)
	httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodPut,
		"/api/therapists/"+s.therapistID.String()+"/availability",
		request.ReplaceAvailabilityRequest{}, s.token(s.patientUser, user.RolePatient))
	httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "")
}
