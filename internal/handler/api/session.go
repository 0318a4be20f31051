package api

import (
	"context"
	"net/http"

	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/domain/user"
	reqdto "therapy-booking/internal/handler/dto/request"
	resdto "therapy-booking/internal/handler/dto/response"
	"therapy-booking/internal/handler/httperr"
	"therapy-booking/internal/usecase/commands"
	"therapy-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionHandler struct {
	booking  commands.BookingCommands
	sessions commands.SessionCommands
	payments commands.PaymentCommands
	q        queries.SessionQueries
}

func NewSessionHandler(booking commands.BookingCommands, sessions commands.SessionCommands, payments commands.PaymentCommands, q queries.SessionQueries) *SessionHandler {
	return &SessionHandler{booking: booking, sessions: sessions, payments: payments, q: q}
}

// @Summary Request a session without the gateway
// @Description Therapists book for their patients; patients and guardians may take zero-rate slots.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RequestSessionRequest true "Session request"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /sessions/request [post]
func (h *SessionHandler) Request(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.RequestSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	s, err := h.booking.RequestSession(c.Request.Context(), p, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", "/api/sessions/"+s.ID().String())
	c.JSON(http.StatusCreated, resdto.FromSession(s))
}

// @Summary Get session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, p, ok := h.target(c)
	if !ok {
		return
	}
	view, err := h.q.GetSession(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSessionView(view))
}

// @Summary Cancellation quote
// @Description Preview the refund tier and reschedule fee for the caller right now
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.CancellationQuoteResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /sessions/{id}/cancellation-quote [get]
func (h *SessionHandler) Quote(c *gin.Context) {
	id, p, ok := h.target(c)
	if !ok {
		return
	}
	view, err := h.q.QuoteCancellation(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancellationQuote(view))
}

// @Summary Cancel session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.CancelSessionRequest false "Reason"
// @Success 200 {object} resdto.CancelResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /sessions/{id}/cancel [post]
func (h *SessionHandler) Cancel(c *gin.Context) {
	id, p, ok := h.target(c)
	if !ok {
		return
	}
	var req reqdto.CancelSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	res, err := h.sessions.CancelSession(c.Request.Context(), p, id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelResponse(res))
}

// @Summary Cancel session as guardian
// @Description Cancel and request a bank payout of the refund to the guardian's account
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.GuardianCancelRequest true "Reason and bank details"
// @Success 200 {object} resdto.CancelResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /sessions/{id}/guardian-cancel [post]
func (h *SessionHandler) GuardianCancel(c *gin.Context) {
	id, p, ok := h.target(c)
	if !ok {
		return
	}
	var req reqdto.GuardianCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	res, err := h.sessions.CancelSessionAsGuardian(c.Request.Context(), p, id, req.Reason, req.BankDetails())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelResponse(res))
}

// @Summary Start reschedule fee payment
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.RescheduleFeeRequest false "Payer details"
// @Success 201 {object} resdto.InitiatePaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /sessions/{id}/reschedule-fee [post]
func (h *SessionHandler) RescheduleFee(c *gin.Context) {
	id, p, ok := h.target(c)
	if !ok {
		return
	}
	var req reqdto.RescheduleFeeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	res, err := h.payments.InitiateRescheduleFee(c.Request.Context(), p, id, req.Customer.ToShared())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromInitiatePayment(res.Payment, res.Checkout, false))
}

// @Summary Reschedule session
// @Description Move a session to another free slot. Inside the fee window the patient side must pass a paid fee order.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.RescheduleRequest true "New slot"
// @Success 200 {object} resdto.RescheduleResponse
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /sessions/{id}/reschedule [post]
func (h *SessionHandler) Reschedule(c *gin.Context) {
	id, p, ok := h.target(c)
	if !ok {
		return
	}
	var req reqdto.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	res, err := h.sessions.RescheduleSession(c.Request.Context(), p, id, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.RescheduleResponse{
		Session:    resdto.FromSession(res.Session),
		FeeCharged: res.Fee.Required,
		FeeCents:   res.Fee.AmountCents,
	})
}

// @Summary Approve session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /sessions/{id}/approve [post]
func (h *SessionHandler) Approve(c *gin.Context) {
	h.transition(c, h.sessions.ApproveSession)
}

// @Summary Mark session completed
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /sessions/{id}/complete [post]
func (h *SessionHandler) Complete(c *gin.Context) {
	h.transition(c, h.sessions.CompleteSession)
}

// @Summary Mark session no-show
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /sessions/{id}/no-show [post]
func (h *SessionHandler) NoShow(c *gin.Context) {
	h.transition(c, h.sessions.MarkNoShow)
}

type transitionFunc func(ctx context.Context, p user.Principal, id uuid.UUID) (*session.Session, error)

func (h *SessionHandler) transition(c *gin.Context, apply transitionFunc) {
	id, p, ok := h.target(c)
	if !ok {
		return
	}
	s, err := apply(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSession(s))
}

func (h *SessionHandler) target(c *gin.Context) (uuid.UUID, user.Principal, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return uuid.Nil, user.Principal{}, false
	}
	p, ok := principalOrAbort(c)
	if !ok {
		return uuid.Nil, user.Principal{}, false
	}
	return id, p, true
}

func cancelResponse(res *commands.CancelResult) resdto.CancelResponse {
	return resdto.CancelResponse{
		Session: resdto.FromSession(res.Session),
		Refund:  resdto.FromRefundComputation(res.Refund),
		Payout:  resdto.FromCancelRefund(res.CancelRefund),
	}
}
