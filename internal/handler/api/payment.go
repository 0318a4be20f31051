package api

import (
	"net/http"
	"strings"

	reqdto "therapy-booking/internal/handler/dto/request"
	resdto "therapy-booking/internal/handler/dto/response"
	"therapy-booking/internal/handler/httperr"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/commands"
	"therapy-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

type PaymentHandler struct {
	cmds    commands.PaymentCommands
	booking commands.BookingCommands
	q       queries.PaymentQueries
}

func NewPaymentHandler(cmds commands.PaymentCommands, booking commands.BookingCommands, q queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, booking: booking, q: q}
}

// @Summary Initiate booking payment
// @Description Create a pending payment intent for a slot and return hosted checkout parameters.
// @Description Repeating the request with the same Idempotency-Key returns the original intent.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Client generated UUID"
// @Param request body reqdto.InitiatePaymentRequest true "Booking details"
// @Success 201 {object} resdto.InitiatePaymentResponse
// @Success 200 {object} resdto.InitiatePaymentResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /payments/intents [post]
func (h *PaymentHandler) Initiate(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	key, err := uuid.Parse(strings.TrimSpace(c.GetHeader(idempotencyKeyHeader)))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrIdempotencyKeyRequired, "Idempotency-Key header must be a UUID", nil)
		return
	}
	var req reqdto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	res, err := h.cmds.InitiatePayment(c.Request.Context(), p, req.ToInput(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromInitiatePayment(res.Payment, res.Checkout, res.Replayed))
}

// @Summary Gateway payment notification
// @Description Server-to-server callback from the payment gateway (form encoded, signed).
// @Tags payments
// @Accept x-www-form-urlencoded
// @Produce json
// @Param merchant_id formData string true "Merchant ID"
// @Param order_id formData string true "Order ID"
// @Param payment_id formData string false "Gateway payment ID"
// @Param payhere_amount formData string true "Amount"
// @Param payhere_currency formData string true "Currency"
// @Param status_code formData string true "Status code"
// @Param md5sig formData string true "Signature"
// @Success 200 {object} map[string]any
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/notify [post]
func (h *PaymentHandler) Notify(c *gin.Context) {
	var form reqdto.NotifyForm
	if err := c.ShouldBind(&form); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid notification", nil)
		return
	}
	res, err := h.cmds.ConfirmPayment(c.Request.Context(), form.ToNotification())
	if err != nil {
		respondError(c, err)
		return
	}
	body := gin.H{
		"orderId":  res.Payment.OrderID(),
		"status":   res.Payment.Status().String(),
		"conflict": res.Conflict,
	}
	if res.Session != nil {
		body["sessionId"] = res.Session.ID()
	}
	c.JSON(http.StatusOK, body)
}

// @Summary Get payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /payments/{orderId} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	view, err := h.q.GetPayment(c.Request.Context(), p, c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}

// @Summary Complete booking
// @Description Turn a completed booking payment into a session. Safe to repeat.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Success 201 {object} resdto.BookingResponse
// @Success 200 {object} resdto.BookingResponse "Already booked"
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /payments/{orderId}/complete [post]
func (h *PaymentHandler) Complete(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	res, err := h.booking.CompleteBooking(c.Request.Context(), p, c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.BookingResponse{
		Payment:  resdto.FromIntent(res.Payment),
		Session:  resdto.FromSession(res.Session),
		Replayed: res.Replayed,
	})
}
