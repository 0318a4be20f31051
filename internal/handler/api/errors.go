package api

import (
	"errors"
	"net/http"

	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/handler/httperr"
	"therapy-booking/internal/handler/middleware"
	"therapy-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errUnauthenticated = errors.New("unauthenticated")
	errMissingDate     = errors.New("date query parameter missing")
)

type errorMapping struct {
	kind   error
	status int
	msg    string
}

// Order matters: the first matching kind wins.
var errorMappings = []errorMapping{
	{errs.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{errs.ErrForbidden, http.StatusForbidden, "Access denied"},
	{errs.ErrNotFound, http.StatusNotFound, "Not found"},
	{errs.ErrSlotAlreadyBooked, http.StatusConflict, "Slot already booked"},
	{errs.ErrSlotUnavailable, http.StatusConflict, "Slot unavailable"},
	{errs.ErrIdempotencyConflict, http.StatusConflict, "Idempotency key reused with a different request"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "Request with this idempotency key is in progress"},
	{errs.ErrInvalidState, http.StatusConflict, "Invalid state"},
	{errs.ErrPaymentRequired, http.StatusPaymentRequired, "Payment required"},
	{errs.ErrNotCompleted, http.StatusUnprocessableEntity, "Payment not completed"},
	{errs.ErrInvalidSignature, http.StatusBadRequest, "Invalid signature"},
	{errs.ErrIdempotencyKeyRequired, http.StatusBadRequest, "Idempotency-Key header required"},
	{errs.ErrValidation, http.StatusBadRequest, "Invalid request"},
}

// respondError maps a marked usecase error to its HTTP status. Anything
// unclassified is a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errs.Is(err, m.kind) {
			var detail any
			if m.status == http.StatusBadRequest || m.status == http.StatusConflict || m.status == http.StatusPaymentRequired {
				detail = err.Error()
			}
			httperr.AbortWithError(c, m.status, err, m.msg, detail)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
}

func principalOrAbort(c *gin.Context) (user.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return user.Principal{}, false
	}
	return p, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
