package api

import (
	"net/http"

	reqdto "therapy-booking/internal/handler/dto/request"
	resdto "therapy-booking/internal/handler/dto/response"
	"therapy-booking/internal/handler/httperr"
	"therapy-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type RefundHandler struct {
	cmds commands.RefundCommands
}

func NewRefundHandler(cmds commands.RefundCommands) *RefundHandler {
	return &RefundHandler{cmds: cmds}
}

// @Summary Complete guardian refund payout
// @Tags refunds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Refund ID"
// @Param request body reqdto.CompleteRefundRequest true "Bank transfer reference"
// @Success 200 {object} resdto.PayoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /refunds/{id}/complete [post]
func (h *RefundHandler) Complete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.CompleteRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	r, err := h.cmds.CompleteRefund(c.Request.Context(), p, id, req.PayoutReference)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelRefund(r))
}
