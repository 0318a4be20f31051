package api

import (
	"net/http"

	resdto "therapy-booking/internal/handler/dto/response"
	"therapy-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	cmds commands.NotificationCommands
}

func NewNotificationHandler(cmds commands.NotificationCommands) *NotificationHandler {
	return &NotificationHandler{cmds: cmds}
}

// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} resdto.NotificationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	n, err := h.cmds.MarkRead(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromNotification(n))
}
