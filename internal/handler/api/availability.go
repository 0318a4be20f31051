package api

import (
	"net/http"

	reqdto "therapy-booking/internal/handler/dto/request"
	resdto "therapy-booking/internal/handler/dto/response"
	"therapy-booking/internal/handler/httperr"
	"therapy-booking/internal/usecase/commands"
	"therapy-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	cmds commands.AvailabilityCommands
	q    queries.SlotQueries
}

func NewAvailabilityHandler(cmds commands.AvailabilityCommands, q queries.SlotQueries) *AvailabilityHandler {
	return &AvailabilityHandler{cmds: cmds, q: q}
}

// @Summary Resolve slots
// @Description List every candidate start on a date with its booked and blocked flags
// @Tags availability
// @Produce json
// @Param id path string true "Therapist ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Security BearerAuth
// @Success 200 {object} resdto.DaySlotsResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /therapists/{id}/slots [get]
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	therapistID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingDate, "Query parameter date is required", nil)
		return
	}
	view, err := h.q.ResolveSlots(c.Request.Context(), therapistID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDaySlotsView(view))
}

// @Summary List availability rules
// @Tags availability
// @Produce json
// @Param id path string true "Therapist ID"
// @Security BearerAuth
// @Success 200 {array} resdto.RuleResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /therapists/{id}/availability [get]
func (h *AvailabilityHandler) ListRules(c *gin.Context) {
	therapistID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	views, err := h.q.ListRules(c.Request.Context(), therapistID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRuleViews(views))
}

// @Summary Replace availability rules
// @Description Swap the therapist's whole rule set. Dated one-off rules also get slot rows.
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Therapist ID"
// @Param request body reqdto.ReplaceAvailabilityRequest true "Rules"
// @Success 200 {array} resdto.RuleResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /therapists/{id}/availability [put]
func (h *AvailabilityHandler) Replace(c *gin.Context) {
	therapistID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.ReplaceAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	specs, err := req.ToSpecs()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}
	rules, err := h.cmds.ReplaceAvailability(c.Request.Context(), p, therapistID, specs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRules(rules))
}
