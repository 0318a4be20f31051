//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/handler/api"
	reqdto "therapy-booking/internal/handler/dto/request"
	resdto "therapy-booking/internal/handler/dto/response"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/queries"
	"therapy-booking/tests/common/builder"
	"therapy-booking/tests/common/httptest"
	commandsmock "therapy-booking/tests/mock/commands"
	queriesmock "therapy-booking/tests/mock/queries"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAvailabilityCommands
	mockQueries  *queriesmock.MockSlotQueries
	handler      *api.AvailabilityHandler

	userID      uuid.UUID
	therapistID uuid.UUID
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAvailabilityCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSlotQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockCommands, s.mockQueries)

	s.userID = uuid.New()
	s.therapistID = uuid.New()

	s.router.GET("/therapists/:id/slots", s.handler.GetSlots)
	s.router.GET("/therapists/:id/availability", s.handler.ListRules)
	s.router.PUT("/therapists/:id/availability", fakeAuth(s.userID, user.RoleTherapist), s.handler.Replace)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestGetSlots() {
	url := "/therapists/" + s.therapistID.String() + "/slots"

	s.Run("success", func() {
		view := &queries.DaySlotsView{
			TherapistID: s.therapistID,
			Date:        "2026-03-04",
			Slots: []queries.SlotView{
				{StartTime: "09:00", EndTime: "10:00", SessionMinutes: 60, IsBooked: true},
				{StartTime: "10:00", EndTime: "11:00", SessionMinutes: 60, IsAvailable: true},
			},
		}
		s.mockQueries.EXPECT().ResolveSlots(gomock.Any(), s.therapistID, "2026-03-04").Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?date=2026-03-04", nil, "")

		var res resdto.DaySlotsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().Len(res.Slots, 2)
		s.True(res.Slots[0].IsBooked)
		s.False(res.Slots[0].IsAvailable)
		s.True(res.Slots[1].IsAvailable)
	})

	s.Run("error: date is required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "date is required")
	})

	s.Run("error: malformed date", func() {
		s.mockQueries.EXPECT().ResolveSlots(gomock.Any(), gomock.Any(), "04/03/2026").
			Return(nil, errs.Mark(errors.New("bad date"), errs.ErrValidation)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?date=04/03/2026", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: unknown therapist", func() {
		s.mockQueries.EXPECT().ResolveSlots(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("therapist not found"), errs.ErrNotFound)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?date=2026-03-04", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

func (s *AvailabilityHandlerTestSuite) TestReplace() {
	url := "/therapists/" + s.therapistID.String() + "/availability"
	wednesday := 3
	reqBody := reqdto.ReplaceAvailabilityRequest{Rules: []reqdto.RuleRequest{{
		DayOfWeek:      &wednesday,
		StartTime:      "09:00",
		EndTime:        "12:00",
		SessionMinutes: 60,
		BreakMinutes:   15,
	}}}

	s.Run("success", func() {
		rule, err := builder.NewRuleBuilder(s.therapistID).
			With(func(b *builder.RuleBuilder) { b.BreakMinutes = 15 }).
			BuildDomain()
		s.Require().NoError(err)

		s.mockCommands.EXPECT().
			ReplaceAvailability(gomock.Any(), user.NewPrincipal(s.userID, user.RoleTherapist), s.therapistID, gomock.Len(1)).
			DoAndReturn(func(_ context.Context, _ user.Principal, _ uuid.UUID, specs []availability.RuleSpec) ([]*availability.Rule, error) {
				s.True(specs[0].Active, "isActive defaults to true")
				s.Equal(15, specs[0].BreakMinutes)
				return []*availability.Rule{rule}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var res []resdto.RuleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().Len(res, 1)
		s.Equal("09:00", res[0].StartTime)
		s.Equal(15, res[0].BreakMinutes)
	})

	s.Run("validation: unparsable start time", func() {
		bad := reqBody
		bad.Rules = []reqdto.RuleRequest{reqBody.Rules[0]}
		bad.Rules[0].StartTime = "9am"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, bad, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("validation: weekday out of range", func() {
		bad := reqBody
		day := 7
		bad.Rules = []reqdto.RuleRequest{reqBody.Rules[0]}
		bad.Rules[0].DayOfWeek = &day
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, bad, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: not this therapist's calendar", func() {
		s.mockCommands.EXPECT().ReplaceAvailability(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("forbidden"), errs.ErrForbidden)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})
}
