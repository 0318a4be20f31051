//go:build unit

package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/handler"
	"therapy-booking/internal/handler/api"
	"therapy-booking/internal/handler/middleware"
	"therapy-booking/internal/pkg/config"
	"therapy-booking/internal/pkg/jwt"
	"therapy-booking/internal/usecase"
	"therapy-booking/internal/usecase/queries"
	"therapy-booking/tests/common/httptest"
	commandsmock "therapy-booking/tests/mock/commands"
	queriesmock "therapy-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RouterTestSuite struct {
	suite.Suite
	router      *gin.Engine
	slots       *queriesmock.MockSlotQueries
	tokens      *jwt.Service
	therapistID uuid.UUID
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(s.T())
	cfg := config.NewTestConfig()

	s.slots = queriesmock.NewMockSlotQueries(ctrl)
	s.tokens = jwt.NewService(cfg.JWT.Secret, time.Hour)
	s.therapistID = uuid.New()

	booking := commandsmock.NewMockBookingCommands(ctrl)
	payments := commandsmock.NewMockPaymentCommands(ctrl)
	h := handler.Handlers{
		Availability: api.NewAvailabilityHandler(commandsmock.NewMockAvailabilityCommands(ctrl), s.slots),
		Payment:      api.NewPaymentHandler(payments, booking, queriesmock.NewMockPaymentQueries(ctrl)),
		Session:      api.NewSessionHandler(booking, commandsmock.NewMockSessionCommands(ctrl), payments, queriesmock.NewMockSessionQueries(ctrl)),
		Refund:       api.NewRefundHandler(commandsmock.NewMockRefundCommands(ctrl)),
		Notification: api.NewNotificationHandler(commandsmock.NewMockNotificationCommands(ctrl)),
	}

	s.router = gin.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(s.tokens))
	handler.NewRouter(s.router, cfg, logger, h, auth, nil, nil)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) TestCalendarReadsRequireToken() {
	paths := []string{
		"/api/therapists/" + s.therapistID.String() + "/slots?date=2026-03-04",
		"/api/therapists/" + s.therapistID.String() + "/availability",
	}
	for _, path := range paths {
		s.Run(path, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")

			rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "not-a-jwt")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
		})
	}
}

func (s *RouterTestSuite) TestCalendarReadsWithToken() {
	token, err := s.tokens.GenerateToken(uuid.New(), user.RolePatient)
	require.NoError(s.T(), err)

	s.slots.EXPECT().ResolveSlots(gomock.Any(), s.therapistID, "2026-03-04").
		Return(&queries.DaySlotsView{TherapistID: s.therapistID, Date: "2026-03-04"}, nil).Times(1)
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
		"/api/therapists/"+s.therapistID.String()+"/slots?date=2026-03-04", nil, token)
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())

	s.slots.EXPECT().ListRules(gomock.Any(), s.therapistID).Return([]queries.RuleView{}, nil).Times(1)
	rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet,
		"/api/therapists/"+s.therapistID.String()+"/availability", nil, token)
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *RouterTestSuite) TestGatewayCallbackStaysPublic() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/payments/notify", nil, "")
	s.NotEqual(http.StatusUnauthorized, rec.Code)
}
