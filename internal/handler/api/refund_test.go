//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"therapy-booking/internal/domain/notification"
	"therapy-booking/internal/domain/policy"
	"therapy-booking/internal/domain/refund"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/handler/api"
	reqdto "therapy-booking/internal/handler/dto/request"
	resdto "therapy-booking/internal/handler/dto/response"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/tests/common/httptest"
	commandsmock "therapy-booking/tests/mock/commands"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRefundHandler_Complete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockRefundCommands(ctrl)
	h := api.NewRefundHandler(cmds)

	adminID := uuid.New()
	router := gin.New()
	router.POST("/refunds/:id/complete", fakeAuth(adminID, user.RoleAdmin), h.Complete)

	completedAt := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	payout := refund.Reconstruct(refund.ReconstructParams{
		ID:          uuid.New(),
		SessionID:   uuid.New(),
		PatientID:   uuid.New(),
		Computation: policy.RefundComputation{Tier: policy.TierGuardianFullNotice, AmountCents: 500000, RefundCents: 450000},
		Bank: refund.BankDetails{
			BankName:      "Sampath Bank",
			BranchName:    "Colombo 07",
			AccountHolder: "S. Jayasuriya",
			AccountNumber: "1002003004",
		},
		Status:          refund.StatusCompleted,
		PayoutReference: "TRX-1",
		CompletedAt:     &completedAt,
		CreatedAt:       completedAt.Add(-24 * time.Hour),
	})
	url := "/refunds/" + payout.ID().String() + "/complete"

	t.Run("success", func(t *testing.T) {
		cmds.EXPECT().CompleteRefund(gomock.Any(), user.NewPrincipal(adminID, user.RoleAdmin), payout.ID(), "TRX-1").
			Return(payout, nil).Times(1)

		rec := httptest.PerformRequest(t, router, http.MethodPost, url, reqdto.CompleteRefundRequest{PayoutReference: "TRX-1"}, "bearer-token")

		var res resdto.PayoutResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &res)
		assert.Equal(t, "COMPLETED", res.Status)
		assert.Equal(t, "TRX-1", res.PayoutReference)
		assert.Equal(t, int64(450000), res.RefundCents)
		require.NotNil(t, res.CompletedAt)
		assert.True(t, completedAt.Equal(*res.CompletedAt))
	})

	t.Run("missing payout reference", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodPost, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "Invalid request")
	})

	t.Run("already paid out", func(t *testing.T) {
		cmds.EXPECT().CompleteRefund(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("refund is COMPLETED"), errs.ErrInvalidState)).Times(1)
		rec := httptest.PerformRequest(t, router, http.MethodPost, url, reqdto.CompleteRefundRequest{PayoutReference: "TRX-2"}, "bearer-token")
		httptest.AssertErrorResponse(t, rec, http.StatusConflict, "Invalid state")
	})
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockNotificationCommands(ctrl)
	h := api.NewNotificationHandler(cmds)

	userID := uuid.New()
	router := gin.New()
	router.POST("/notifications/:id/read", fakeAuth(userID, user.RoleGuardian), h.MarkRead)

	readAt := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	n := notification.New(nil, userID, notification.TypeSessionBooked, "Session confirmed", "See you Wednesday.")
	n.ID = uuid.New()
	n.IsRead = true
	n.ReadAt = &readAt
	n.CreatedAt = readAt.Add(-time.Hour)

	t.Run("success", func(t *testing.T) {
		cmds.EXPECT().MarkRead(gomock.Any(), user.NewPrincipal(userID, user.RoleGuardian), n.ID).Return(&n, nil).Times(1)

		rec := httptest.PerformRequest(t, router, http.MethodPost, "/notifications/"+n.ID.String()+"/read", nil, "bearer-token")

		var res resdto.NotificationResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &res)
		assert.True(t, res.IsRead)
		assert.Equal(t, string(notification.TypeSessionBooked), res.Type)
	})

	t.Run("someone else's notification", func(t *testing.T) {
		cmds.EXPECT().MarkRead(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("not receiver"), errs.ErrForbidden)).Times(1)
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/notifications/"+uuid.NewString()+"/read", nil, "bearer-token")
		httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Access denied")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/notifications/"+n.ID.String()+"/read", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Unauthorized")
	})
}
