//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/pkg/config"
	"therapy-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := h.service(duration).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.service(-(h.cfg.Leeway + time.Minute)).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) service(ttl time.Duration) *jwt.Service {
	return jwt.NewService(h.cfg.Secret, ttl, jwt.WithIssuer(h.cfg.Issuer), jwt.WithLeeway(h.cfg.Leeway))
}
