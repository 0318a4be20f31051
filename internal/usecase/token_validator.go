package usecase

import (
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator resolves a bearer token into the caller's identity.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type tokenValidatorImpl struct {
	tokens *jwt.Service
}

func NewTokenValidator(tokens *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{tokens: tokens}
}

// ValidateToken accepts only the roles a person can hold. Tokens carrying an
// unknown role are treated like forged ones.
func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := t.tokens.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, errs.ErrUnauthorized)
	}
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Mark(errs.Wrap(err, "token role"), errs.ErrUnauthorized)
	}
	return claims.UserID, role, nil
}
