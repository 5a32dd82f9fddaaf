package auth

import (
	"context"

	"github.com/jwalitptl/salon-api/pkg/auth"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
	"github.com/jwalitptl/salon-api/pkg/security"
)

// Service authenticates the single back-office admin account. The
// credential comes from configuration; there is no user table.
type Service struct {
	username     string
	passwordHash string
	hasher       security.PasswordHasher
	jwtSvc       auth.JWTService
}

func NewService(username, passwordHash string, jwtSvc auth.JWTService) *Service {
	return &Service{
		username:     username,
		passwordHash: passwordHash,
		hasher:       security.NewBcryptHasher(0),
		jwtSvc:       jwtSvc,
	}
}

func (s *Service) Login(_ context.Context, username, password string) (string, error) {
	if username != s.username {
		return "", apperrors.Unauthorized(nil)
	}
	if err := s.hasher.Compare(s.passwordHash, password); err != nil {
		return "", apperrors.Unauthorized(err)
	}

	token, err := s.jwtSvc.GenerateToken(username)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return token, nil
}

func (s *Service) ValidateToken(token string) (string, error) {
	subject, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return "", apperrors.Unauthorized(err)
	}
	return subject, nil
}
