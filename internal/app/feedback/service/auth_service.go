package service

import (
	"context"
	"errors"

	"feedbackhub/internal/app/feedback/util"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService verifies the single configured admin identity and issues
// session tokens. There is no user table: one username, one bcrypt hash.
type AuthService struct {
	adminUsername     string
	adminPasswordHash string
	jwtManager        *util.JWTManager
}

func NewAuthService(adminUsername, adminPasswordHash string, jwtManager *util.JWTManager) *AuthService {
	return &AuthService{
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
		jwtManager:        jwtManager,
	}
}

// Login returns a signed token when the credentials match the admin identity.
func (s *AuthService) Login(_ context.Context, username, password string) (string, error) {
	if username != s.adminUsername || !util.CheckPassword(password, s.adminPasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(username)
	if err != nil {
		return "", err
	}

	return token, nil
}
