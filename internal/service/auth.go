package service

import (
	"context"
	"errors"
	"time"

	"rentacar-backend/internal/config"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

const operatorRole = "operator"

type authService struct {
	operators map[string]string // username -> bcrypt hash
	tokens    security.TokenManager
}

func NewAuthService(operators []config.OperatorConfig, tokens security.TokenManager) AuthService {
	byName := make(map[string]string, len(operators))
	for _, op := range operators {
		byName[op.Username] = op.PasswordHash
	}
	return &authService{operators: byName, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	logger.EnterMethod("AuthService.Login", "username", username)

	hash, ok := s.operators[username]
	if !ok {
		logger.ExitMethodWithError("AuthService.Login", ErrInvalidCredentials, "reason", "unknown operator")
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := security.CheckPassword(hash, password); err != nil {
		logger.ExitMethodWithError("AuthService.Login", ErrInvalidCredentials, "reason", "password mismatch")
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(username, []string{operatorRole})
	if err != nil {
		logger.ExitMethodWithError("AuthService.Login", err)
		return "", time.Time{}, err
	}

	logger.Info("Operator logged in", "username", username)
	logger.ExitMethod("AuthService.Login")
	return token, expiresAt, nil
}
