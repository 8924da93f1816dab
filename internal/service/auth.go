package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/repository"
	"memberclub-rental/internal/security"
)

const minPasswordLength = 4

type authService struct {
	operatorRepo repository.OperatorRepository
	tokens       security.TokenManager
	cost         int
}

func NewAuthService(operatorRepo repository.OperatorRepository, tokens security.TokenManager, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		operatorRepo: operatorRepo,
		tokens:       tokens,
		cost:         bcryptCost,
	}
}

func (s *authService) Register(ctx context.Context, username, fullName, password string) (*domain.Operator, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidCredentials)
	}
	if len(password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	op := &domain.Operator{
		Username:     username,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: string(hash),
	}
	if err := s.operatorRepo.Create(ctx, op); err != nil {
		return nil, err
	}
	logger.Info("Operator registered", "username", op.Username)
	return op, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.Operator, error) {
	op, err := s.operatorRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		logger.Warn("Login rejected", "username", username, "reason", "unknown operator")
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Login rejected", "username", username, "reason", "password mismatch")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateSessionToken(op.Username, op.FullName)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	logger.Info("Operator logged in", "username", op.Username)
	return token, op, nil
}

func (s *authService) ValidateSession(ctx context.Context, token string) (*security.OperatorClaims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if _, err := s.operatorRepo.GetByUsername(ctx, claims.Username); err != nil {
		return nil, errors.Join(security.ErrInvalidToken, err)
	}
	return claims, nil
}
