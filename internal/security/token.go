package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const sessionAudience = "club-console"

// OperatorClaims identifies the operator behind a console session
type OperatorClaims struct {
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateSessionToken(username, fullName string) (string, error)
	ValidateToken(tokenString string) (*OperatorClaims, error)
}

type tokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager signs HS256 session tokens valid for ttl
func NewTokenManager(secret, issuer string, ttl time.Duration) TokenManager {
	return newTokenManager(secret, issuer, ttl, time.Now)
}

func newTokenManager(secret, issuer string, ttl time.Duration, now func() time.Time) *tokenManager {
	return &tokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    now,
	}
}

func (m *tokenManager) GenerateSessionToken(username, fullName string) (string, error) {
	now := m.now()
	claims := OperatorClaims{
		Username: username,
		FullName: fullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{sessionAudience},
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	},
		jwt.WithAudience(sessionAudience),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*OperatorClaims); ok && token.Valid {
		if claims.Username == "" {
			claims.Username = claims.Subject
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}
