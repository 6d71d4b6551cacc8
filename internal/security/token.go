package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const (
	TokenTypeAccess TokenType = "access"
)

const (
	issuer   = "rentacar-backend"
	audience = "fleet-operators"
)

// OperatorClaims identifies a back-office operator.
type OperatorClaims struct {
	Username string    `json:"username"`
	Type     TokenType `json:"type"`
	Roles    []string  `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateAccessToken(username string, roles []string) (string, time.Time, error)
	ValidateToken(tokenString string) (*OperatorClaims, error)
}

type tokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) TokenManager {
	return newTokenManager(secret, ttl, time.Now)
}

func newTokenManager(secret string, ttl time.Duration, now func() time.Time) *tokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &tokenManager{secret: []byte(secret), ttl: ttl, now: now}
}

// GenerateAccessToken returns the signed token and its expiry.
func (m *tokenManager) GenerateAccessToken(username string, roles []string) (string, time.Time, error) {
	issued := m.now()
	expires := issued.Add(m.ttl)
	claims := OperatorClaims{
		Username: username,
		Type:     TokenTypeAccess,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(issued),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func (m *tokenManager) ValidateToken(tokenString string) (*OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*OperatorClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != TokenTypeAccess {
		return nil, ErrWrongTokenType
	}
	if claims.Username == "" {
		claims.Username = claims.Subject
	}
	return claims, nil
}
