package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Yash913212/Multi-tenant-saas/internal/models"
)

// ErrInvalidToken covers every validation failure uniformly; callers must not
// learn whether a token was malformed, forged, or merely expired.
var ErrInvalidToken = errors.New("invalid token")

// Claims holds the JWT payload embedded in every bearer token.
type Claims struct {
	UserID   uuid.UUID       `json:"user_id"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	TenantID *uuid.UUID      `json:"tenant_id,omitempty"`
	jwt.RegisteredClaims
}

// Principal converts the claims into the actor value passed to services.
func (c *Claims) Principal() Principal {
	return Principal{
		UserID:   c.UserID,
		Email:    c.Email,
		Role:     c.Role,
		TenantID: c.TenantID,
	}
}

// JWTService issues and validates signed, time-limited bearer tokens.
type JWTService struct {
	secret   []byte
	lifetime time.Duration
}

// NewJWTService creates a JWT service. expireHours is the token lifetime.
func NewJWTService(secret string, expireHours int) *JWTService {
	return &JWTService{
		secret:   []byte(secret),
		lifetime: time.Duration(expireHours) * time.Hour,
	}
}

// Generate creates a token for the user and returns it together with its
// lifetime in seconds.
func (s *JWTService) Generate(user *models.User) (string, int, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		TenantID: user.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, int(s.lifetime.Seconds()), nil
}

// Validate parses and verifies a token, returning its claims.
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
