package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Yash913212/Multi-tenant-saas/internal/models"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 24)
	tenantID := uuid.New()
	user := &models.User{
		ID:       uuid.New(),
		Email:    "alice@acme.test",
		Role:     models.RoleTenantAdmin,
		TenantID: &tenantID,
	}

	token, expiresIn, err := svc.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, 24*3600, expiresIn)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, models.RoleTenantAdmin, claims.Role)
	require.NotNil(t, claims.TenantID)
	require.Equal(t, tenantID, *claims.TenantID)

	principal := claims.Principal()
	require.Equal(t, user.ID, principal.UserID)
	require.True(t, principal.CanAccessTenant(tenantID))
	require.False(t, principal.CanAccessTenant(uuid.New()))
}

func TestJWTService_SuperAdminHasNoTenant(t *testing.T) {
	svc := NewJWTService("test-secret", 1)
	user := &models.User{
		ID:    uuid.New(),
		Email: "root@platform.test",
		Role:  models.RoleSuperAdmin,
	}

	token, _, err := svc.Generate(user)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.Nil(t, claims.TenantID)
	require.True(t, claims.Principal().IsSuperAdmin())
	require.True(t, claims.Principal().CanAccessTenant(uuid.New()))
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 1)
	verifier := NewJWTService("secret-b", 1)

	token, _, err := issuer.Generate(&models.User{ID: uuid.New(), Role: models.RoleUser})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", 1)

	claims := Claims{
		UserID: uuid.New(),
		Role:   models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", 1)

	_, err := svc.Validate("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
