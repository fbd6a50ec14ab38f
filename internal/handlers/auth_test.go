package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Yash913212/Multi-tenant-saas/internal/dto"
	"github.com/Yash913212/Multi-tenant-saas/internal/models"
)

func TestRegisterTenant(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register-tenant", "", map[string]string{
		"tenant_name":     "Acme Corp",
		"subdomain":       "acme",
		"admin_email":     "admin@acme.test",
		"admin_password":  "Password1",
		"admin_full_name": "Ada Admin",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeEnvelope(t, w)
	require.True(t, body.Success)

	var result dto.RegisterResponseDTO
	require.NoError(t, json.Unmarshal(body.Data, &result))
	require.Equal(t, "acme", result.Subdomain)
	require.Equal(t, models.RoleTenantAdmin, result.AdminUser.Role)
	require.Equal(t, "admin@acme.test", result.AdminUser.Email)

	var tenant models.Tenant
	require.NoError(t, env.db.Where("subdomain = ?", "acme").First(&tenant).Error)
	require.Equal(t, models.PlanFree, tenant.SubscriptionPlan)
	require.Equal(t, 5, tenant.MaxUsers)
	require.Equal(t, 3, tenant.MaxProjects)

	var entry models.AuditLog
	require.NoError(t, env.db.Where("action = ?", models.ActionCreateTenant).First(&entry).Error)
	require.NotNil(t, entry.TenantID)
	require.Equal(t, tenant.ID, *entry.TenantID)
}

func TestRegisterTenant_DuplicateSubdomain(t *testing.T) {
	env := setupTestEnv(t)
	env.createTenant(t, "First", "taken", models.PlanFree)

	w := env.request(t, http.MethodPost, "/api/auth/register-tenant", "", map[string]string{
		"tenant_name":     "Second",
		"subdomain":       "taken",
		"admin_email":     "admin@second.test",
		"admin_password":  "Password1",
		"admin_full_name": "Bob",
	})

	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "Subdomain already exists", decodeEnvelope(t, w).Message)
}

func TestRegisterTenant_WeakPassword(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register-tenant", "", map[string]string{
		"tenant_name":     "Acme",
		"subdomain":       "acme",
		"admin_email":     "admin@acme.test",
		"admin_password":  "short",
		"admin_full_name": "Ada",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	env := setupTestEnv(t)
	tenant := env.createTenant(t, "Acme", "acme", models.PlanFree)
	env.createUser(t, tenant, "alice@acme.test", models.RoleTenantAdmin)

	w := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":            "alice@acme.test",
		"password":         "Password1",
		"tenant_subdomain": "acme",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	require.Equal(t, "Login successful", body.Message)

	var result dto.LoginResponseDTO
	require.NoError(t, json.Unmarshal(body.Data, &result))
	require.NotEmpty(t, result.Token)
	require.Equal(t, "alice@acme.test", result.User.Email)
	require.NotNil(t, result.Tenant)
	require.Equal(t, "acme", result.Tenant.Subdomain)

	claims, err := env.jwt.Validate(result.Token)
	require.NoError(t, err)
	require.NotNil(t, claims.TenantID)
	require.Equal(t, tenant.ID, *claims.TenantID)
}

func TestLogin_UniformFailures(t *testing.T) {
	env := setupTestEnv(t)
	tenant := env.createTenant(t, "Acme", "acme", models.PlanFree)
	env.createTenant(t, "Beta", "beta", models.PlanFree)
	env.createUser(t, tenant, "alice@acme.test", models.RoleUser)

	cases := []struct {
		name    string
		payload map[string]string
	}{
		{"wrong password", map[string]string{
			"email": "alice@acme.test", "password": "Wrong1234", "tenant_subdomain": "acme",
		}},
		{"unknown email", map[string]string{
			"email": "ghost@acme.test", "password": "Password1", "tenant_subdomain": "acme",
		}},
		{"wrong tenant", map[string]string{
			"email": "alice@acme.test", "password": "Password1", "tenant_subdomain": "beta",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.request(t, http.MethodPost, "/api/auth/login", "", tc.payload)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.Equal(t, "Invalid credentials", decodeEnvelope(t, w).Message)
		})
	}
}

func TestLogin_SuspendedTenant(t *testing.T) {
	env := setupTestEnv(t)
	tenant := env.createTenant(t, "Acme", "acme", models.PlanFree)
	env.createUser(t, tenant, "alice@acme.test", models.RoleUser)
	require.NoError(t, env.db.Model(tenant).Update("status", models.TenantStatusSuspended).Error)

	w := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":            "alice@acme.test",
		"password":         "Password1",
		"tenant_subdomain": "acme",
	})

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Account suspended", decodeEnvelope(t, w).Message)
}

func TestLogin_InactiveUser(t *testing.T) {
	env := setupTestEnv(t)
	tenant := env.createTenant(t, "Acme", "acme", models.PlanFree)
	user := env.createUser(t, tenant, "alice@acme.test", models.RoleUser)
	require.NoError(t, env.db.Model(user).Update("is_active", false).Error)

	w := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":            "alice@acme.test",
		"password":         "Password1",
		"tenant_subdomain": "acme",
	})

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Account inactive", decodeEnvelope(t, w).Message)
}

func TestLogin_TenantContextRequired(t *testing.T) {
	env := setupTestEnv(t)
	tenant := env.createTenant(t, "Acme", "acme", models.PlanFree)
	env.createUser(t, tenant, "alice@acme.test", models.RoleUser)

	w := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@acme.test",
		"password": "Password1",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Tenant context required", decodeEnvelope(t, w).Message)
}

func TestLogin_SuperAdminWithoutTenant(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, nil, "root@platform.test", models.RoleSuperAdmin)

	w := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "root@platform.test",
		"password": "Password1",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var result dto.LoginResponseDTO
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	require.Nil(t, result.Tenant)

	claims, err := env.jwt.Validate(result.Token)
	require.NoError(t, err)
	require.Nil(t, claims.TenantID)
}

func TestMe(t *testing.T) {
	env := setupTestEnv(t)
	tenant := env.createTenant(t, "Acme", "acme", models.PlanFree)
	user := env.createUser(t, tenant, "alice@acme.test", models.RoleUser)

	w := env.request(t, http.MethodGet, "/api/auth/me", env.tokenFor(t, user), nil)

	require.Equal(t, http.StatusOK, w.Code)

	var result dto.MeResponseDTO
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	require.Equal(t, user.ID, result.User.ID)
	require.NotNil(t, result.Tenant)
	require.Equal(t, tenant.ID, result.Tenant.ID)
}

func TestMe_RequiresToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodGet, "/api/auth/me", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_WritesAuditEntry(t *testing.T) {
	env := setupTestEnv(t)
	tenant := env.createTenant(t, "Acme", "acme", models.PlanFree)
	user := env.createUser(t, tenant, "alice@acme.test", models.RoleUser)

	w := env.request(t, http.MethodPost, "/api/auth/logout", env.tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entry models.AuditLog
	require.NoError(t, env.db.Where("action = ?", models.ActionLogout).First(&entry).Error)
	require.NotNil(t, entry.UserID)
	require.Equal(t, user.ID, *entry.UserID)
}
