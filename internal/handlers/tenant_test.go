package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Yash913212/Multi-tenant-saas/internal/dto"
	"github.com/Yash913212/Multi-tenant-saas/internal/models"
)

func TestListTenants_SuperAdminOnly(t *testing.T) {
	env := setupTestEnv(t)
	tenant := env.createTenant(t, "Acme", "acme", models.PlanFree)
	env.createTenant(t, "Beta", "beta", models.PlanPro)
	admin := env.createUser(t, tenant, "admin@acme.test", models.RoleTenantAdmin)
	root := env.createUser(t, nil, "root@platform.test", models.RoleSuperAdmin)

	w := env.request(t, http.MethodGet, "/api/tenants", env.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodGet, "/api/tenants", env.tokenFor(t, root), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result dto.TenantListResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	require.Len(t, result.Tenants, 2)
	require.Equal(t, int64(2), result.Pagination.Total)
}

func TestCreateTenant_SuperAdminOnly(t *testing.T) {
	env := setupTestEnv(t)
	tenant := env.createTenant(t, "Acme", "acme", models.PlanFree)
	admin := env.createUser(t, tenant, "admin@acme.test", models.RoleTenantAdmin)
	root := env.createUser(t, nil, "root@platform.test", models.RoleSuperAdmin)

	payload := map[string]string{
		"name": "Gamma", "subdomain": "gamma", "subscription_plan": "pro",
	}

	w := env.request(t, http.MethodPost, "/api/tenants", env.tokenFor(t, admin), payload)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodPost, "/api/tenants", env.tokenFor(t, root), payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var result dto.TenantDTO
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	require.Equal(t, models.PlanPro, result.SubscriptionPlan)
	require.Equal(t, 25, result.MaxUsers)
	require.Equal(t, 15, result.MaxProjects)
}

func TestGetTenant_Scoping(t *testing.T) {
	env := setupTestEnv(t)
	acme := env.createTenant(t, "Acme", "acme", models.PlanFree)
	beta := env.createTenant(t, "Beta", "beta", models.PlanFree)
	admin := env.createUser(t, acme, "admin@acme.test", models.RoleTenantAdmin)
	token := env.tokenFor(t, admin)

	w := env.request(t, http.MethodGet, "/api/tenants/"+acme.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result dto.TenantDetailDTO
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	require.Equal(t, acme.ID, result.ID)
	require.NotNil(t, result.Stats)

	// Existing foreign tenant is a cross-tenant violation, not a 404.
	w = env.request(t, http.MethodGet, "/api/tenants/"+beta.ID.String(), token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Cross-tenant access not allowed", decodeEnvelope(t, w).Message)

	// Unknown tenant is a 404 even though it would also be out of scope.
	w = env.request(t, http.MethodGet, "/api/tenants/"+uuid.NewString(), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Tenant not found", decodeEnvelope(t, w).Message)
}

func TestUpdateTenant_TenantAdminRename(t *testing.T) {
	env := setupTestEnv(t)
	acme := env.createTenant(t, "Acme", "acme", models.PlanFree)
	admin := env.createUser(t, acme, "admin@acme.test", models.RoleTenantAdmin)

	w := env.request(t, http.MethodPut, "/api/tenants/"+acme.ID.String(), env.tokenFor(t, admin), map[string]any{
		"name": "Acme Renamed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result dto.TenantDTO
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	require.Equal(t, "Acme Renamed", result.Name)
}

func TestUpdateTenant_PrivilegedFieldsSuperAdminOnly(t *testing.T) {
	env := setupTestEnv(t)
	acme := env.createTenant(t, "Acme", "acme", models.PlanFree)
	admin := env.createUser(t, acme, "admin@acme.test", models.RoleTenantAdmin)

	w := env.request(t, http.MethodPut, "/api/tenants/"+acme.ID.String(), env.tokenFor(t, admin), map[string]any{
		"subscription_plan": "enterprise",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateTenant_PlanChangeResetsLimits(t *testing.T) {
	env := setupTestEnv(t)
	acme := env.createTenant(t, "Acme", "acme", models.PlanFree)
	root := env.createUser(t, nil, "root@platform.test", models.RoleSuperAdmin)

	w := env.request(t, http.MethodPut, "/api/tenants/"+acme.ID.String(), env.tokenFor(t, root), map[string]any{
		"subscription_plan": "pro",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result dto.TenantDTO
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	require.Equal(t, models.PlanPro, result.SubscriptionPlan)
	require.Equal(t, 25, result.MaxUsers)
	require.Equal(t, 15, result.MaxProjects)
}

func TestUpdateTenant_ExplicitLimitsWinOverPlanReset(t *testing.T) {
	env := setupTestEnv(t)
	acme := env.createTenant(t, "Acme", "acme", models.PlanFree)
	root := env.createUser(t, nil, "root@platform.test", models.RoleSuperAdmin)

	w := env.request(t, http.MethodPut, "/api/tenants/"+acme.ID.String(), env.tokenFor(t, root), map[string]any{
		"subscription_plan": "pro",
		"max_users":         100,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result dto.TenantDTO
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	require.Equal(t, 100, result.MaxUsers)
	require.Equal(t, 15, result.MaxProjects)
}
