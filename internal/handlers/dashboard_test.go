package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Yash913212/Multi-tenant-saas/internal/models"
	"github.com/Yash913212/Multi-tenant-saas/internal/repository"
)

func TestDashboardStats(t *testing.T) {
	env := setupTestEnv(t)
	acme := env.createTenant(t, "Acme", "acme", models.PlanFree)
	beta := env.createTenant(t, "Beta", "beta", models.PlanFree)
	alice := env.createUser(t, acme, "alice@acme.test", models.RoleUser)
	env.createUser(t, beta, "carol@beta.test", models.RoleUser)
	root := env.createUser(t, nil, "root@platform.test", models.RoleSuperAdmin)

	acmeProject := env.createProject(t, acme, nil, "Acme Project")
	env.createProject(t, beta, nil, "Beta Project")
	env.createTask(t, acmeProject, "Open")
	done := env.createTask(t, acmeProject, "Done")
	require.NoError(t, env.db.Model(done).Update("status", models.TaskStatusCompleted).Error)

	// Tenant member sees their tenant only.
	w := env.request(t, http.MethodGet, "/api/dashboard/stats", env.tokenFor(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats repository.DashboardStats
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &stats))
	require.Equal(t, "tenant", stats.Scope)
	require.Equal(t, int64(1), stats.TotalProjects)
	require.Equal(t, int64(1), stats.ActiveTasks)
	require.Equal(t, int64(1), stats.CompletedTasks)
	require.Equal(t, int64(1), stats.TotalUsers)

	// Super admin sees everything.
	w = env.request(t, http.MethodGet, "/api/dashboard/stats", env.tokenFor(t, root), nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &stats))
	require.Equal(t, "global", stats.Scope)
	require.Equal(t, int64(2), stats.TotalProjects)
	require.Equal(t, int64(3), stats.TotalUsers)
}

func TestHealth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decodeEnvelope(t, w).Success)
}
