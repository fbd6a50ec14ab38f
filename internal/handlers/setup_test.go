package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Yash913212/Multi-tenant-saas/internal/auth"
	"github.com/Yash913212/Multi-tenant-saas/internal/models"
	"github.com/Yash913212/Multi-tenant-saas/internal/repository"
	"github.com/Yash913212/Multi-tenant-saas/internal/services"
	"github.com/Yash913212/Multi-tenant-saas/internal/utils"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	jwt    *auth.JWTService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	jwtService := auth.NewJWTService("test-secret", 1)
	logger := zap.NewNop()

	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	auditService := services.NewAuditService(auditRepo, logger)
	authService := services.NewAuthService(tenantRepo, userRepo, auditService, jwtService)
	tenantService := services.NewTenantService(tenantRepo, auditService)
	userService := services.NewUserService(userRepo, tenantRepo, auditService)
	projectService := services.NewProjectService(projectRepo, tenantRepo, auditService)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, auditService)
	dashboardService := services.NewDashboardService(dashboardRepo)

	router := SetupRouter(Handlers{
		Auth:      NewAuthHandler(authService),
		Tenant:    NewTenantHandler(tenantService),
		User:      NewUserHandler(userService),
		Project:   NewProjectHandler(projectService),
		Task:      NewTaskHandler(taskService),
		Dashboard: NewDashboardHandler(dashboardService),
		Health:    NewHealthHandler(db),
	}, jwtService, logger, "*")

	return testEnv{db: db, router: router, jwt: jwtService}
}

func (env testEnv) createTenant(t *testing.T, name, subdomain string, plan models.SubscriptionPlan) *models.Tenant {
	t.Helper()
	limits := models.PlanLimits[plan]
	tenant := &models.Tenant{
		Name:             name,
		Subdomain:        subdomain,
		Status:           models.TenantStatusActive,
		SubscriptionPlan: plan,
		MaxUsers:         limits.MaxUsers,
		MaxProjects:      limits.MaxProjects,
	}
	require.NoError(t, env.db.Create(tenant).Error)
	return tenant
}

func (env testEnv) createUser(t *testing.T, tenant *models.Tenant, email string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("Password1")
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Test User",
		Role:         role,
		IsActive:     true,
	}
	if tenant != nil {
		user.TenantID = &tenant.ID
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env testEnv) createProject(t *testing.T, tenant *models.Tenant, creator *models.User, name string) *models.Project {
	t.Helper()
	project := &models.Project{
		TenantID: tenant.ID,
		Name:     name,
		Status:   models.ProjectStatusActive,
	}
	if creator != nil {
		project.CreatedBy = &creator.ID
	}
	require.NoError(t, env.db.Create(project).Error)
	return project
}

func (env testEnv) createTask(t *testing.T, project *models.Project, title string) *models.Task {
	t.Helper()
	task := &models.Task{
		ProjectID: project.ID,
		TenantID:  project.TenantID,
		Title:     title,
		Status:    models.TaskStatusTodo,
		Priority:  models.TaskPriorityMedium,
	}
	require.NoError(t, env.db.Create(task).Error)
	return task
}

func (env testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := env.jwt.Generate(user)
	require.NoError(t, err)
	return token
}

func (env testEnv) request(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
