package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Yash913212/Multi-tenant-saas/internal/auth"
	"github.com/Yash913212/Multi-tenant-saas/internal/middleware"
	"github.com/Yash913212/Multi-tenant-saas/internal/models"
)

// Handlers bundles all HTTP handlers for route registration.
type Handlers struct {
	Auth      *AuthHandler
	Tenant    *TenantHandler
	User      *UserHandler
	Project   *ProjectHandler
	Task      *TaskHandler
	Dashboard *DashboardHandler
	Health    *HealthHandler
}

// SetupRouter builds the gin engine with all middleware and routes.
func SetupRouter(h Handlers, jwtService *auth.JWTService, logger *zap.Logger, corsOrigins string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(corsOrigins))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health.Check)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register-tenant", h.Auth.RegisterTenant)
			authRoutes.POST("/login", h.Auth.Login)
			authRoutes.GET("/me", middleware.RequireAuth(jwtService), h.Auth.Me)
			authRoutes.POST("/logout", middleware.RequireAuth(jwtService), h.Auth.Logout)
		}

		tenants := api.Group("/tenants")
		tenants.Use(middleware.RequireAuth(jwtService))
		{
			tenants.GET("", middleware.RequireRole(models.RoleSuperAdmin), h.Tenant.ListTenants)
			tenants.POST("", middleware.RequireRole(models.RoleSuperAdmin), h.Tenant.CreateTenant)
			tenants.GET("/:id", h.Tenant.GetTenant)
			tenants.PUT("/:id", h.Tenant.UpdateTenant)
			tenants.GET("/:id/users", h.User.ListTenantUsers)
			tenants.POST("/:id/users", middleware.RequireRole(models.RoleSuperAdmin, models.RoleTenantAdmin), h.User.CreateUser)
		}

		users := api.Group("/users")
		users.Use(middleware.RequireAuth(jwtService))
		{
			users.GET("", h.User.ListUsers)
			users.GET("/:id", h.User.GetUser)
			users.PUT("/:id", h.User.UpdateUser)
			users.DELETE("/:id", middleware.RequireRole(models.RoleSuperAdmin, models.RoleTenantAdmin), h.User.DeleteUser)
		}

		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(jwtService))
		{
			projects.GET("", h.Project.ListProjects)
			projects.POST("", middleware.RequireRole(models.RoleSuperAdmin, models.RoleTenantAdmin), h.Project.CreateProject)
			projects.GET("/:id", h.Project.GetProject)
			projects.PATCH("/:id", h.Project.UpdateProject)
			projects.PUT("/:id", h.Project.UpdateProject)
			projects.DELETE("/:id", h.Project.DeleteProject)
			projects.GET("/:id/tasks", h.Task.ListTasks)
			projects.POST("/:id/tasks", h.Task.CreateTask)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(jwtService))
		{
			tasks.GET("/:id", h.Task.GetTask)
			tasks.PUT("/:id", h.Task.UpdateTask)
			tasks.PATCH("/:id", h.Task.UpdateTask)
			tasks.PATCH("/:id/status", h.Task.UpdateTaskStatus)
			tasks.DELETE("/:id", h.Task.DeleteTask)
		}

		api.GET("/dashboard/stats", middleware.RequireAuth(jwtService), h.Dashboard.Stats)
	}

	return r
}
