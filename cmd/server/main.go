package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yash913212/Multi-tenant-saas/internal/auth"
	"github.com/Yash913212/Multi-tenant-saas/internal/config"
	"github.com/Yash913212/Multi-tenant-saas/internal/database"
	"github.com/Yash913212/Multi-tenant-saas/internal/handlers"
	"github.com/Yash913212/Multi-tenant-saas/internal/logger"
	"github.com/Yash913212/Multi-tenant-saas/internal/repository"
	"github.com/Yash913212/Multi-tenant-saas/internal/services"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	zapLogger, err := logger.New(cfg.GinMode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		zapLogger.Fatal("database connection failed", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("migration failed", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpireHours)

	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	auditService := services.NewAuditService(auditRepo, zapLogger)
	authService := services.NewAuthService(tenantRepo, userRepo, auditService, jwtService)
	tenantService := services.NewTenantService(tenantRepo, auditService)
	userService := services.NewUserService(userRepo, tenantRepo, auditService)
	projectService := services.NewProjectService(projectRepo, tenantRepo, auditService)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, auditService)
	dashboardService := services.NewDashboardService(dashboardRepo)

	router := handlers.SetupRouter(handlers.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Tenant:    handlers.NewTenantHandler(tenantService),
		User:      handlers.NewUserHandler(userService),
		Project:   handlers.NewProjectHandler(projectService),
		Task:      handlers.NewTaskHandler(taskService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		Health:    handlers.NewHealthHandler(db),
	}, jwtService, zapLogger, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		zapLogger.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server shutdown", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
