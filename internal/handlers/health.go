package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apierrors "github.com/Yash913212/Multi-tenant-saas/internal/errors"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check probes database connectivity.
func (h *HealthHandler) Check(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		apierrors.RespondStatus(c, http.StatusInternalServerError, "Database unavailable")
		return
	}
	apierrors.OK(c, "Service healthy", gin.H{"status": "ok"})
}
