package auth

import (
	"github.com/google/uuid"

	"github.com/Yash913212/Multi-tenant-saas/internal/models"
)

// Principal is the authenticated actor derived from a validated bearer token.
// It is threaded explicitly through every service call; services never reach
// into request state. TenantID is nil for tenant-less super admins.
type Principal struct {
	UserID   uuid.UUID
	Email    string
	Role     models.UserRole
	TenantID *uuid.UUID
}

// IsSuperAdmin reports whether the principal bypasses tenant scoping.
func (p Principal) IsSuperAdmin() bool {
	return p.Role == models.RoleSuperAdmin
}

// IsAdmin reports whether the principal holds an admin tier (tenant or global).
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleSuperAdmin || p.Role == models.RoleTenantAdmin
}

// CanAccessTenant reports whether the principal may touch resources owned
// by tenantID. Super admins cross tenant boundaries, everyone else is
// pinned to their own tenant.
func (p Principal) CanAccessTenant(tenantID uuid.UUID) bool {
	if p.IsSuperAdmin() {
		return true
	}
	return p.TenantID != nil && *p.TenantID == tenantID
}
