package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yash913212/Multi-tenant-saas/internal/auth"
	apierrors "github.com/Yash913212/Multi-tenant-saas/internal/errors"
	"github.com/Yash913212/Multi-tenant-saas/internal/models"
	"github.com/Yash913212/Multi-tenant-saas/internal/repository"
	"github.com/Yash913212/Multi-tenant-saas/internal/utils"
)

// AuthService handles tenant registration, login, and session-flavored
// operations over stateless tokens.
type AuthService struct {
	tenantRepo repository.TenantRepository
	userRepo   repository.UserRepository
	auditSvc   *AuditService
	jwtSvc     *auth.JWTService
}

// NewAuthService creates a new AuthService.
func NewAuthService(tenantRepo repository.TenantRepository, userRepo repository.UserRepository, auditSvc *AuditService, jwtSvc *auth.JWTService) *AuthService {
	return &AuthService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		auditSvc:   auditSvc,
		jwtSvc:     jwtSvc,
	}
}

// RegisterTenantInput holds the tenant self-registration payload.
type RegisterTenantInput struct {
	TenantName    string
	Subdomain     string
	AdminEmail    string
	AdminPassword string
	AdminFullName string
	IPAddress     string
}

// RegisterTenantResult is returned on successful registration.
type RegisterTenantResult struct {
	TenantID  uuid.UUID
	Subdomain string
	AdminUser *models.User
}

// RegisterTenant creates a tenant on the free plan together with its first
// tenant_admin and the registration audit entry, all in one transaction.
func (s *AuthService) RegisterTenant(input RegisterTenantInput) (*RegisterTenantResult, error) {
	subdomain := strings.ToLower(strings.TrimSpace(input.Subdomain))
	email := strings.ToLower(strings.TrimSpace(input.AdminEmail))

	if !utils.ValidEmail(email) {
		return nil, apierrors.BadRequest("Invalid email format")
	}
	if err := utils.ValidatePassword(input.AdminPassword); err != nil {
		return nil, apierrors.BadRequest(err.Error())
	}

	if _, err := s.tenantRepo.FindBySubdomain(subdomain); err == nil {
		return nil, apierrors.Conflict("Subdomain already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check subdomain: %w", err)
	}

	hash, err := utils.HashPassword(input.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	limits := models.PlanLimits[models.PlanFree]
	tenant := &models.Tenant{
		Name:             input.TenantName,
		Subdomain:        subdomain,
		Status:           models.TenantStatusActive,
		SubscriptionPlan: models.PlanFree,
		MaxUsers:         limits.MaxUsers,
		MaxProjects:      limits.MaxProjects,
	}

	admin := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.AdminFullName),
		Role:         models.RoleTenantAdmin,
		IsActive:     true,
	}

	entry := &models.AuditLog{
		Action:     models.ActionCreateTenant,
		EntityType: "tenant",
		IPAddress:  input.IPAddress,
	}

	if err := s.tenantRepo.CreateWithAdmin(tenant, admin, entry); err != nil {
		return nil, fmt.Errorf("failed to register tenant: %w", err)
	}

	return &RegisterTenantResult{
		TenantID:  tenant.ID,
		Subdomain: tenant.Subdomain,
		AdminUser: admin,
	}, nil
}

// LoginInput holds the credentials and optional tenant context.
type LoginInput struct {
	Email           string
	Password        string
	TenantSubdomain string
	TenantID        string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresIn int
	User      *models.User
	Tenant    *models.Tenant
}

// Login verifies credentials and issues a bearer token. Wrong password, an
// unknown email, and membership in a different tenant all produce the same
// error so callers cannot tell which check failed.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	tenant, err := s.resolveTenant(input.TenantID, input.TenantSubdomain)
	if err != nil {
		return nil, err
	}
	if tenant != nil && tenant.Status == models.TenantStatusSuspended {
		return nil, apierrors.Forbidden("Account suspended")
	}

	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Role != models.RoleSuperAdmin {
		if tenant == nil {
			return nil, apierrors.BadRequest("Tenant context required")
		}
		if user.TenantID == nil || *user.TenantID != tenant.ID {
			return nil, apierrors.Unauthorized("Invalid credentials")
		}
	}

	if !user.IsActive {
		return nil, apierrors.Forbidden("Account inactive")
	}

	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		return nil, apierrors.Unauthorized("Invalid credentials")
	}

	token, expiresIn, err := s.jwtSvc.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      user,
		Tenant:    tenant,
	}, nil
}

// CurrentUser returns the principal's user row and its tenant. The tenant is
// nil for tenant-less super admins.
func (s *AuthService) CurrentUser(userID uuid.UUID) (*models.User, *models.Tenant, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apierrors.NotFound("User not found")
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.TenantID == nil {
		return user, nil, nil
	}

	tenant, err := s.tenantRepo.FindByID(*user.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to find tenant: %w", err)
	}

	return user, tenant, nil
}

// Logout records the logout in the audit trail. Tokens are stateless and not
// revoked server-side; the entry is advisory.
func (s *AuthService) Logout(actor auth.Principal, ipAddress string) {
	userID := actor.UserID
	s.auditSvc.Record(AuditEvent{
		TenantID:   actor.TenantID,
		UserID:     &userID,
		Action:     models.ActionLogout,
		EntityType: "user",
		EntityID:   &userID,
		IPAddress:  ipAddress,
	})
}

func (s *AuthService) resolveTenant(idStr, subdomain string) (*models.Tenant, error) {
	switch {
	case idStr != "":
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, apierrors.NotFound("Tenant not found")
		}
		tenant, err := s.tenantRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierrors.NotFound("Tenant not found")
			}
			return nil, fmt.Errorf("failed to find tenant: %w", err)
		}
		return tenant, nil
	case subdomain != "":
		tenant, err := s.tenantRepo.FindBySubdomain(strings.ToLower(strings.TrimSpace(subdomain)))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierrors.NotFound("Tenant not found")
			}
			return nil, fmt.Errorf("failed to find tenant: %w", err)
		}
		return tenant, nil
	default:
		return nil, nil
	}
}
