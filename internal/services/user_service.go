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

// UserService handles the user directory of a tenant: creation under the
// plan limit, role assignment rules, and the self-service restrictions.
type UserService struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	auditSvc   *AuditService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, tenantRepo repository.TenantRepository, auditSvc *AuditService) *UserService {
	return &UserService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		auditSvc:   auditSvc,
	}
}

// CreateUserInput holds the payload for creating a user inside a tenant.
type CreateUserInput struct {
	Email     string
	Password  string
	FullName  string
	Role      models.UserRole
	IPAddress string
}

// Create adds a user to the tenant, enforcing the plan's user limit.
func (s *UserService) Create(actor auth.Principal, tenantID uuid.UUID, input CreateUserInput) (*models.User, error) {
	if !actor.CanAccessTenant(tenantID) {
		return nil, apierrors.CrossTenant()
	}
	if !actor.IsAdmin() {
		return nil, apierrors.Forbidden("Forbidden")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.TrimSpace(input.FullName)
	if email == "" || input.Password == "" || fullName == "" {
		return nil, apierrors.BadRequest("Email, password, and full name are required")
	}
	if !utils.ValidEmail(email) {
		return nil, apierrors.BadRequest("Invalid email format")
	}
	if err := utils.ValidatePassword(input.Password); err != nil {
		return nil, apierrors.BadRequest(err.Error())
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidUserRole(role) {
		return nil, apierrors.BadRequest("Invalid role specified")
	}
	if role == models.RoleSuperAdmin && !actor.IsSuperAdmin() {
		return nil, apierrors.Forbidden("Cannot create super admin user")
	}

	if err := s.ensureUserLimit(tenantID); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByTenantAndEmail(tenantID, email); err == nil {
		return nil, apierrors.Conflict("Email already exists for this tenant")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		TenantID:     &tenantID,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	actorID := actor.UserID
	s.auditSvc.Record(AuditEvent{
		TenantID:   &tenantID,
		UserID:     &actorID,
		Action:     models.ActionCreateUser,
		EntityType: "user",
		EntityID:   &user.ID,
		IPAddress:  input.IPAddress,
	})

	return user, nil
}

// ListUsersInput holds filters for listing a tenant's users.
type ListUsersInput struct {
	Search   string
	Role     *models.UserRole
	Page     int
	PageSize int
}

// List returns the tenant's users.
func (s *UserService) List(actor auth.Principal, tenantID uuid.UUID, input ListUsersInput) ([]models.User, int64, error) {
	if !actor.CanAccessTenant(tenantID) {
		return nil, 0, apierrors.CrossTenant()
	}

	users, total, err := s.userRepo.List(repository.UserFilter{
		TenantID: tenantID,
		Search:   input.Search,
		Role:     input.Role,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Get returns a single user.
func (s *UserService) Get(actor auth.Principal, id uuid.UUID) (*models.User, error) {
	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}

	if err := s.checkScope(actor, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserInput is a patch: nil fields are left unchanged.
type UpdateUserInput struct {
	FullName  *string
	Password  *string
	Role      *models.UserRole
	IsActive  *bool
	IPAddress string
}

// Update applies a user patch. Non-admins may only touch their own
// non-privileged fields; nobody may change their own role or deactivate
// their own account; tenant admins may neither touch super admins nor
// elevate anyone to super admin.
func (s *UserService) Update(actor auth.Principal, id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}

	if err := s.checkScope(actor, user); err != nil {
		return nil, err
	}

	isSelf := actor.UserID == user.ID
	isAdmin := actor.IsAdmin()

	if !isAdmin && !isSelf {
		return nil, apierrors.Forbidden("Forbidden")
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, apierrors.BadRequest("Full name must be a non-empty string")
		}
		user.FullName = name
	}

	if input.Password != nil {
		if !isSelf && !isAdmin {
			return nil, apierrors.Forbidden("Cannot change another user's password")
		}
		if err := utils.ValidatePassword(*input.Password); err != nil {
			return nil, apierrors.BadRequest(err.Error())
		}
		hash, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if input.Role != nil {
		if !isAdmin {
			return nil, apierrors.Forbidden("Only admins can change user roles")
		}
		if !models.ValidUserRole(*input.Role) {
			return nil, apierrors.BadRequest("Invalid role specified")
		}
		if isSelf {
			return nil, apierrors.Forbidden("Cannot change your own role")
		}
		if *input.Role == models.RoleSuperAdmin && !actor.IsSuperAdmin() {
			return nil, apierrors.Forbidden("Cannot assign super admin role")
		}
		if user.Role == models.RoleSuperAdmin && !actor.IsSuperAdmin() {
			return nil, apierrors.Forbidden("Cannot change a super admin's role")
		}
		user.Role = *input.Role
	}

	if input.IsActive != nil {
		if !isAdmin {
			return nil, apierrors.Forbidden("Only admins can change user active status")
		}
		if isSelf && !*input.IsActive {
			return nil, apierrors.Forbidden("Cannot deactivate your own account")
		}
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	actorID := actor.UserID
	s.auditSvc.Record(AuditEvent{
		TenantID:   user.TenantID,
		UserID:     &actorID,
		Action:     models.ActionUpdateUser,
		EntityType: "user",
		EntityID:   &user.ID,
		IPAddress:  input.IPAddress,
	})

	return user, nil
}

// Delete removes a user. Admins only; never your own account; a tenant
// admin can never delete a super admin.
func (s *UserService) Delete(actor auth.Principal, id uuid.UUID, ipAddress string) error {
	if actor.UserID == id {
		return apierrors.Forbidden("Cannot delete own account")
	}

	user, err := s.findUser(id)
	if err != nil {
		return err
	}

	if err := s.checkScope(actor, user); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return apierrors.Forbidden("Only admins can delete users")
	}
	if user.Role == models.RoleSuperAdmin && !actor.IsSuperAdmin() {
		return apierrors.Forbidden("Cannot delete super admin user")
	}

	if err := s.userRepo.Delete(user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	actorID := actor.UserID
	s.auditSvc.Record(AuditEvent{
		TenantID:   user.TenantID,
		UserID:     &actorID,
		Action:     models.ActionDeleteUser,
		EntityType: "user",
		EntityID:   &user.ID,
		IPAddress:  ipAddress,
	})

	return nil
}

func (s *UserService) ensureUserLimit(tenantID uuid.UUID) error {
	tenant, err := s.tenantRepo.FindByID(tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NotFound("Tenant not found")
		}
		return fmt.Errorf("failed to find tenant: %w", err)
	}

	count, err := s.tenantRepo.CountUsers(tenantID)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count >= int64(tenant.MaxUsers) {
		return apierrors.Forbidden("User limit reached for current plan")
	}
	return nil
}

func (s *UserService) findUser(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// checkScope enforces tenant isolation for an existing user
// row. The caller has already handled the not-found case, so a mismatch
// here is always a cross-tenant violation.
func (s *UserService) checkScope(actor auth.Principal, user *models.User) error {
	if actor.IsSuperAdmin() {
		return nil
	}
	if user.TenantID == nil || actor.TenantID == nil || *user.TenantID != *actor.TenantID {
		return apierrors.CrossTenant()
	}
	return nil
}
