package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusTrial     TenantStatus = "trial"
)

// ValidTenantStatus reports whether s is one of the known tenant statuses.
func ValidTenantStatus(s TenantStatus) bool {
	switch s {
	case TenantStatusActive, TenantStatusSuspended, TenantStatusTrial:
		return true
	}
	return false
}

type SubscriptionPlan string

const (
	PlanFree       SubscriptionPlan = "free"
	PlanPro        SubscriptionPlan = "pro"
	PlanEnterprise SubscriptionPlan = "enterprise"
)

// PlanLimit holds the per-tenant caps derived from a subscription tier.
type PlanLimit struct {
	MaxUsers    int
	MaxProjects int
}

// PlanLimits is the static plan-to-limits lookup table. Changing a tenant's
// plan resets its limits to these values unless explicitly overridden.
var PlanLimits = map[SubscriptionPlan]PlanLimit{
	PlanFree:       {MaxUsers: 5, MaxProjects: 3},
	PlanPro:        {MaxUsers: 25, MaxProjects: 15},
	PlanEnterprise: {MaxUsers: 100, MaxProjects: 50},
}

// ValidSubscriptionPlan reports whether p is a known plan tier.
func ValidSubscriptionPlan(p SubscriptionPlan) bool {
	_, ok := PlanLimits[p]
	return ok
}

type Tenant struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string           `gorm:"type:varchar(255);not null" json:"name"`
	Subdomain        string           `gorm:"type:varchar(100);uniqueIndex;not null" json:"subdomain"`
	Status           TenantStatus     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	SubscriptionPlan SubscriptionPlan `gorm:"type:varchar(20);not null;default:'free'" json:"subscription_plan"`
	MaxUsers         int              `gorm:"not null" json:"max_users"`
	MaxProjects      int              `gorm:"not null" json:"max_projects"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	// Relations
	Users    []User    `gorm:"foreignKey:TenantID" json:"users,omitempty"`
	Projects []Project `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"projects,omitempty"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
