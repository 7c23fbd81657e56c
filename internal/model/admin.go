package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminRole represents the role of an administrative account.
type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "super_admin"
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleModerator  AdminRole = "moderator"
	AdminRoleSupport    AdminRole = "support"
)

// Permission grants a set of actions on a named resource.
type Permission struct {
	Resource string   `json:"resource"`
	Actions  []string `json:"actions"`
}

// AdminUser is the separate credential store for administrators.
type AdminUser struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string         `json:"name" gorm:"size:255;not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         AdminRole      `json:"role" gorm:"type:varchar(20);not null;default:'admin';index"`
	Department   string         `json:"department" gorm:"size:100"`
	Permissions  []Permission   `json:"permissions" gorm:"serializer:json"`
	Active       bool           `json:"active" gorm:"default:true;index"`
	LastLogin    *time.Time     `json:"lastLogin,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (a *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AdminSession is a time-boxed bearer-token credential for admin API access.
// Expired rows are not swept; validation filters on ExpiresAt instead.
type AdminSession struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	AdminID   uuid.UUID `json:"adminId" gorm:"type:char(36);not null;index"`
	Token     string    `json:"token" gorm:"uniqueIndex;size:128;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index"`
	IP        string    `json:"ip,omitempty" gorm:"size:64"`
	UserAgent string    `json:"userAgent,omitempty" gorm:"size:512"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (s *AdminSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the session is past its expiry at the given time.
func (s *AdminSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// AdminActivity is an append-only audit record of admin actions.
type AdminActivity struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	AdminID    uuid.UUID `json:"adminId" gorm:"type:char(36);not null;index"`
	Action     string    `json:"action" gorm:"size:64;not null;index"`
	Resource   string    `json:"resource" gorm:"size:64;index"`
	ResourceID string    `json:"resourceId,omitempty" gorm:"size:64"`
	Details    string    `json:"details,omitempty" gorm:"size:1024"`
	IP         string    `json:"ip,omitempty" gorm:"size:64"`
	UserAgent  string    `json:"userAgent,omitempty" gorm:"size:512"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (a *AdminActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
