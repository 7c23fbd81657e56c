package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CaseStatus represents the lifecycle status of a violation case.
type CaseStatus string

const (
	CaseStatusPending   CaseStatus = "pending"
	CaseStatusDisputed  CaseStatus = "disputed"
	CaseStatusPaid      CaseStatus = "paid"
	CaseStatusDismissed CaseStatus = "dismissed"
)

// Case represents a bike violation filed against a user.
type Case struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID       `json:"userId" gorm:"type:char(36);not null;index"`
	ViolationType string          `json:"violationType" gorm:"size:100;not null;index"`
	Description   string          `json:"description" gorm:"size:2048"`
	Location      string          `json:"location" gorm:"size:512"`
	FineAmount    decimal.Decimal `json:"fineAmount" gorm:"type:decimal(20,2);not null"`
	EvidenceURLs  []string        `json:"evidenceUrls" gorm:"serializer:json"`
	Status        CaseStatus      `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	IssuedAt      time.Time       `json:"issuedAt"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	OfficerID     string          `json:"officerId,omitempty" gorm:"size:64"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
