package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QueryStatus represents the status of a support query.
type QueryStatus string

const (
	QueryStatusOpen       QueryStatus = "open"
	QueryStatusInProgress QueryStatus = "in_progress"
	QueryStatusResolved   QueryStatus = "resolved"
	QueryStatusClosed     QueryStatus = "closed"
)

// QueryPriority represents how urgently a query should be handled.
type QueryPriority string

const (
	QueryPriorityLow    QueryPriority = "low"
	QueryPriorityMedium QueryPriority = "medium"
	QueryPriorityHigh   QueryPriority = "high"
	QueryPriorityUrgent QueryPriority = "urgent"
)

// Query represents a user-submitted support ticket, optionally tied to a case.
// IsUrgent and HasAttachments are maintained by the application, not the
// database.
type Query struct {
	ID             uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	UserID         uuid.UUID      `json:"userId" gorm:"type:char(36);not null;index"`
	CaseID         *uuid.UUID     `json:"caseId,omitempty" gorm:"type:char(36);index"`
	Subject        string         `json:"subject" gorm:"size:255;not null"`
	Message        string         `json:"message" gorm:"size:4096;not null"`
	Category       string         `json:"category" gorm:"size:64;index"`
	Priority       QueryPriority  `json:"priority" gorm:"type:varchar(20);not null;default:'medium';index"`
	IsUrgent       bool           `json:"isUrgent" gorm:"default:false;index"`
	HasAttachments bool           `json:"hasAttachments" gorm:"default:false"`
	Status         QueryStatus    `json:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	AssignedTo     *uuid.UUID     `json:"assignedTo,omitempty" gorm:"type:char(36);index"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (q *Query) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// QueryResponse is an admin reply attached to a query.
type QueryResponse struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	QueryID   uuid.UUID `json:"queryId" gorm:"type:char(36);not null;index"`
	AdminID   uuid.UUID `json:"adminId" gorm:"type:char(36);not null;index"`
	Message   string    `json:"message" gorm:"size:4096;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (r *QueryResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// QueryAttachment holds uploaded file metadata linked to a query.
type QueryAttachment struct {
	ID         uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	QueryID    uuid.UUID  `json:"queryId" gorm:"type:char(36);not null;index"`
	ResponseID *uuid.UUID `json:"responseId,omitempty" gorm:"type:char(36);index"`
	FileName   string     `json:"fileName" gorm:"size:255;not null"`
	FileURL    string     `json:"fileUrl" gorm:"size:512;not null"`
	MimeType   string     `json:"mimeType" gorm:"size:100"`
	SizeBytes  int64      `json:"sizeBytes"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (a *QueryAttachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
