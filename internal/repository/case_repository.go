package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bikefine/internal/model"
)

// CaseFilter enumerates the recognized filters for listing violation cases.
type CaseFilter struct {
	Status        string
	ViolationType string
	UserID        *uuid.UUID
	OfficerID     string
	Search        string
	FineMin       *decimal.Decimal
	FineMax       *decimal.Decimal
	IssuedFrom    *time.Time
	IssuedTo      *time.Time
	DueFrom       *time.Time
	DueTo         *time.Time
}

// ViolatorCount is a per-user violation tally.
type ViolatorCount struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Count  int64  `json:"count"`
}

// CaseStats summarizes the case collection at query time.
type CaseStats struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"byStatus"`
	ByType         map[string]int64 `json:"byType"`
	TotalFines     decimal.Decimal  `json:"totalFines"`
	CollectedFines decimal.Decimal  `json:"collectedFines"`
	ByDay          []DayCount       `json:"byDay"`
	TopViolators   []ViolatorCount  `json:"topViolators"`
}

// CaseRepository defines violation case persistence operations.
type CaseRepository interface {
	Create(ctx context.Context, c *model.Case) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Case, error)
	Update(ctx context.Context, c *model.Case) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Case, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter CaseFilter, page, limit int) ([]model.Case, int64, error)
	AppendEvidence(ctx context.Context, id uuid.UUID, url string) (*model.Case, error)
	Stats(ctx context.Context) (*CaseStats, error)
}

type caseRepository struct {
	db *gorm.DB
}

// NewCaseRepository builds a GORM-backed repository.
func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &caseRepository{db: db}
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Case, error) {
	var c model.Case
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.Case) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// UpdateFields applies a partial update and returns the refreshed record.
func (r *caseRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Case, error) {
	var c model.Case
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&c).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (r *caseRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Case{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AppendEvidence adds an uploaded proof URL to the case evidence list.
// Reads and writes the whole list; concurrent appends are last-writer-wins,
// same as every other update in this store.
func (r *caseRepository) AppendEvidence(ctx context.Context, id uuid.UUID, url string) (*model.Case, error) {
	var c model.Case
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	c.EvidenceURLs = append(c.EvidenceURLs, url)
	if err := r.db.WithContext(ctx).Save(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) List(ctx context.Context, filter CaseFilter, page, limit int) ([]model.Case, int64, error) {
	_, limit, offset := NormalizePage(page, limit)

	q := r.db.WithContext(ctx).Model(&model.Case{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ViolationType != "" {
		q = q.Where("violation_type = ?", filter.ViolationType)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.OfficerID != "" {
		q = q.Where("officer_id = ?", filter.OfficerID)
	}
	if filter.Search != "" {
		pat := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(violation_type) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?", pat, pat, pat)
	}
	if filter.FineMin != nil {
		q = q.Where("fine_amount >= ?", *filter.FineMin)
	}
	if filter.FineMax != nil {
		q = q.Where("fine_amount <= ?", *filter.FineMax)
	}
	if filter.IssuedFrom != nil {
		q = q.Where("issued_at >= ?", *filter.IssuedFrom)
	}
	if filter.IssuedTo != nil {
		q = q.Where("issued_at <= ?", *filter.IssuedTo)
	}
	if filter.DueFrom != nil {
		q = q.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		q = q.Where("due_date <= ?", *filter.DueTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cases []model.Case
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&cases).Error; err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

func (r *caseRepository) Stats(ctx context.Context) (*CaseStats, error) {
	stats := &CaseStats{
		ByStatus: make(map[string]int64),
		ByType:   make(map[string]int64),
	}

	if err := r.db.WithContext(ctx).Model(&model.Case{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var statusRows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Case{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		stats.ByStatus[row.Status] = row.Count
	}

	var typeRows []struct {
		ViolationType string
		Count         int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Case{}).
		Select("violation_type, COUNT(*) AS count").
		Group("violation_type").
		Scan(&typeRows).Error; err != nil {
		return nil, err
	}
	for _, row := range typeRows {
		stats.ByType[row.ViolationType] = row.Count
	}

	if err := r.db.WithContext(ctx).Model(&model.Case{}).
		Select("COALESCE(SUM(fine_amount), 0)").
		Scan(&stats.TotalFines).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Case{}).
		Where("status = ?", model.CaseStatusPaid).
		Select("COALESCE(SUM(fine_amount), 0)").
		Scan(&stats.CollectedFines).Error; err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -30)
	if err := r.db.WithContext(ctx).Model(&model.Case{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day").
		Scan(&stats.ByDay).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Table("cases").
		Select("cases.user_id, users.name, COUNT(*) AS count").
		Joins("JOIN users ON users.id = cases.user_id").
		Where("cases.deleted_at IS NULL").
		Group("cases.user_id, users.name").
		Order("count DESC").
		Limit(5).
		Scan(&stats.TopViolators).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
