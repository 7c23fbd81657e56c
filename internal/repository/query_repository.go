package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bikefine/internal/model"
)

// QueryFilter enumerates the recognized filters for listing support queries.
type QueryFilter struct {
	Status         string
	Category       string
	Priority       string
	UserID         *uuid.UUID
	CaseID         *uuid.UUID
	AssignedTo     *uuid.UUID
	IsUrgent       *bool
	HasAttachments *bool
	Search         string
}

// QueryStats summarizes the query collection at query time.
type QueryStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByCategory map[string]int64 `json:"byCategory"`
	ByPriority map[string]int64 `json:"byPriority"`
	Urgent     int64            `json:"urgent"`
	Unassigned int64            `json:"unassigned"`
}

// QueryRepository defines support query persistence operations, including the
// child response and attachment records.
type QueryRepository interface {
	Create(ctx context.Context, q *model.Query) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Query, error)
	Update(ctx context.Context, q *model.Query) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Query, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter QueryFilter, page, limit int) ([]model.Query, int64, error)
	CreateResponse(ctx context.Context, resp *model.QueryResponse) error
	ListResponses(ctx context.Context, queryID uuid.UUID) ([]model.QueryResponse, error)
	CreateAttachment(ctx context.Context, att *model.QueryAttachment) error
	ListAttachments(ctx context.Context, queryID uuid.UUID) ([]model.QueryAttachment, error)
	Stats(ctx context.Context) (*QueryStats, error)
}

type queryRepository struct {
	db *gorm.DB
}

// NewQueryRepository builds a GORM-backed repository.
func NewQueryRepository(db *gorm.DB) QueryRepository {
	return &queryRepository{db: db}
}

func (r *queryRepository) Create(ctx context.Context, q *model.Query) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *queryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Query, error) {
	var q model.Query
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *queryRepository) Update(ctx context.Context, q *model.Query) error {
	return r.db.WithContext(ctx).Save(q).Error
}

// UpdateFields applies a partial update and returns the refreshed record.
func (r *queryRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Query, error) {
	var q model.Query
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&q).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return &q, nil
}

func (r *queryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Query{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *queryRepository) List(ctx context.Context, filter QueryFilter, page, limit int) ([]model.Query, int64, error) {
	_, limit, offset := NormalizePage(page, limit)

	q := r.db.WithContext(ctx).Model(&model.Query{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.CaseID != nil {
		q = q.Where("case_id = ?", *filter.CaseID)
	}
	if filter.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.IsUrgent != nil {
		q = q.Where("is_urgent = ?", *filter.IsUrgent)
	}
	if filter.HasAttachments != nil {
		q = q.Where("has_attachments = ?", *filter.HasAttachments)
	}
	if filter.Search != "" {
		pat := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(subject) LIKE ? OR LOWER(message) LIKE ?", pat, pat)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var queries []model.Query
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&queries).Error; err != nil {
		return nil, 0, err
	}
	return queries, total, nil
}

func (r *queryRepository) CreateResponse(ctx context.Context, resp *model.QueryResponse) error {
	return r.db.WithContext(ctx).Create(resp).Error
}

func (r *queryRepository) ListResponses(ctx context.Context, queryID uuid.UUID) ([]model.QueryResponse, error) {
	var responses []model.QueryResponse
	if err := r.db.WithContext(ctx).
		Where("query_id = ?", queryID).
		Order("created_at").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *queryRepository) CreateAttachment(ctx context.Context, att *model.QueryAttachment) error {
	return r.db.WithContext(ctx).Create(att).Error
}

func (r *queryRepository) ListAttachments(ctx context.Context, queryID uuid.UUID) ([]model.QueryAttachment, error) {
	var attachments []model.QueryAttachment
	if err := r.db.WithContext(ctx).
		Where("query_id = ?", queryID).
		Order("created_at").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *queryRepository) Stats(ctx context.Context) (*QueryStats, error) {
	stats := &QueryStats{
		ByStatus:   make(map[string]int64),
		ByCategory: make(map[string]int64),
		ByPriority: make(map[string]int64),
	}

	if err := r.db.WithContext(ctx).Model(&model.Query{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var statusRows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Query{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		stats.ByStatus[row.Status] = row.Count
	}

	var categoryRows []struct {
		Category string
		Count    int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Query{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&categoryRows).Error; err != nil {
		return nil, err
	}
	for _, row := range categoryRows {
		stats.ByCategory[row.Category] = row.Count
	}

	var priorityRows []struct {
		Priority string
		Count    int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Query{}).
		Select("priority, COUNT(*) AS count").
		Group("priority").
		Scan(&priorityRows).Error; err != nil {
		return nil, err
	}
	for _, row := range priorityRows {
		stats.ByPriority[row.Priority] = row.Count
	}

	if err := r.db.WithContext(ctx).Model(&model.Query{}).
		Where("is_urgent = ?", true).
		Count(&stats.Urgent).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Query{}).
		Where("assigned_to IS NULL").
		Count(&stats.Unassigned).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
