package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bikefine/internal/model"
)

// ActivityFilter enumerates the recognized filters for the audit log.
type ActivityFilter struct {
	AdminID  *uuid.UUID
	Action   string
	Resource string
	From     *time.Time
	To       *time.Time
}

// AdminRepository defines persistence operations for admin accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *model.AdminUser) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AdminUser, error)
	FindActiveByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	Update(ctx context.Context, admin *model.AdminUser) error
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository builds a GORM-backed repository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *model.AdminUser) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AdminUser, error) {
	var admin model.AdminUser
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindActiveByEmail matches on lower-cased email and skips deactivated accounts.
func (r *adminRepository) FindActiveByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var admin model.AdminUser
	if err := r.db.WithContext(ctx).
		Where("email = ? AND active = ?", strings.ToLower(email), true).
		First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Update(ctx context.Context, admin *model.AdminUser) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

// SessionRepository defines persistence operations for admin sessions.
// Expired sessions are never swept here; FindValidByToken filters them out.
type SessionRepository interface {
	Create(ctx context.Context, session *model.AdminSession) error
	FindValidByToken(ctx context.Context, token string, now time.Time) (*model.AdminSession, error)
	DeleteByToken(ctx context.Context, token string) (bool, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository builds a GORM-backed repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.AdminSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindValidByToken returns a session only while it has not expired. The row
// itself stays in place after expiry (lazy expiry).
func (r *sessionRepository) FindValidByToken(ctx context.Context, token string, now time.Time) (*model.AdminSession, error) {
	var session model.AdminSession
	if err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, now).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteByToken removes a session. Idempotent: returns false when already gone.
func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	res := r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.AdminSession{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ActivityRepository defines the append-only audit log operations.
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.AdminActivity) error
	List(ctx context.Context, filter ActivityFilter, page, limit int) ([]model.AdminActivity, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository builds a GORM-backed repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *model.AdminActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) List(ctx context.Context, filter ActivityFilter, page, limit int) ([]model.AdminActivity, int64, error) {
	_, limit, offset := NormalizePage(page, limit)

	q := r.db.WithContext(ctx).Model(&model.AdminActivity{})
	if filter.AdminID != nil {
		q = q.Where("admin_id = ?", *filter.AdminID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.Resource != "" {
		q = q.Where("resource = ?", filter.Resource)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []model.AdminActivity
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&activities).Error; err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}
