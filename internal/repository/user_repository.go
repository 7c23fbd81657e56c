package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bikefine/internal/model"
)

// UserFilter enumerates the recognized filters for listing users.
// Unknown request parameters never reach this struct; handlers parse a fixed
// whitelist.
type UserFilter struct {
	Role        string
	Active      *bool
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserStats summarizes the user collection at query time.
type UserStats struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	ByRole   map[string]int64 `json:"byRole"`
	NewByDay []DayCount       `json:"newByDay"`
}

// DayCount is a per-day bucket used by registration and case stats.
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByPlate(ctx context.Context, plate string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter UserFilter, page, limit int) ([]model.User, int64, error)
	Stats(ctx context.Context) (*UserStats, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByPlate resolves a user from a vehicle number plate, ignoring case.
func (r *userRepository) FindByPlate(ctx context.Context, plate string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("UPPER(number_plate) = ?", strings.ToUpper(strings.TrimSpace(plate))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// UpdateFields applies a partial update and returns the refreshed record.
func (r *userRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&user).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// Delete removes a user. Cases referencing the user are left untouched.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter, page, limit int) ([]model.User, int64, error) {
	_, limit, offset := NormalizePage(page, limit)

	q := r.db.WithContext(ctx).Model(&model.User{})
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Active != nil {
		q = q.Where("active = ?", *filter.Active)
	}
	if filter.Search != "" {
		pat := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(number_plate) LIKE ?", pat, pat, pat)
	}
	if filter.CreatedFrom != nil {
		q = q.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		q = q.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) Stats(ctx context.Context) (*UserStats, error) {
	stats := &UserStats{ByRole: make(map[string]int64)}

	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, err
	}

	var roleRows []struct {
		Role  string
		Count int64
	}
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&roleRows).Error; err != nil {
		return nil, err
	}
	for _, row := range roleRows {
		stats.ByRole[row.Role] = row.Count
	}

	since := time.Now().AddDate(0, 0, -30)
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day").
		Scan(&stats.NewByDay).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
