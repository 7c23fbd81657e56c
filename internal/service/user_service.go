package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bikefine/internal/auth"
	apperrors "bikefine/internal/errors"
	"bikefine/internal/model"
	"bikefine/internal/repository"
)

const bcryptCost = 10

// UserInput carries the fields accepted when creating or updating a user.
type UserInput struct {
	Name        string
	Email       string
	Password    string
	Phone       string
	Address     string
	NumberPlate string
	Role        model.UserRole
}

// UserService handles citizen accounts: registration, login and the
// admin-facing CRUD surface.
type UserService interface {
	Register(ctx context.Context, in UserInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter repository.UserFilter, page, limit int) ([]model.User, int64, error)
	Stats(ctx context.Context) (*repository.UserStats, error)
}

type userService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, jwtService *auth.JWTService) UserService {
	return &userService{userRepo: userRepo, jwtService: jwtService}
}

// Register creates a new citizen account with a hashed password.
func (s *userService) Register(ctx context.Context, in UserInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = model.UserRoleUser
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        in.Phone,
		Address:      in.Address,
		NumberPlate:  strings.ToUpper(strings.TrimSpace(in.NumberPlate)),
		Role:         role,
		Active:       true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates a citizen and returns an access token and the profile.
// A bad credential is always ErrInvalidCredentials, never an internal error.
func (s *userService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", nil, fmt.Errorf("update last login: %w", err)
	}

	token, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}
	return token, user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update applies a partial update. A password field is hashed before storage.
func (s *userService) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.User, error) {
	if pw, ok := fields["password"].(string); ok {
		delete(fields, "password")
		if pw != "" {
			hashed, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
			if err != nil {
				return nil, fmt.Errorf("hash password: %w", err)
			}
			fields["password_hash"] = string(hashed)
		}
	}

	user, err := s.userRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Delete removes a user. Cases referencing the user are deliberately left in
// place (no cascading delete).
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (s *userService) List(ctx context.Context, filter repository.UserFilter, page, limit int) ([]model.User, int64, error) {
	return s.userRepo.List(ctx, filter, page, limit)
}

func (s *userService) Stats(ctx context.Context) (*repository.UserStats, error) {
	return s.userRepo.Stats(ctx)
}
