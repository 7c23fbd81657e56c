package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bikefine/internal/auth"
	apperrors "bikefine/internal/errors"
	"bikefine/internal/model"
	"bikefine/internal/repository"
)

// ActivityEntry describes one audit log append.
type ActivityEntry struct {
	AdminID    uuid.UUID
	Action     string
	Resource   string
	ResourceID string
	Details    string
	IP         string
	UserAgent  string
}

// AdminService handles admin authentication, the session lifecycle
// (issued -> valid -> expired or invalidated) and the audit log.
type AdminService interface {
	Login(ctx context.Context, email, password, ip, userAgent string) (*model.AdminSession, *model.AdminUser, error)
	ValidateSession(ctx context.Context, token string) (*model.AdminSession, *model.AdminUser, error)
	InvalidateSession(ctx context.Context, token string) (bool, error)
	LogActivity(ctx context.Context, entry ActivityEntry)
	ListActivities(ctx context.Context, filter repository.ActivityFilter, page, limit int) ([]model.AdminActivity, int64, error)
}

type adminService struct {
	adminRepo    repository.AdminRepository
	sessionRepo  repository.SessionRepository
	activityRepo repository.ActivityRepository
	sessionCache auth.SessionCacheInterface
}

// NewAdminService creates a new admin service.
func NewAdminService(
	adminRepo repository.AdminRepository,
	sessionRepo repository.SessionRepository,
	activityRepo repository.ActivityRepository,
	sessionCache auth.SessionCacheInterface,
) AdminService {
	return &adminService{
		adminRepo:    adminRepo,
		sessionRepo:  sessionRepo,
		activityRepo: activityRepo,
		sessionCache: sessionCache,
	}
}

// Login authenticates an admin and issues an 8-hour session token.
// A bad credential is always ErrInvalidCredentials, never an internal error.
func (s *adminService) Login(ctx context.Context, email, password, ip, userAgent string) (*model.AdminSession, *model.AdminUser, error) {
	admin, err := s.adminRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	admin.LastLogin = &now
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, nil, fmt.Errorf("update last login: %w", err)
	}

	session := &model.AdminSession{
		ID:        uuid.New(),
		AdminID:   admin.ID,
		Token:     auth.NewAdminToken(),
		ExpiresAt: now.Add(auth.SessionExpiry),
		IP:        ip,
		UserAgent: userAgent,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	_ = s.sessionCache.Put(ctx, session)

	s.LogActivity(ctx, ActivityEntry{
		AdminID:   admin.ID,
		Action:    "login",
		Resource:  "session",
		IP:        ip,
		UserAgent: userAgent,
	})

	return session, admin, nil
}

// ValidateSession returns the session and its owner only while the session
// has not expired. Expired rows stay in storage and simply stop matching.
// The redis hint short-circuits the lookup but never replaces the database
// as the source of truth for the session row.
func (s *adminService) ValidateSession(ctx context.Context, token string) (*model.AdminSession, *model.AdminUser, error) {
	if token == "" || !auth.IsAdminToken(token) {
		return nil, nil, apperrors.ErrSessionInvalid
	}

	if cached, ok := s.sessionCache.Get(ctx, token); ok {
		admin, err := s.adminRepo.FindByID(ctx, cached.AdminID)
		if err == nil && admin.Active {
			return cached, admin, nil
		}
		// Deactivated or vanished admin: drop the hint and fall through.
		_ = s.sessionCache.Delete(ctx, token)
	}

	session, err := s.sessionRepo.FindValidByToken(ctx, token, time.Now())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			_ = s.sessionCache.Delete(ctx, token)
			return nil, nil, apperrors.ErrSessionInvalid
		}
		return nil, nil, fmt.Errorf("find session: %w", err)
	}

	admin, err := s.adminRepo.FindByID(ctx, session.AdminID)
	if err != nil {
		return nil, nil, apperrors.ErrSessionInvalid
	}
	if !admin.Active {
		return nil, nil, apperrors.ErrSessionInvalid
	}

	_ = s.sessionCache.Put(ctx, session)

	return session, admin, nil
}

// InvalidateSession deletes the session row and its cache hint. Idempotent:
// returns false when the token was already gone.
func (s *adminService) InvalidateSession(ctx context.Context, token string) (bool, error) {
	_ = s.sessionCache.Delete(ctx, token)
	return s.sessionRepo.DeleteByToken(ctx, token)
}

// LogActivity appends an audit record. This path is non-critical telemetry:
// errors are logged and swallowed so the primary operation never fails on it.
func (s *adminService) LogActivity(ctx context.Context, entry ActivityEntry) {
	activity := &model.AdminActivity{
		ID:         uuid.New(),
		AdminID:    entry.AdminID,
		Action:     entry.Action,
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		Details:    entry.Details,
		IP:         entry.IP,
		UserAgent:  entry.UserAgent,
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		log.Printf("admin activity not recorded (%s %s): %v", entry.Action, entry.Resource, err)
	}
}

func (s *adminService) ListActivities(ctx context.Context, filter repository.ActivityFilter, page, limit int) ([]model.AdminActivity, int64, error) {
	return s.activityRepo.List(ctx, filter, page, limit)
}
