package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "bikefine/internal/errors"
	"bikefine/internal/model"
	"bikefine/internal/repository"
)

// CaseInput carries the fields accepted when filing a violation case.
// Exactly one of UserID or NumberPlate must resolve to an existing user.
type CaseInput struct {
	UserID        *uuid.UUID
	NumberPlate   string
	ViolationType string
	Description   string
	Location      string
	FineAmount    decimal.Decimal
	EvidenceURLs  []string
	DueDate       *time.Time
	OfficerID     string
}

// CaseService handles violation cases.
type CaseService interface {
	Create(ctx context.Context, in CaseInput) (*model.Case, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Case, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Case, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter repository.CaseFilter, page, limit int) ([]model.Case, int64, error)
	AppendEvidence(ctx context.Context, id uuid.UUID, url string) (*model.Case, error)
	Stats(ctx context.Context) (*repository.CaseStats, error)
}

type caseService struct {
	caseRepo  repository.CaseRepository
	userRepo  repository.UserRepository
	queryRepo repository.QueryRepository
}

// NewCaseService creates a new case service.
func NewCaseService(caseRepo repository.CaseRepository, userRepo repository.UserRepository, queryRepo repository.QueryRepository) CaseService {
	return &caseService{caseRepo: caseRepo, userRepo: userRepo, queryRepo: queryRepo}
}

// Create files a violation case. The target user is resolved either directly
// by id or through a number-plate lookup; an unresolvable plate persists
// nothing. A companion notification query is created best-effort.
func (s *caseService) Create(ctx context.Context, in CaseInput) (*model.Case, error) {
	if in.FineAmount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}

	user, err := s.resolveUser(ctx, in)
	if err != nil {
		return nil, err
	}

	c := &model.Case{
		ID:            uuid.New(),
		UserID:        user.ID,
		ViolationType: in.ViolationType,
		Description:   in.Description,
		Location:      in.Location,
		FineAmount:    in.FineAmount,
		EvidenceURLs:  in.EvidenceURLs,
		Status:        model.CaseStatusPending,
		IssuedAt:      time.Now(),
		DueDate:       in.DueDate,
		OfficerID:     in.OfficerID,
	}

	if err := s.caseRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}

	s.notifyUser(ctx, c)

	return c, nil
}

func (s *caseService) resolveUser(ctx context.Context, in CaseInput) (*model.User, error) {
	if in.UserID != nil {
		user, err := s.userRepo.FindByID(ctx, *in.UserID)
		if err == nil {
			return user, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("find user: %w", err)
		}
		// Unknown id falls through to the plate lookup when one was given.
		if in.NumberPlate == "" {
			return nil, apperrors.ErrUserNotFound
		}
	}
	if in.NumberPlate == "" {
		return nil, apperrors.ErrUserNotFound
	}

	user, err := s.userRepo.FindByPlate(ctx, in.NumberPlate)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPlateNotFound
		}
		return nil, fmt.Errorf("find user by plate: %w", err)
	}
	return user, nil
}

// notifyUser creates the companion query that surfaces the new case in the
// user's support inbox. Failure is logged and swallowed: the case stands.
func (s *caseService) notifyUser(ctx context.Context, c *model.Case) {
	caseID := c.ID
	q := &model.Query{
		ID:       uuid.New(),
		UserID:   c.UserID,
		CaseID:   &caseID,
		Subject:  fmt.Sprintf("New violation filed: %s", c.ViolationType),
		Message:  fmt.Sprintf("A %s violation has been filed against your account with a fine of %s. You can dispute it through this ticket.", c.ViolationType, c.FineAmount.StringFixed(2)),
		Category: "violation_notice",
		Priority: model.QueryPriorityMedium,
		Status:   model.QueryStatusOpen,
	}
	if err := s.queryRepo.Create(ctx, q); err != nil {
		log.Printf("notification query for case %s not created: %v", c.ID, err)
	}
}

func (s *caseService) GetByID(ctx context.Context, id uuid.UUID) (*model.Case, error) {
	c, err := s.caseRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCaseNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *caseService) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Case, error) {
	c, err := s.caseRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCaseNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *caseService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.caseRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrCaseNotFound
	}
	return nil
}

func (s *caseService) List(ctx context.Context, filter repository.CaseFilter, page, limit int) ([]model.Case, int64, error) {
	return s.caseRepo.List(ctx, filter, page, limit)
}

func (s *caseService) AppendEvidence(ctx context.Context, id uuid.UUID, url string) (*model.Case, error) {
	c, err := s.caseRepo.AppendEvidence(ctx, id, url)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCaseNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *caseService) Stats(ctx context.Context) (*repository.CaseStats, error) {
	return s.caseRepo.Stats(ctx)
}
