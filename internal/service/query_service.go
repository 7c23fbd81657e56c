package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "bikefine/internal/errors"
	"bikefine/internal/model"
	"bikefine/internal/repository"
)

// QueryInput carries the fields accepted when opening a support query.
type QueryInput struct {
	UserID   uuid.UUID
	CaseID   *uuid.UUID
	Subject  string
	Message  string
	Category string
	Priority model.QueryPriority
	IsUrgent bool
}

// QueryDetail bundles a query with its child records.
type QueryDetail struct {
	Query       model.Query             `json:"query"`
	Responses   []model.QueryResponse   `json:"responses"`
	Attachments []model.QueryAttachment `json:"attachments"`
}

// QueryService handles support queries, admin responses and attachments.
type QueryService interface {
	Create(ctx context.Context, in QueryInput) (*model.Query, error)
	GetByID(ctx context.Context, id uuid.UUID) (*QueryDetail, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Query, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter repository.QueryFilter, page, limit int) ([]model.Query, int64, error)
	Respond(ctx context.Context, queryID, adminID uuid.UUID, message string) (*model.QueryResponse, error)
	Attach(ctx context.Context, queryID uuid.UUID, responseID *uuid.UUID, fileName, fileURL, mimeType string, size int64) (*model.QueryAttachment, error)
	Stats(ctx context.Context) (*repository.QueryStats, error)
}

type queryService struct {
	queryRepo repository.QueryRepository
	caseRepo  repository.CaseRepository
}

// NewQueryService creates a new query service.
func NewQueryService(queryRepo repository.QueryRepository, caseRepo repository.CaseRepository) QueryService {
	return &queryService{queryRepo: queryRepo, caseRepo: caseRepo}
}

// Create opens a support query. The urgency flag is derived here, not stored
// by the client: urgent priority always marks the query urgent.
func (s *queryService) Create(ctx context.Context, in QueryInput) (*model.Query, error) {
	if in.CaseID != nil {
		if _, err := s.caseRepo.FindByID(ctx, *in.CaseID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.ErrCaseNotFound
			}
			return nil, fmt.Errorf("find case: %w", err)
		}
	}

	priority := in.Priority
	if priority == "" {
		priority = model.QueryPriorityMedium
	}

	q := &model.Query{
		ID:       uuid.New(),
		UserID:   in.UserID,
		CaseID:   in.CaseID,
		Subject:  in.Subject,
		Message:  in.Message,
		Category: in.Category,
		Priority: priority,
		IsUrgent: in.IsUrgent || priority == model.QueryPriorityUrgent,
		Status:   model.QueryStatusOpen,
	}

	if err := s.queryRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create query: %w", err)
	}
	return q, nil
}

func (s *queryService) GetByID(ctx context.Context, id uuid.UUID) (*QueryDetail, error) {
	q, err := s.queryRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrQueryNotFound
		}
		return nil, err
	}

	responses, err := s.queryRepo.ListResponses(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	attachments, err := s.queryRepo.ListAttachments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}

	return &QueryDetail{Query: *q, Responses: responses, Attachments: attachments}, nil
}

func (s *queryService) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Query, error) {
	q, err := s.queryRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrQueryNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *queryService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.queryRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrQueryNotFound
	}
	return nil
}

func (s *queryService) List(ctx context.Context, filter repository.QueryFilter, page, limit int) ([]model.Query, int64, error) {
	return s.queryRepo.List(ctx, filter, page, limit)
}

// Respond appends an admin reply and moves the query to in_progress.
func (s *queryService) Respond(ctx context.Context, queryID, adminID uuid.UUID, message string) (*model.QueryResponse, error) {
	q, err := s.queryRepo.FindByID(ctx, queryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrQueryNotFound
		}
		return nil, err
	}

	resp := &model.QueryResponse{
		ID:      uuid.New(),
		QueryID: q.ID,
		AdminID: adminID,
		Message: message,
	}
	if err := s.queryRepo.CreateResponse(ctx, resp); err != nil {
		return nil, fmt.Errorf("create response: %w", err)
	}

	if q.Status == model.QueryStatusOpen {
		q.Status = model.QueryStatusInProgress
	}
	if q.AssignedTo == nil {
		assigned := adminID
		q.AssignedTo = &assigned
	}
	if err := s.queryRepo.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("update query status: %w", err)
	}

	return resp, nil
}

// Attach links uploaded file metadata to a query and keeps the derived
// hasAttachments flag in sync.
func (s *queryService) Attach(ctx context.Context, queryID uuid.UUID, responseID *uuid.UUID, fileName, fileURL, mimeType string, size int64) (*model.QueryAttachment, error) {
	q, err := s.queryRepo.FindByID(ctx, queryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrQueryNotFound
		}
		return nil, err
	}

	att := &model.QueryAttachment{
		ID:         uuid.New(),
		QueryID:    q.ID,
		ResponseID: responseID,
		FileName:   fileName,
		FileURL:    fileURL,
		MimeType:   mimeType,
		SizeBytes:  size,
	}
	if err := s.queryRepo.CreateAttachment(ctx, att); err != nil {
		return nil, fmt.Errorf("create attachment: %w", err)
	}

	if !q.HasAttachments {
		q.HasAttachments = true
		if err := s.queryRepo.Update(ctx, q); err != nil {
			return nil, fmt.Errorf("update attachments flag: %w", err)
		}
	}

	return att, nil
}

func (s *queryService) Stats(ctx context.Context) (*repository.QueryStats, error) {
	return s.queryRepo.Stats(ctx)
}
