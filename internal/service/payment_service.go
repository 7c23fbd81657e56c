package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "bikefine/internal/errors"
	"bikefine/internal/model"
	"bikefine/internal/repository"
)

// PaymentService handles fine payments. The gateway is a stub: every payment
// completes immediately and settles its case. No external integration.
// Payments are a citizen surface: the payer must own the case, and lookups
// pass the owner id so foreign records read as not found.
type PaymentService interface {
	Create(ctx context.Context, payerID, caseID uuid.UUID, method string) (*model.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*model.Payment, error)
	List(ctx context.Context, filter repository.PaymentFilter, page, limit int) ([]model.Payment, int64, error)
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]model.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	caseRepo    repository.CaseRepository
}

// NewPaymentService creates a new payment service.
func NewPaymentService(paymentRepo repository.PaymentRepository, caseRepo repository.CaseRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, caseRepo: caseRepo}
}

// Create pays the fine for a case. The amount always equals the case fine;
// partial payments are not supported. A case owned by another citizen is
// indistinguishable from a missing one.
func (s *paymentService) Create(ctx context.Context, payerID, caseID uuid.UUID, method string) (*model.Payment, error) {
	c, err := s.caseRepo.FindByID(ctx, caseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCaseNotFound
		}
		return nil, fmt.Errorf("find case: %w", err)
	}
	if c.UserID != payerID {
		return nil, apperrors.ErrCaseNotFound
	}
	if c.Status == model.CaseStatusPaid {
		return nil, apperrors.ErrCaseAlreadyPaid
	}
	if c.FineAmount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}

	now := time.Now()
	payment := &model.Payment{
		ID:            uuid.New(),
		CaseID:        c.ID,
		Amount:        c.FineAmount,
		Currency:      "EUR",
		Method:        method,
		TransactionID: newTransactionID(),
		Status:        model.PaymentStatusCompleted,
		PaidAt:        &now,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	c.Status = model.CaseStatusPaid
	if err := s.caseRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("mark case paid: %w", err)
	}

	return payment, nil
}

// GetByID returns a payment. A non-nil ownerID restricts the lookup to
// payments on the owner's own cases.
func (s *paymentService) GetByID(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, err
	}
	if ownerID != nil {
		c, err := s.caseRepo.FindByID(ctx, payment.CaseID)
		if err != nil || c.UserID != *ownerID {
			return nil, apperrors.ErrPaymentNotFound
		}
	}
	return payment, nil
}

func (s *paymentService) List(ctx context.Context, filter repository.PaymentFilter, page, limit int) ([]model.Payment, int64, error) {
	return s.paymentRepo.List(ctx, filter, page, limit)
}

func (s *paymentService) ListByCase(ctx context.Context, caseID uuid.UUID) ([]model.Payment, error) {
	return s.paymentRepo.ListByCase(ctx, caseID)
}

func newTransactionID() string {
	return "txn_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}
