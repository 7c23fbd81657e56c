package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "bikefine/internal/errors"
	"bikefine/internal/model"
)

func TestPaymentService_Create(t *testing.T) {
	userID := uuid.New()
	caseID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockPaymentRepository, *MockCaseRepository)
		expectedError error
	}{
		{
			name: "payment completes and settles the case",
			setupMock: func(mPayment *MockPaymentRepository, mCase *MockCaseRepository) {
				mCase.On("FindByID", mock.Anything, caseID).Return(&model.Case{
					ID:         caseID,
					UserID:     userID,
					FineAmount: decimal.NewFromInt(50),
					Status:     model.CaseStatusPending,
				}, nil)
				mPayment.On("Create", mock.Anything, mock.AnythingOfType("*model.Payment")).Return(nil)
				mCase.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Case) bool {
					return c.Status == model.CaseStatusPaid
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "already paid case rejected",
			setupMock: func(mPayment *MockPaymentRepository, mCase *MockCaseRepository) {
				mCase.On("FindByID", mock.Anything, caseID).Return(&model.Case{
					ID:         caseID,
					UserID:     userID,
					FineAmount: decimal.NewFromInt(50),
					Status:     model.CaseStatusPaid,
				}, nil)
			},
			expectedError: apperrors.ErrCaseAlreadyPaid,
		},
		{
			name: "someone else's case reads as not found",
			setupMock: func(mPayment *MockPaymentRepository, mCase *MockCaseRepository) {
				mCase.On("FindByID", mock.Anything, caseID).Return(&model.Case{
					ID:         caseID,
					UserID:     uuid.New(),
					FineAmount: decimal.NewFromInt(50),
					Status:     model.CaseStatusPending,
				}, nil)
			},
			expectedError: apperrors.ErrCaseNotFound,
		},
		{
			name: "unknown case",
			setupMock: func(mPayment *MockPaymentRepository, mCase *MockCaseRepository) {
				mCase.On("FindByID", mock.Anything, caseID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrCaseNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPayment := new(MockPaymentRepository)
			mockCase := new(MockCaseRepository)
			tt.setupMock(mockPayment, mockCase)

			svc := NewPaymentService(mockPayment, mockCase)
			payment, err := svc.Create(context.Background(), userID, caseID, "card")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, payment)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, payment)
				assert.Equal(t, caseID, payment.CaseID)
				assert.True(t, payment.Amount.Equal(decimal.NewFromInt(50)))
				assert.Equal(t, model.PaymentStatusCompleted, payment.Status)
				assert.NotNil(t, payment.PaidAt)
				assert.True(t, strings.HasPrefix(payment.TransactionID, "txn_"))
			}

			mockPayment.AssertExpectations(t)
			mockCase.AssertExpectations(t)
		})
	}
}

func TestPaymentService_GetByID(t *testing.T) {
	paymentID := uuid.New()
	caseID := uuid.New()
	ownerID := uuid.New()

	payment := &model.Payment{ID: paymentID, CaseID: caseID, Amount: decimal.NewFromInt(50)}

	tests := []struct {
		name          string
		ownerID       *uuid.UUID
		setupMock     func(*MockPaymentRepository, *MockCaseRepository)
		expectedError error
	}{
		{
			name:    "admin lookup skips the ownership check",
			ownerID: nil,
			setupMock: func(mPayment *MockPaymentRepository, mCase *MockCaseRepository) {
				mPayment.On("FindByID", mock.Anything, paymentID).Return(payment, nil)
			},
			expectedError: nil,
		},
		{
			name:    "owner sees their own payment",
			ownerID: &ownerID,
			setupMock: func(mPayment *MockPaymentRepository, mCase *MockCaseRepository) {
				mPayment.On("FindByID", mock.Anything, paymentID).Return(payment, nil)
				mCase.On("FindByID", mock.Anything, caseID).Return(&model.Case{ID: caseID, UserID: ownerID}, nil)
			},
			expectedError: nil,
		},
		{
			name:    "payment against someone else's case reads as not found",
			ownerID: &ownerID,
			setupMock: func(mPayment *MockPaymentRepository, mCase *MockCaseRepository) {
				mPayment.On("FindByID", mock.Anything, paymentID).Return(payment, nil)
				mCase.On("FindByID", mock.Anything, caseID).Return(&model.Case{ID: caseID, UserID: uuid.New()}, nil)
			},
			expectedError: apperrors.ErrPaymentNotFound,
		},
		{
			name:    "missing payment",
			ownerID: nil,
			setupMock: func(mPayment *MockPaymentRepository, mCase *MockCaseRepository) {
				mPayment.On("FindByID", mock.Anything, paymentID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrPaymentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPayment := new(MockPaymentRepository)
			mockCase := new(MockCaseRepository)
			tt.setupMock(mockPayment, mockCase)

			svc := NewPaymentService(mockPayment, mockCase)
			got, err := svc.GetByID(context.Background(), paymentID, tt.ownerID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, paymentID, got.ID)
			}

			mockPayment.AssertExpectations(t)
			mockCase.AssertExpectations(t)
		})
	}
}
