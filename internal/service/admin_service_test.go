package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bikefine/internal/auth"
	apperrors "bikefine/internal/errors"
	"bikefine/internal/model"
)

func missCache() *MockSessionCache {
	c := new(MockSessionCache)
	c.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(nil, false).Maybe()
	c.On("Put", mock.Anything, mock.AnythingOfType("*model.AdminSession")).Return(nil).Maybe()
	c.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil).Maybe()
	return c
}

func TestAdminService_Login(t *testing.T) {
	adminID := uuid.New()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockAdminRepository, *MockSessionRepository, *MockActivityRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "admin@city.example",
			password: "s3cret",
			setupMock: func(mAdmin *MockAdminRepository, mSession *MockSessionRepository, mActivity *MockActivityRepository) {
				mAdmin.On("FindActiveByEmail", mock.Anything, "admin@city.example").Return(&model.AdminUser{
					ID:           adminID,
					Email:        "admin@city.example",
					PasswordHash: string(hashed),
					Active:       true,
				}, nil)
				mAdmin.On("Update", mock.Anything, mock.AnythingOfType("*model.AdminUser")).Return(nil)
				mSession.On("Create", mock.Anything, mock.AnythingOfType("*model.AdminSession")).Return(nil)
				mActivity.On("Create", mock.Anything, mock.AnythingOfType("*model.AdminActivity")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			email:    "admin@city.example",
			password: "not-it",
			setupMock: func(mAdmin *MockAdminRepository, mSession *MockSessionRepository, mActivity *MockActivityRepository) {
				mAdmin.On("FindActiveByEmail", mock.Anything, "admin@city.example").Return(&model.AdminUser{
					ID:           adminID,
					Email:        "admin@city.example",
					PasswordHash: string(hashed),
					Active:       true,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown or inactive admin",
			email:    "ghost@city.example",
			password: "s3cret",
			setupMock: func(mAdmin *MockAdminRepository, mSession *MockSessionRepository, mActivity *MockActivityRepository) {
				mAdmin.On("FindActiveByEmail", mock.Anything, "ghost@city.example").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAdmin := new(MockAdminRepository)
			mockSession := new(MockSessionRepository)
			mockActivity := new(MockActivityRepository)
			tt.setupMock(mockAdmin, mockSession, mockActivity)

			svc := NewAdminService(mockAdmin, mockSession, mockActivity, missCache())
			session, admin, err := svc.Login(context.Background(), tt.email, tt.password, "10.0.0.1", "test-agent")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, session)
				assert.Nil(t, admin)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, admin)
				assert.NotNil(t, session)
				assert.Equal(t, adminID, session.AdminID)
				assert.True(t, auth.IsAdminToken(session.Token))
				assert.WithinDuration(t, time.Now().Add(auth.SessionExpiry), session.ExpiresAt, 5*time.Second)
			}

			mockAdmin.AssertExpectations(t)
			mockSession.AssertExpectations(t)
			mockActivity.AssertExpectations(t)
		})
	}
}

func TestAdminService_ValidateSession(t *testing.T) {
	adminID := uuid.New()
	token := auth.NewAdminToken()

	tests := []struct {
		name          string
		token         string
		setupMock     func(*MockAdminRepository, *MockSessionRepository)
		expectedError error
	}{
		{
			name:  "valid session",
			token: token,
			setupMock: func(mAdmin *MockAdminRepository, mSession *MockSessionRepository) {
				mSession.On("FindValidByToken", mock.Anything, token, mock.AnythingOfType("time.Time")).Return(&model.AdminSession{
					ID:        uuid.New(),
					AdminID:   adminID,
					Token:     token,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil)
				mAdmin.On("FindByID", mock.Anything, adminID).Return(&model.AdminUser{ID: adminID, Active: true}, nil)
			},
			expectedError: nil,
		},
		{
			name:  "expired session stops matching",
			token: token,
			setupMock: func(mAdmin *MockAdminRepository, mSession *MockSessionRepository) {
				mSession.On("FindValidByToken", mock.Anything, token, mock.AnythingOfType("time.Time")).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrSessionInvalid,
		},
		{
			name:  "deactivated admin",
			token: token,
			setupMock: func(mAdmin *MockAdminRepository, mSession *MockSessionRepository) {
				mSession.On("FindValidByToken", mock.Anything, token, mock.AnythingOfType("time.Time")).Return(&model.AdminSession{
					ID:        uuid.New(),
					AdminID:   adminID,
					Token:     token,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil)
				mAdmin.On("FindByID", mock.Anything, adminID).Return(&model.AdminUser{ID: adminID, Active: false}, nil)
			},
			expectedError: apperrors.ErrSessionInvalid,
		},
		{
			name:          "malformed token rejected without a lookup",
			token:         "Bearer abc123",
			setupMock:     func(mAdmin *MockAdminRepository, mSession *MockSessionRepository) {},
			expectedError: apperrors.ErrSessionInvalid,
		},
		{
			name:          "empty token",
			token:         "",
			setupMock:     func(mAdmin *MockAdminRepository, mSession *MockSessionRepository) {},
			expectedError: apperrors.ErrSessionInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAdmin := new(MockAdminRepository)
			mockSession := new(MockSessionRepository)
			tt.setupMock(mockAdmin, mockSession)

			svc := NewAdminService(mockAdmin, mockSession, new(MockActivityRepository), missCache())
			session, admin, err := svc.ValidateSession(context.Background(), tt.token)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, session)
				assert.Nil(t, admin)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, adminID, session.AdminID)
				assert.Equal(t, adminID, admin.ID)
			}

			mockAdmin.AssertExpectations(t)
			mockSession.AssertExpectations(t)
		})
	}
}

func TestAdminService_ValidateSession_CacheHit(t *testing.T) {
	sessionID := uuid.New()
	adminID := uuid.New()
	token := auth.NewAdminToken()
	expiresAt := time.Now().Add(time.Hour)

	mockAdmin := new(MockAdminRepository)
	mockAdmin.On("FindByID", mock.Anything, adminID).Return(&model.AdminUser{ID: adminID, Active: true}, nil)

	mockCache := new(MockSessionCache)
	mockCache.On("Get", mock.Anything, token).Return(&model.AdminSession{
		ID:        sessionID,
		AdminID:   adminID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, true)

	// The session repository must not be touched on a cache hit.
	mockSession := new(MockSessionRepository)

	svc := NewAdminService(mockAdmin, mockSession, new(MockActivityRepository), mockCache)
	session, admin, err := svc.ValidateSession(context.Background(), token)

	assert.NoError(t, err)
	assert.Equal(t, adminID, admin.ID)
	assert.Equal(t, sessionID, session.ID)
	assert.Equal(t, token, session.Token)
	assert.Equal(t, expiresAt, session.ExpiresAt)

	mockAdmin.AssertExpectations(t)
	mockSession.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestAdminService_InvalidateSession(t *testing.T) {
	token := auth.NewAdminToken()

	tests := []struct {
		name    string
		deleted bool
	}{
		{name: "active session removed", deleted: true},
		{name: "second logout is a no-op", deleted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSession := new(MockSessionRepository)
			mockSession.On("DeleteByToken", mock.Anything, token).Return(tt.deleted, nil)

			svc := NewAdminService(new(MockAdminRepository), mockSession, new(MockActivityRepository), missCache())
			deleted, err := svc.InvalidateSession(context.Background(), token)

			assert.NoError(t, err)
			assert.Equal(t, tt.deleted, deleted)
			mockSession.AssertExpectations(t)
		})
	}
}

func TestAdminService_LogActivity_SwallowsErrors(t *testing.T) {
	mockActivity := new(MockActivityRepository)
	mockActivity.On("Create", mock.Anything, mock.AnythingOfType("*model.AdminActivity")).Return(assert.AnError)

	svc := NewAdminService(new(MockAdminRepository), new(MockSessionRepository), mockActivity, missCache())

	// Must not panic or surface the failure.
	svc.LogActivity(context.Background(), ActivityEntry{
		AdminID:  uuid.New(),
		Action:   "update",
		Resource: "case",
	})

	mockActivity.AssertExpectations(t)
}
