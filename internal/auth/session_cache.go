package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"bikefine/internal/cache"
	"bikefine/internal/model"
)

const sessionKeyPrefix = "admin_session:"

// SessionCacheInterface defines the read-through cache for admin sessions.
// The database row stays the source of truth; the cache is a fail-safe hint.
type SessionCacheInterface interface {
	Put(ctx context.Context, session *model.AdminSession) error
	Get(ctx context.Context, token string) (*model.AdminSession, bool)
	Delete(ctx context.Context, token string) error
}

// SessionCache stores admin session hints in Redis.
type SessionCache struct {
	cache *cache.Client
}

// Ensure SessionCache implements SessionCacheInterface
var _ SessionCacheInterface = (*SessionCache)(nil)

// NewSessionCache creates a new session cache.
func NewSessionCache(cache *cache.Client) *SessionCache {
	return &SessionCache{cache: cache}
}

type sessionEntry struct {
	SessionID string    `json:"session_id"`
	AdminID   string    `json:"admin_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Put stores a session hint with a TTL matching the session expiry.
func (s *SessionCache) Put(ctx context.Context, session *model.AdminSession) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(sessionEntry{
		SessionID: session.ID.String(),
		AdminID:   session.AdminID.String(),
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, sessionKeyPrefix+session.Token, payload, ttl)
}

// Get returns a cached session hint. A miss or a stale entry returns ok=false
// and the caller falls through to the database.
func (s *SessionCache) Get(ctx context.Context, token string) (*model.AdminSession, bool) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil || data == nil {
		return nil, false
	}
	var entry sessionEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	sessionID, err := uuid.Parse(entry.SessionID)
	if err != nil {
		return nil, false
	}
	adminID, err := uuid.Parse(entry.AdminID)
	if err != nil {
		return nil, false
	}
	if !entry.ExpiresAt.After(time.Now()) {
		return nil, false
	}
	return &model.AdminSession{
		ID:        sessionID,
		AdminID:   adminID,
		Token:     token,
		ExpiresAt: entry.ExpiresAt,
	}, true
}

// Delete removes a session hint.
func (s *SessionCache) Delete(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+token)
}
