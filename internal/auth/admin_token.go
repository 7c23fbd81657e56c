package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// SessionExpiry is the duration for which admin sessions are valid.
const SessionExpiry = 8 * time.Hour

const adminTokenPrefix = "admin_token_"

// NewAdminToken generates an opaque bearer token for an admin session.
// The shape is admin_token_<unix-millis>_<random-hex>, matching what admin
// clients already expect.
func NewAdminToken() string {
	buf := make([]byte, 12)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%s%d_%s", adminTokenPrefix, time.Now().UnixMilli(), hex.EncodeToString(buf))
}

// IsAdminToken reports whether a string is shaped like an admin session token.
// It is a cheap pre-filter only; validity is always decided by the session
// store.
func IsAdminToken(token string) bool {
	return strings.HasPrefix(token, adminTokenPrefix)
}
