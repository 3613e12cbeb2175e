package auth

import (
	"sync"
	"time"
)

// RevocationList tracks signed-out token JTIs in memory. Entries carry
// the token's natural expiry; once a token would have expired anyway
// its entry is pruned, so the list stays bounded by the number of live
// revoked tokens. Safe for concurrent use.
type RevocationList struct {
	mu      sync.RWMutex
	entries map[string]time.Time // JTI -> token expiry
}

// NewRevocationList returns an empty list.
func NewRevocationList() *RevocationList {
	return &RevocationList{entries: make(map[string]time.Time)}
}

// Revoke marks a token JTI as revoked until expiresAt.
func (l *RevocationList) Revoke(jti string, expiresAt time.Time) {
	if jti == "" {
		return
	}
	l.mu.Lock()
	l.entries[jti] = expiresAt
	l.mu.Unlock()
}

// IsRevoked reports whether the JTI is on the list and the underlying
// token has not yet expired on its own.
func (l *RevocationList) IsRevoked(jti string) bool {
	l.mu.RLock()
	exp, ok := l.entries[jti]
	l.mu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		l.mu.Lock()
		delete(l.entries, jti)
		l.mu.Unlock()
		return false
	}
	return true
}

// Prune drops entries whose tokens have expired and returns how many
// were removed.
func (l *RevocationList) Prune() int {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for jti, exp := range l.entries {
		if now.After(exp) {
			delete(l.entries, jti)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked revocations.
func (l *RevocationList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
