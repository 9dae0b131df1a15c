package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// csrfTokenEntry stores token metadata
type csrfTokenEntry struct {
	sessionID string
	expiry    time.Time
}

// CSRFTokenManager issues and validates the per-form CSRF tokens embedded
// in the console's HTML forms. Tokens are bound to the session that
// rendered the form.
type CSRFTokenManager struct {
	validTokens map[string]*csrfTokenEntry
	mu          sync.RWMutex
	tokenTTL    time.Duration
}

// NewCSRFTokenManager creates a new CSRF token manager
func NewCSRFTokenManager() *CSRFTokenManager {
	manager := &CSRFTokenManager{
		validTokens: make(map[string]*csrfTokenEntry),
		tokenTTL:    15 * time.Minute,
	}

	// Remove expired tokens in the background
	go manager.cleanupExpiredTokens()

	return manager
}

// GenerateToken creates a new CSRF token bound to the given session
func (m *CSRFTokenManager) GenerateToken(sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	randomBytes := make([]byte, 32)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}

	token := hex.EncodeToString(randomBytes)
	m.validTokens[token] = &csrfTokenEntry{
		sessionID: sessionID,
		expiry:    time.Now().Add(m.tokenTTL),
	}

	return token, nil
}

// ValidateToken checks that a CSRF token exists, has not expired, and was
// issued to the given session
func (m *CSRFTokenManager) ValidateToken(token, sessionID string) bool {
	m.mu.RLock()
	entry, exists := m.validTokens[token]
	m.mu.RUnlock()

	if !exists {
		return false
	}

	if entry.sessionID != sessionID {
		return false
	}

	if time.Now().After(entry.expiry) {
		m.mu.Lock()
		delete(m.validTokens, token)
		m.mu.Unlock()
		return false
	}

	return true
}

// cleanupExpiredTokens periodically removes expired tokens
func (m *CSRFTokenManager) cleanupExpiredTokens() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()
		for token, entry := range m.validTokens {
			if now.After(entry.expiry) {
				delete(m.validTokens, token)
			}
		}
		m.mu.Unlock()
	}
}
