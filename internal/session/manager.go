package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/employwise/console/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const cookieName = "ew_session"

// Claims is the signed payload of the session cookie. The remote API
// token stays opaque; the console only wraps it for integrity.
type Claims struct {
	APIToken string `json:"api_token"`
	jwt.RegisteredClaims
}

// CookieConfig holds cookie attributes shared by issue and clear
type CookieConfig struct {
	Domain   string // Empty string = current host only
	Secure   bool   // HTTPS only
	SameSite string // "strict", "lax", or "none"
}

// Manager issues, reads and clears the console's session cookie. It is
// the only component that touches browser-persisted session state; views
// receive it as a narrow dependency instead of reaching for storage
// themselves.
type Manager struct {
	secret      string
	ttl         time.Duration
	rememberTTL time.Duration
	cookie      CookieConfig
}

// NewManager creates a session Manager
func NewManager(secret string, ttl, rememberTTL time.Duration, cookie CookieConfig) *Manager {
	return &Manager{
		secret:      secret,
		ttl:         ttl,
		rememberTTL: rememberTTL,
		cookie:      cookie,
	}
}

// Issue signs a new session wrapping the remote API token and sets it as
// an httpOnly cookie. With remember set the cookie persists for the
// remember window; otherwise it lives until the browser session ends.
func (m *Manager) Issue(w http.ResponseWriter, apiToken string, remember bool) error {
	expiry := m.ttl
	if remember {
		expiry = m.rememberTTL
	}

	now := time.Now()
	claims := &Claims{
		APIToken: apiToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	cookie := &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		Domain:   m.cookie.Domain,
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: parseSameSite(m.cookie.SameSite),
	}
	if remember {
		cookie.Expires = now.Add(expiry)
		cookie.MaxAge = int(expiry.Seconds())
	}
	http.SetCookie(w, cookie)
	return nil
}

// Token returns the wrapped remote API token, or ErrNoSession when the
// cookie is absent, invalid or expired
func (m *Manager) Token(r *http.Request) (string, error) {
	claims, err := m.claims(r)
	if err != nil {
		return "", err
	}
	return claims.APIToken, nil
}

// Clear removes the session cookie
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		Domain:   m.cookie.Domain,
		MaxAge:   -1, // Negative MaxAge deletes the cookie
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: parseSameSite(m.cookie.SameSite),
	})
}

func (m *Manager) claims(r *http.Request) (*Claims, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil, models.ErrNoSession
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrNoSession
	}
	return claims, nil
}

// parseSameSite converts string to http.SameSite constant
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteDefaultMode
	}
}
