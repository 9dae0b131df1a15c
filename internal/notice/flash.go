// Package notice carries transient notices across the POST/redirect/GET
// boundary as a short-lived flash cookie. Setting a notice always
// replaces the previous one, so a pending auto-clear from an older
// notice can never hide a newer message.
package notice

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/employwise/console/internal/models"
)

const cookieName = "ew_notice"

// Set stores the notice as the flash cookie, replacing any pending one
func Set(w http.ResponseWriter, n models.Notice) {
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}

	maxAge := int(time.Until(n.ExpiresAt).Seconds()) + 1
	if maxAge < 1 {
		maxAge = 1
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending notice, clearing it so it shows at most once.
// Expired or unreadable notices are dropped silently.
func Pop(w http.ResponseWriter, r *http.Request) (models.Notice, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return models.Notice{}, false
	}

	clearCookie(w)

	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return models.Notice{}, false
	}

	var n models.Notice
	if err := json.Unmarshal(payload, &n); err != nil {
		return models.Notice{}, false
	}
	if n.Expired(time.Now()) {
		return models.Notice{}, false
	}
	return n, true
}

func clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
