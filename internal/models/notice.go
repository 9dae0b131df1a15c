package models

import "time"

// NoticeKind distinguishes success and error notices
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Display durations for transient notices. Login and logout confirmations
// hand off to a navigation after the shorter delay; everything else
// auto-clears after the longer one.
const (
	NoticeTTL         = 3 * time.Second
	NoticeRedirectTTL = 2 * time.Second
)

// Notice is a short-lived UI message. At most one is visible at a time;
// setting a new notice replaces the previous one along with its pending
// auto-clear, so a stale clear can never hide a newer message.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// NewNotice creates a notice expiring ttl from now
func NewNotice(kind NoticeKind, message string, ttl time.Duration) Notice {
	return Notice{
		Kind:      kind,
		Message:   message,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// Expired reports whether the notice should no longer be shown
func (n Notice) Expired(now time.Time) bool {
	return now.After(n.ExpiresAt)
}

// TTLMillis returns the remaining display time in milliseconds, floored at zero
func (n Notice) TTLMillis(now time.Time) int64 {
	remaining := n.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining.Milliseconds()
}
