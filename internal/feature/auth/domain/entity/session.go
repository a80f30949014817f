package entity

import "time"

// Session references a user by id. It carries no copy of the user record;
// the user is re-read and re-checked whenever the session is used.
type Session struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	UserAgent       string    `json:"userAgent,omitempty"`
	IPAddress       string    `json:"ipAddress,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	LastValidatedAt time.Time `json:"lastValidatedAt"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// IsExpired returns true if the session has passed its expiration time.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// StaleAfter reports whether the last validation stamp is older than
// interval. A non-positive interval makes every session stale.
func (s *Session) StaleAfter(interval time.Duration, now time.Time) bool {
	return interval <= 0 || now.Sub(s.LastValidatedAt) >= interval
}
