package domain

import "time"

// Session is the ephemeral state of one user's in-progress paged search.
// It is owned by a SessionStore and keyed by OwnerID.
type Session struct {
	OwnerID     int64              `json:"owner_id"`
	Query       string             `json:"query"`
	CurrentPage int                `json:"current_page"`
	LastResults []SearchResultItem `json:"last_results"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Clone returns a copy that shares no mutable memory with s.
func (s *Session) Clone() *Session {
	c := *s
	c.LastResults = append([]SearchResultItem(nil), s.LastResults...)
	return &c
}
