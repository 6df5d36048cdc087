package domain

import "time"

// Session is the frontend's server-side record of a logged-in user.
type Session struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Roles     []string  `json:"roles"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// HasRole is a set-membership test on the session's role set.
func (s *Session) HasRole(role Role) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Roles {
		if r == string(role) {
			return true
		}
	}
	return false
}
