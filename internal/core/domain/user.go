package domain

import "time"

// Role is a named permission tag.
type Role string

const (
	RoleAdministration Role = "ADMINISTRATION"
	RoleDiscussion     Role = "DISCUSSION"
	RoleModeration     Role = "MODERATION"
)

// Roles lists every role known to the system, in a stable order.
var Roles = []Role{RoleAdministration, RoleDiscussion, RoleModeration}

// ParseRole returns the role named s, or false when s is not a known role.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// User models an account held by the authentication service.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Caller identifies who is invoking a backend operation. A caller with an
// empty Token authenticated with an API key only and is a trusted service.
type Caller struct {
	Username string
	Token    string
}

func (c Caller) IsService() bool {
	return c.Token == ""
}
