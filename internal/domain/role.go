package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of actor roles. The hierarchy is
// admin ⊇ organizer ⊇ user: an admin can do anything an organizer can,
// and an organizer anything a user can.
type Role string

const (
	RoleUser      Role = "user"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// ParseRole maps an external role string onto the closed enum.
// Comparison is case-insensitive; unknown values are rejected.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "organizer":
		return RoleOrganizer, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// rank encodes the role hierarchy as a total order.
func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleOrganizer:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

// Covers reports whether r satisfies a requirement for other,
// i.e. r is at least as privileged as other.
func (r Role) Covers(other Role) bool {
	return r.rank() >= other.rank() && r.rank() > 0
}

// IsValid reports whether r is one of the closed enum values.
func (r Role) IsValid() bool { return r.rank() > 0 }
