// Package authz decides whether an identity may access a role-guarded
// resource. The decision is a pure function of its inputs; HTTP mapping
// (401/403) lives in the transport layer.
package authz

import "github.com/hobbyhub-app/hobby-directory-api/internal/domain"

// Decision is the outcome of an access check.
type Decision int

const (
	// Pending means the identity is still being resolved; no decision yet.
	Pending Decision = iota
	// Allow grants access.
	Allow
	// RequireLogin means no identity is present.
	RequireLogin
	// Forbid means the identity is present but not privileged enough.
	Forbid
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Allow:
		return "allow"
	case RequireLogin:
		return "require-login"
	case Forbid:
		return "forbid"
	}
	return "unknown"
}

// Decide evaluates whether identity may access a resource guarded by the
// required roles.
//
// Rules, in order:
//   - while the identity is still resolving, the decision is Pending
//   - absent identity -> RequireLogin
//   - empty requirement -> Allow (authentication alone suffices)
//   - admin satisfies any requirement
//   - organizer satisfies any requirement composed solely of roles it
//     covers in the hierarchy (organizer, user)
//   - otherwise the identity's role must appear in the requirement
func Decide(identity *domain.Identity, resolving bool, required []domain.Role) Decision {
	if resolving {
		return Pending
	}
	if identity == nil {
		return RequireLogin
	}
	if len(required) == 0 {
		return Allow
	}
	if identity.Role == domain.RoleAdmin {
		return Allow
	}
	if identity.Role == domain.RoleOrganizer && coveredByOrganizer(required) {
		return Allow
	}
	for _, r := range required {
		if identity.Role == r {
			return Allow
		}
	}
	return Forbid
}

func coveredByOrganizer(required []domain.Role) bool {
	for _, r := range required {
		if !domain.RoleOrganizer.Covers(r) {
			return false
		}
	}
	return true
}
