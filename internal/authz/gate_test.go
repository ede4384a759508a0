package authz

import (
	"testing"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
)

func identityWithRole(r domain.Role) *domain.Identity {
	return &domain.Identity{ID: "id-1", Email: "a@example.com", Role: r}
}

func TestDecide_Pending(t *testing.T) {
	t.Parallel()

	if got := Decide(nil, true, nil); got != Pending {
		t.Fatalf("Decide(resolving)=%v, want Pending", got)
	}
	// Pending wins even when an identity is already present.
	if got := Decide(identityWithRole(domain.RoleAdmin), true, nil); got != Pending {
		t.Fatalf("Decide(resolving, admin)=%v, want Pending", got)
	}
}

func TestDecide_NoIdentityRequiresLogin(t *testing.T) {
	t.Parallel()

	if got := Decide(nil, false, nil); got != RequireLogin {
		t.Fatalf("Decide(nil)=%v, want RequireLogin", got)
	}
	if got := Decide(nil, false, []domain.Role{domain.RoleAdmin}); got != RequireLogin {
		t.Fatalf("Decide(nil, {admin})=%v, want RequireLogin", got)
	}
}

func TestDecide_AdminAlwaysAllowed(t *testing.T) {
	t.Parallel()

	requirements := [][]domain.Role{
		nil,
		{domain.RoleUser},
		{domain.RoleOrganizer},
		{domain.RoleAdmin},
		{domain.RoleOrganizer, domain.RoleAdmin},
	}
	for _, req := range requirements {
		if got := Decide(identityWithRole(domain.RoleAdmin), false, req); got != Allow {
			t.Fatalf("Decide(admin, %v)=%v, want Allow", req, got)
		}
	}
}

func TestDecide_Hierarchy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		role     domain.Role
		required []domain.Role
		want     Decision
	}{
		{"organizer meets organizer", domain.RoleOrganizer, []domain.Role{domain.RoleOrganizer}, Allow},
		{"organizer covers user", domain.RoleOrganizer, []domain.Role{domain.RoleUser}, Allow},
		{"organizer covers user+organizer", domain.RoleOrganizer, []domain.Role{domain.RoleUser, domain.RoleOrganizer}, Allow},
		{"organizer cannot meet admin", domain.RoleOrganizer, []domain.Role{domain.RoleAdmin}, Forbid},
		{"user meets user", domain.RoleUser, []domain.Role{domain.RoleUser}, Allow},
		{"user cannot meet organizer", domain.RoleUser, []domain.Role{domain.RoleOrganizer}, Forbid},
		{"user cannot meet admin", domain.RoleUser, []domain.Role{domain.RoleAdmin}, Forbid},
		{"empty requirement allows any role", domain.RoleUser, nil, Allow},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Decide(identityWithRole(tc.role), false, tc.required); got != tc.want {
				t.Fatalf("Decide(%s, %v)=%v, want %v", tc.role, tc.required, got, tc.want)
			}
		})
	}
}

func TestParseRole_CaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"Admin", "ADMIN", " admin "} {
		r, err := domain.ParseRole(in)
		if err != nil || r != domain.RoleAdmin {
			t.Fatalf("ParseRole(%q)=%v,%v", in, r, err)
		}
	}
	if _, err := domain.ParseRole("superuser"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}
