package identityrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/identityrepo"
)

func TestRepo_Update_EmailIndexFollows(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	ctx := context.Background()
	now := time.Unix(100, 0).UTC()

	rec := identityrepo.Identity{ID: "i1", Email: "old@example.com", Role: domain.RoleUser, DisplayName: "Old", CreatedAt: now, UpdatedAt: now}
	if err := r.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec.Email = "new@example.com"
	if err := r.Update(ctx, rec); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, err := r.GetByEmail(ctx, "old@example.com"); !errors.Is(err, identityrepo.ErrNotFound) {
		t.Fatalf("old email still resolves: %v", err)
	}
	got, err := r.GetByEmail(ctx, "NEW@example.com")
	if err != nil || got.ID != "i1" {
		t.Fatalf("new email lookup: %+v err=%v", got, err)
	}
}

func TestRepo_Update_RejectsTakenEmail(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	ctx := context.Background()
	now := time.Unix(100, 0).UTC()

	a := identityrepo.Identity{ID: "i1", Email: "a@example.com", Role: domain.RoleUser, DisplayName: "A", CreatedAt: now, UpdatedAt: now}
	b := identityrepo.Identity{ID: "i2", Email: "b@example.com", Role: domain.RoleUser, DisplayName: "B", CreatedAt: now, UpdatedAt: now}
	if err := r.Create(ctx, a); err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if err := r.Create(ctx, b); err != nil {
		t.Fatalf("Create b: %v", err)
	}

	b.Email = "A@example.com"
	if err := r.Update(ctx, b); !errors.Is(err, identityrepo.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}
