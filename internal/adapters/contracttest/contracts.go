// Package contracttest holds behavioral suites shared by every adapter that
// implements a repository port. Memory and postgres adapters run the same
// suites through factory functions.
package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	activityrepoport "github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/activityrepo"
	identityrepoport "github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/identityrepo"
	sessionrepoport "github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/sessionrepo"
)

type CleanupFunc = func()

type IdentityRepoFactory func(t *testing.T) (identityrepoport.Repository, CleanupFunc)
type ActivityRepoFactory func(t *testing.T) (activityrepoport.Repository, CleanupFunc)
type SessionRepoFactory func(t *testing.T) (sessionrepoport.Repository, CleanupFunc)

func RunIdentityRepo(t *testing.T, newRepo IdentityRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	aID := domain.IdentityID(uuid.NewString())
	if err := repo.Create(ctx, identityrepoport.Identity{
		ID:           aID,
		Email:        "Alice@Example.com",
		Role:         domain.RoleOrganizer,
		DisplayName:  "Alice Johnson",
		PasswordHash: "hash-a",
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if _, err := repo.GetByID(ctx, aID); err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	// Email lookup is case-insensitive.
	got, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail folded: %v", err)
	}
	if got.ID != aID || got.Email != "Alice@Example.com" {
		t.Fatalf("unexpected identity: %+v", got)
	}

	// Email uniqueness is case-insensitive too.
	err = repo.Create(ctx, identityrepoport.Identity{
		ID:           domain.IdentityID(uuid.NewString()),
		Email:        "ALICE@example.com",
		Role:         domain.RoleUser,
		DisplayName:  "Alice 2",
		PasswordHash: "hash-b",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if !errors.Is(err, identityrepoport.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// Updates persist and unknown IDs report not found.
	got.DisplayName = "Alice J."
	got.UpdatedAt = now.Add(time.Minute)
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, err := repo.GetByID(ctx, aID)
	if err != nil || again.DisplayName != "Alice J." {
		t.Fatalf("update not persisted: %+v err=%v", again, err)
	}
	if err := repo.Update(ctx, identityrepoport.Identity{ID: domain.IdentityID(uuid.NewString()), Email: "x@example.com"}); !errors.Is(err, identityrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, identityrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on lookup, got %v", err)
	}
}

func RunActivityRepo(t *testing.T, newRepo ActivityRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	base := time.Unix(5000, 0).UTC()
	owner := domain.IdentityID(uuid.NewString())
	other := domain.IdentityID(uuid.NewString())

	mk := func(title string, createdAt time.Time, organizer domain.IdentityID, deleted bool) domain.Activity {
		return domain.Activity{
			ID:           domain.ActivityID(uuid.NewString()),
			Title:        title,
			Description:  title + " description",
			Type:         domain.TypeActivity,
			CategoryID:   "sports",
			Location:     "Oakland",
			Currency:     "USD",
			OrganizerID:  organizer,
			ContactEmail: "contact@example.com",
			IsDeleted:    deleted,
			CreatedAt:    createdAt,
			UpdatedAt:    createdAt,
		}
	}

	oldest := mk("Morning Yoga", base, owner, false)
	middle := mk("Chess Club", base.Add(time.Hour), other, false)
	newest := mk("Trail Run", base.Add(2*time.Hour), owner, false)
	deleted := mk("Gone Fishing", base.Add(3*time.Hour), owner, true)
	for _, a := range []domain.Activity{oldest, middle, newest, deleted} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create %q: %v", a.Title, err)
		}
	}

	// Listing hides soft-deleted records and orders by CreatedAt descending.
	items, total, err := repo.List(ctx, activityrepoport.Filters{}, 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Fatalf("total=%d len=%d, want 3/3", total, len(items))
	}
	if items[0].ID != newest.ID || items[2].ID != oldest.ID {
		t.Fatalf("unexpected order: %v %v %v", items[0].Title, items[1].Title, items[2].Title)
	}

	// GetByID still returns soft-deleted records.
	if got, err := repo.GetByID(ctx, deleted.ID); err != nil || !got.IsDeleted {
		t.Fatalf("GetByID deleted: %+v err=%v", got, err)
	}

	// Search matches title or description, case-insensitively.
	items, total, err = repo.List(ctx, activityrepoport.Filters{Search: "yoga"}, 1, 10)
	if err != nil || total != 1 || items[0].ID != oldest.ID {
		t.Fatalf("search: total=%d err=%v", total, err)
	}

	// Owner filter plus IncludeDeleted.
	all, err := repo.ListAll(ctx, activityrepoport.Filters{OrganizerID: owner, IncludeDeleted: true})
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("owner records=%d, want 3", len(all))
	}

	if n, err := repo.CountByOrganizer(ctx, owner); err != nil || n != 3 {
		t.Fatalf("CountByOrganizer: n=%d err=%v", n, err)
	}
	if n, err := repo.CountByOrganizer(ctx, domain.IdentityID(uuid.NewString())); err != nil || n != 0 {
		t.Fatalf("CountByOrganizer empty: n=%d err=%v", n, err)
	}

	// Paging: second page of size 2 holds the single remaining record.
	items, total, err = repo.List(ctx, activityrepoport.Filters{}, 2, 2)
	if err != nil || total != 3 || len(items) != 1 || items[0].ID != oldest.ID {
		t.Fatalf("page 2: total=%d len=%d err=%v", total, len(items), err)
	}

	// Update persists; unknown IDs report not found.
	newest.Title = "Trail Run (updated)"
	if err := repo.Update(ctx, newest); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got, err := repo.GetByID(ctx, newest.ID); err != nil || got.Title != "Trail Run (updated)" {
		t.Fatalf("update not persisted: %+v err=%v", got, err)
	}
	if err := repo.Update(ctx, mk("Ghost", base, owner, false)); !errors.Is(err, activityrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

// RunSessionRepo exercises session persistence. Sessions reference
// identities, so the suite seeds one through the identity factory first.
func RunSessionRepo(t *testing.T, newIdentityRepo IdentityRepoFactory, newRepo SessionRepoFactory) {
	t.Helper()
	ctx := context.Background()

	identities, iCleanup := newIdentityRepo(t)
	if iCleanup != nil {
		t.Cleanup(iCleanup)
	}
	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(9000, 0).UTC()
	ownerID := domain.IdentityID(uuid.NewString())
	if err := identities.Create(ctx, identityrepoport.Identity{
		ID:           ownerID,
		Email:        "session-owner@example.com",
		Role:         domain.RoleUser,
		DisplayName:  "Session Owner",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		t.Fatalf("seed identity: %v", err)
	}

	id := domain.SessionID(uuid.NewString())
	if err := repo.Create(ctx, sessionrepoport.Session{
		ID:         id,
		IdentityID: ownerID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(24 * time.Hour),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	s, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.RevokedAt != nil {
		t.Fatalf("new session already revoked: %+v", s)
	}

	revokedAt := now.Add(time.Hour)
	if err := repo.Revoke(ctx, id, revokedAt); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	s, err = repo.Get(ctx, id)
	if err != nil || s.RevokedAt == nil || !s.RevokedAt.Equal(revokedAt) {
		t.Fatalf("revocation not persisted: %+v err=%v", s, err)
	}

	// Revoking again keeps the original instant.
	if err := repo.Revoke(ctx, id, revokedAt.Add(time.Hour)); err != nil {
		t.Fatalf("Revoke again: %v", err)
	}
	s, _ = repo.Get(ctx, id)
	if !s.RevokedAt.Equal(revokedAt) {
		t.Fatalf("revocation instant moved: %v", s.RevokedAt)
	}

	if _, err := repo.Get(ctx, domain.SessionID(uuid.NewString())); !errors.Is(err, sessionrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
