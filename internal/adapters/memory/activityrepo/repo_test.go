package activityrepo

import (
	"context"
	"testing"
	"time"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/activityrepo"
)

func seed(t *testing.T, r *Repo, a domain.Activity) {
	t.Helper()
	if err := r.Create(context.Background(), a); err != nil {
		t.Fatalf("Create %q: %v", a.ID, err)
	}
}

func TestRepo_List_PriceAndLocationFilters(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	now := time.Unix(100, 0).UTC()
	seed(t, r, domain.Activity{ID: "a1", Title: "Pottery", Location: "Berkeley Studio", Price: 30, CreatedAt: now, UpdatedAt: now})
	seed(t, r, domain.Activity{ID: "a2", Title: "Free Run", Location: "Oakland Hills", Price: 0, CreatedAt: now.Add(time.Second), UpdatedAt: now})
	seed(t, r, domain.Activity{ID: "a3", Title: "Gala", Location: "San Francisco", Price: 120, CreatedAt: now.Add(2 * time.Second), UpdatedAt: now})

	min, max := 10.0, 100.0
	got, total, err := r.List(context.Background(), activityrepo.Filters{MinPrice: &min, MaxPrice: &max}, 1, 10)
	if err != nil || total != 1 || got[0].ID != "a1" {
		t.Fatalf("price filter: total=%d err=%v", total, err)
	}

	got, total, err = r.List(context.Background(), activityrepo.Filters{Location: "oakland"}, 1, 10)
	if err != nil || total != 1 || got[0].ID != "a2" {
		t.Fatalf("location filter: total=%d err=%v", total, err)
	}
}

func TestRepo_List_PageBeyondEnd(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	now := time.Unix(100, 0).UTC()
	seed(t, r, domain.Activity{ID: "a1", Title: "Only One", CreatedAt: now, UpdatedAt: now})

	got, total, err := r.List(context.Background(), activityrepo.Filters{}, 5, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(got) != 0 {
		t.Fatalf("total=%d len=%d, want 1/0", total, len(got))
	}
}

func TestRepo_GetByID_ReturnsCopy(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	now := time.Unix(100, 0).UTC()
	phone := "555-0100"
	seed(t, r, domain.Activity{ID: "a1", Title: "Original", ContactPhone: &phone, Tags: []domain.TagID{"free"}, CreatedAt: now, UpdatedAt: now})

	got, err := r.GetByID(context.Background(), "a1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	got.Title = "Mutated"
	*got.ContactPhone = "555-9999"
	got.Tags[0] = "changed"

	again, _ := r.GetByID(context.Background(), "a1")
	if again.Title != "Original" || *again.ContactPhone != "555-0100" || again.Tags[0] != "free" {
		t.Fatalf("stored record was mutated: %+v", again)
	}
}
