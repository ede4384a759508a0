package itest

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

type activityDoc struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Type            string   `json:"type"`
	CategoryID      string   `json:"categoryId"`
	Price           float64  `json:"price"`
	Currency        string   `json:"currency"`
	OrganizerID     string   `json:"organizerId"`
	MaxParticipants *int     `json:"maxParticipants"`
	Tags            []string `json:"tags"`
	ImageURL        *string  `json:"imageUrl"`
	IsDeleted       bool     `json:"isDeleted"`
}

type listDoc struct {
	Items []activityDoc `json:"items"`
	Meta  struct {
		Page       int   `json:"page"`
		Total      int   `json:"total"`
		TotalPages int   `json:"totalPages"`
		Pages      []int `json:"pages"`
	} `json:"meta"`
}

func createActivity(t *testing.T, srv *testServer, token, title string) activityDoc {
	t.Helper()
	status, body := srv.doJSON(http.MethodPost, "/v1/activities", token, map[string]any{
		"title":        title,
		"description":  title + " description",
		"type":         "activity",
		"categoryId":   "sports",
		"location":     "Oakland",
		"price":        12.5,
		"currency":     "usd",
		"contactEmail": "host@example.com",
		"tags":         []string{"free", "outdoor"},
	})
	if status != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", status, string(body))
	}
	return mustUnmarshal[activityDoc](t, body)
}

func TestDirectoryLifecycle(t *testing.T) {
	for _, backend := range backendsFromEnv(t) {
		backend := backend
		t.Run(backend, func(t *testing.T) {
			srv := newTestServer(t, backend)

			organizer := srv.signUp(uniqueEmail("organizer"), "organizer")
			viewer := srv.signUp(uniqueEmail("viewer"), "user")

			a := createActivity(t, srv, organizer.Token, "Morning Yoga")
			createActivity(t, srv, organizer.Token, "Chess Night")
			if a.Currency != "USD" {
				t.Fatalf("currency not normalized: %+v", a)
			}

			// Public discovery works without a token.
			status, body := srv.doJSON(http.MethodGet, "/v1/activities?search=yoga", "", nil)
			list := mustUnmarshal[listDoc](t, body)
			if status != http.StatusOK || list.Meta.Total != 1 || list.Items[0].Title != "Morning Yoga" {
				t.Fatalf("search status=%d list=%+v", status, list)
			}

			// A plain user can read but not write.
			status, body = srv.doJSON(http.MethodPatch, "/v1/activities/"+a.ID, viewer.Token,
				json.RawMessage(`{"price": 1}`))
			requireErrorCode(t, status, body, http.StatusForbidden, "PERMISSION_DENIED")

			// Tri-state patch: set price, clear maxParticipants.
			status, body = srv.doJSON(http.MethodPatch, "/v1/activities/"+a.ID, organizer.Token,
				json.RawMessage(`{"price": 20, "maxParticipants": null}`))
			patched := mustUnmarshal[activityDoc](t, body)
			if status != http.StatusOK || patched.Price != 20 || patched.MaxParticipants != nil {
				t.Fatalf("patch status=%d patched=%+v", status, patched)
			}

			// Image upload round-trip.
			status, body = srv.doRaw(http.MethodPost, "/v1/activities/"+a.ID+"/image",
				organizer.Token, "image/png", strings.NewReader("png-bytes"))
			withImage := mustUnmarshal[activityDoc](t, body)
			if status != http.StatusOK || withImage.ImageURL == nil {
				t.Fatalf("upload status=%d body=%s", status, string(body))
			}

			// Soft delete hides the record from listings but keeps it readable.
			status, _ = srv.doJSON(http.MethodDelete, "/v1/activities/"+a.ID, organizer.Token, nil)
			if status != http.StatusNoContent {
				t.Fatalf("delete status=%d", status)
			}
			status, body = srv.doJSON(http.MethodGet, "/v1/activities", "", nil)
			list = mustUnmarshal[listDoc](t, body)
			if status != http.StatusOK || list.Meta.Total != 1 {
				t.Fatalf("after delete status=%d meta=%+v", status, list.Meta)
			}
			status, body = srv.doJSON(http.MethodGet, "/v1/activities/"+a.ID, "", nil)
			got := mustUnmarshal[activityDoc](t, body)
			if status != http.StatusOK || !got.IsDeleted {
				t.Fatalf("get deleted status=%d body=%s", status, string(body))
			}

			// Owner dashboard counts the deleted record in the total.
			status, body = srv.doJSON(http.MethodGet, "/v1/activities/mine/stats", organizer.Token, nil)
			stats := mustUnmarshal[struct {
				Total  int `json:"total"`
				Active int `json:"active"`
			}](t, body)
			if status != http.StatusOK || stats.Total != 2 || stats.Active != 1 {
				t.Fatalf("stats status=%d stats=%+v", status, stats)
			}
		})
	}
}

func TestAccountLifecycle(t *testing.T) {
	for _, backend := range backendsFromEnv(t) {
		backend := backend
		t.Run(backend, func(t *testing.T) {
			srv := newTestServer(t, backend)
			email := uniqueEmail("account")
			creds := srv.signUp(email, "user")

			// Profile edit with a tri-state clear.
			status, body := srv.doJSON(http.MethodPatch, "/v1/me", creds.Token,
				json.RawMessage(`{"phone": "555-0100"}`))
			if status != http.StatusOK {
				t.Fatalf("patch status=%d body=%s", status, string(body))
			}
			status, body = srv.doJSON(http.MethodPatch, "/v1/me", creds.Token,
				json.RawMessage(`{"phone": null}`))
			me := mustUnmarshal[struct {
				Phone *string `json:"phone"`
			}](t, body)
			if status != http.StatusOK || me.Phone != nil {
				t.Fatalf("clear phone status=%d body=%s", status, string(body))
			}

			// Password change invalidates the old password.
			status, _ = srv.doJSON(http.MethodPut, "/v1/me/password", creds.Token, map[string]any{
				"currentPassword": "sturdy pass 1",
				"newPassword":     "fresh pass 2",
			})
			if status != http.StatusNoContent {
				t.Fatalf("change password status=%d", status)
			}
			status, body = srv.doJSON(http.MethodPost, "/v1/auth/login", "", map[string]any{
				"email":    email,
				"password": "sturdy pass 1",
			})
			requireErrorCode(t, status, body, http.StatusUnauthorized, "INVALID_CREDENTIALS")

			// Logout kills the session behind the bearer token.
			status, body = srv.doJSON(http.MethodPost, "/v1/auth/login", "", map[string]any{
				"email":    email,
				"password": "fresh pass 2",
			})
			fresh := mustUnmarshal[credentials](t, body)
			if status != http.StatusOK {
				t.Fatalf("login status=%d", status)
			}
			status, _ = srv.doJSON(http.MethodPost, "/v1/auth/logout", fresh.Token, nil)
			if status != http.StatusNoContent {
				t.Fatalf("logout status=%d", status)
			}
			status, body = srv.doJSON(http.MethodGet, "/v1/me", fresh.Token, nil)
			requireErrorCode(t, status, body, http.StatusUnauthorized, "UNAUTHORIZED")
		})
	}
}
