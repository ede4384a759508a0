package httpapi

import (
	"net/http"

	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/refdatarepo"
)

type refdataHandlers struct {
	repo refdatarepo.Repository
}

func (h *refdataHandlers) categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.repo.ListCategories(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryResponse{ID: string(c.ID), Name: c.Name, Icon: c.Icon})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *refdataHandlers) tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.repo.ListTags(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	out := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagResponse{ID: string(t.ID), Name: t.Name, Color: t.Color})
	}
	writeJSON(w, http.StatusOK, out)
}
