package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hobbyhub-app/hobby-directory-api/internal/app/activities"
	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
)

type activitiesHandlers struct {
	svc *activities.Service

	maxUploadBytes int64
}

func (h *activitiesHandlers) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := activities.ListFilters{
		Search:     q.Get("search"),
		CategoryID: domain.CategoryID(q.Get("categoryId")),
		Location:   q.Get("location"),
	}
	if raw := q.Get("type"); raw != "" {
		typ, err := domain.ParseActivityType(raw)
		if err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid type filter", map[string]any{"type": err.Error()})
			return
		}
		filters.Type = typ
	}
	var err error
	if filters.MinPrice, err = parseFloatParam(q.Get("minPrice")); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid minPrice", map[string]any{"minPrice": "must be a number"})
		return
	}
	if filters.MaxPrice, err = parseFloatParam(q.Get("maxPrice")); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid maxPrice", map[string]any{"maxPrice": "must be a number"})
		return
	}

	page, limit := parsePaging(q.Get("page"), q.Get("limit"))
	result, err := h.svc.List(r.Context(), filters, page, limit)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityListResponse(result))
}

func (h *activitiesHandlers) get(w http.ResponseWriter, r *http.Request) {
	id := domain.ActivityID(chi.URLParam(r, "id"))
	a, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityResponse(a))
}

func (h *activitiesHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}

	identity, _ := IdentityFromContext(r.Context())
	a, err := h.svc.Create(r.Context(), identity.ID, toCreateActivityInput(req))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toActivityResponse(a))
}

func (h *activitiesHandlers) update(w http.ResponseWriter, r *http.Request) {
	var req updateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}

	identity, _ := IdentityFromContext(r.Context())
	id := domain.ActivityID(chi.URLParam(r, "id"))
	a, err := h.svc.Update(r.Context(), identity.ID, identity.Role, id, toUpdateActivityInput(req))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityResponse(a))
}

func (h *activitiesHandlers) delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())
	id := domain.ActivityID(chi.URLParam(r, "id"))
	if err := h.svc.SoftDelete(r.Context(), identity.ID, identity.Role, id); err != nil {
		writeAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *activitiesHandlers) mine(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())
	page, limit := parsePaging(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))

	result, err := h.svc.ListForOwner(r.Context(), identity.ID, page, limit)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityListResponse(result))
}

func (h *activitiesHandlers) stats(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())
	st, err := h.svc.Stats(r.Context(), identity.ID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Total:        st.Total,
		Active:       st.Active,
		Pending:      st.Pending,
		Participants: st.Participants,
		ThisMonth:    st.ThisMonth,
	})
}

func (h *activitiesHandlers) uploadImage(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	switch contentType {
	case "image/png", "image/jpeg", "image/webp":
	default:
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "unsupported image type", map[string]any{"contentType": "must be image/png, image/jpeg, or image/webp"})
		return
	}

	identity, _ := IdentityFromContext(r.Context())
	id := domain.ActivityID(chi.URLParam(r, "id"))

	body := http.MaxBytesReader(w, r.Body, h.maxBytes())
	a, err := h.svc.AttachImage(r.Context(), identity.ID, identity.Role, id, contentType, body)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityResponse(a))
}

func (h *activitiesHandlers) maxBytes() int64 {
	if h.maxUploadBytes > 0 {
		return h.maxUploadBytes
	}
	return 5 << 20
}

func parsePaging(pageRaw, limitRaw string) (int, int) {
	page, _ := strconv.Atoi(pageRaw)
	limit, _ := strconv.Atoi(limitRaw)
	return page, limit
}

func parseFloatParam(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
