package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/hobbyhub-app/hobby-directory-api/internal/app/accounts"
	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
)

type accountsHandlers struct {
	svc *accounts.Service
}

func (h *accountsHandlers) signUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}

	var role domain.Role
	if req.Role != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid role", map[string]any{"role": "must be user or organizer"})
			return
		}
		role = parsed
	}

	creds, err := h.svc.SignUp(r.Context(), accounts.SignUpInput{
		Email:            string(req.Email),
		Password:         req.Password,
		DisplayName:      req.DisplayName,
		Role:             role,
		OrganizationName: req.OrganizationName,
		Phone:            req.Phone,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, credentialsResponse{Token: creds.Token, User: toIdentityResponse(creds.Identity)})
}

func (h *accountsHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}

	creds, err := h.svc.SignIn(r.Context(), string(req.Email), req.Password)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, credentialsResponse{Token: creds.Token, User: toIdentityResponse(creds.Identity)})
}

func (h *accountsHandlers) logout(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	if err := h.svc.SignOut(r.Context(), session); err != nil {
		writeAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *accountsHandlers) me(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())
	profile, err := h.svc.GetProfile(r.Context(), identity.ID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toIdentityResponse(profile))
}

func (h *accountsHandlers) updateMe(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}

	identity, _ := IdentityFromContext(r.Context())
	updated, err := h.svc.UpdateProfile(r.Context(), identity.ID, toUpdateProfileInput(req))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toIdentityResponse(updated))
}

func (h *accountsHandlers) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}

	identity, _ := IdentityFromContext(r.Context())
	if err := h.svc.ChangePassword(r.Context(), identity.ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
