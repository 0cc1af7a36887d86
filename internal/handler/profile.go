package handler

import (
	"net/http"

	"github.com/osse101/QRHunt_Go/internal/profile"
)

// ProfileRequest creates the caller's profile. An empty name derives one from the email.
type ProfileRequest struct {
	Name string `json:"name" validate:"omitempty,displayname"`
}

// HandleGetProfile returns the caller's profile
// @Summary Get profile
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Param X-User-ID header string true "Authenticated user ID"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/profile [get]
func HandleGetProfile(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		p, err := svc.GetProfile(r.Context(), caller)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetProfileFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

// HandleEnsureProfile creates the caller's profile on first sign-in
// @Summary Create profile
// @Description Returns the existing profile unchanged when one already exists
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param X-User-ID header string true "Authenticated user ID"
// @Param X-User-Email header string false "Authenticated user email"
// @Param request body ProfileRequest true "Display name"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/profile [post]
func HandleEnsureProfile(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req ProfileRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Profile"); err != nil {
			return
		}

		p, err := svc.EnsureProfile(r.Context(), caller, req.Name)
		if err != nil {
			respondServiceError(w, r, ErrMsgSaveProfileFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}
