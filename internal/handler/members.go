package handler

import (
	"net/http"

	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/member"
)

// MembersResponse is the member directory seen by the caller
type MembersResponse struct {
	Members []domain.Member `json:"members"`
}

// HandleGetMembers lists the other members and their badge counts
// @Summary List members
// @Description Every other member, most badges first
// @Tags members
// @Produce json
// @Security ApiKeyAuth
// @Param X-User-ID header string true "Authenticated user ID"
// @Success 200 {object} MembersResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/members [get]
func HandleGetMembers(svc member.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		members, err := svc.ListMembers(r.Context(), caller)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetMembersFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, MembersResponse{Members: members})
	}
}
