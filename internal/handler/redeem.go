package handler

import (
	"net/http"

	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/logger"
	"github.com/osse101/QRHunt_Go/internal/redemption"
)

// RedeemRequest carries one decoded QR payload
type RedeemRequest struct {
	Payload string `json:"payload" validate:"max=2048"`
}

// RedeemResponse is the JSON form of a redemption outcome
type RedeemResponse struct {
	Kind       domain.OutcomeKind   `json:"kind"`
	ItemID     string               `json:"item_id,omitempty"`
	RawPayload string               `json:"raw_payload,omitempty"`
	Reason     domain.FailureReason `json:"reason,omitempty"`
	Retryable  bool                 `json:"retryable"`
	Message    string               `json:"message"`
}

// NewRedeemResponse converts an outcome for transport
func NewRedeemResponse(o domain.Outcome) RedeemResponse {
	return RedeemResponse{
		Kind:       o.Kind,
		ItemID:     o.ItemID,
		RawPayload: o.RawPayload,
		Reason:     o.Reason,
		Retryable:  o.Reason.Retryable(),
		Message:    o.Message(),
	}
}

// outcomeStatus picks the HTTP status for an outcome. Every non-failure,
// including InvalidCode and AlreadyOwned, is a 200.
func outcomeStatus(o domain.Outcome) int {
	if !o.IsFailure() {
		return http.StatusOK
	}
	switch o.Reason {
	case domain.ReasonUnauthorized:
		return http.StatusUnauthorized
	case domain.ReasonTimeout:
		return http.StatusGatewayTimeout
	case domain.ReasonUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// HandleRedeem redeems a scanned payload for the caller
// @Summary Redeem a scanned QR code
// @Description Adds the badge behind a scanned payload to the caller's inventory
// @Tags redemption
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param X-User-ID header string true "Authenticated user ID"
// @Param request body RedeemRequest true "Scanned payload"
// @Success 200 {object} RedeemResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} RedeemResponse
// @Failure 503 {object} RedeemResponse
// @Failure 504 {object} RedeemResponse
// @Router /api/v1/redeem [post]
func HandleRedeem(svc redemption.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req RedeemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Redeem"); err != nil {
			return
		}
		logger.FromContext(r.Context()).Debug(LogMsgRedeemDecoded, "payload_len", len(req.Payload))

		outcome := svc.Redeem(r.Context(), caller, req.Payload)
		respondJSON(w, outcomeStatus(outcome), NewRedeemResponse(outcome))
	}
}
