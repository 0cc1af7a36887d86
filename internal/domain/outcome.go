package domain

import (
	"errors"
	"fmt"
	"time"
)

// OutcomeKind tags the variant of a redemption Outcome.
type OutcomeKind string

const (
	OutcomeAdded        OutcomeKind = "added"
	OutcomeAlreadyOwned OutcomeKind = "already_owned"
	OutcomeInvalidCode  OutcomeKind = "invalid_code"
	OutcomeFailure      OutcomeKind = "failure"
)

// FailureReason classifies a Failure outcome.
type FailureReason string

const (
	ReasonNone         FailureReason = ""
	ReasonTimeout      FailureReason = "timeout"
	ReasonUnavailable  FailureReason = "unavailable"
	ReasonUnauthorized FailureReason = "unauthorized"
	ReasonInternal     FailureReason = "internal"
)

// Retryable reports whether the caller may safely retry the same redemption.
func (r FailureReason) Retryable() bool {
	return r == ReasonTimeout || r == ReasonUnavailable
}

// Outcome is the terminal result of one redemption attempt.
//
// Exactly one of ItemID (Added, AlreadyOwned), RawPayload (InvalidCode) or
// Reason (Failure) is meaningful, depending on Kind.
type Outcome struct {
	Kind       OutcomeKind   `json:"kind"`
	ItemID     string        `json:"item_id,omitempty"`
	RawPayload string        `json:"raw_payload,omitempty"`
	Reason     FailureReason `json:"reason,omitempty"`
	Err        error         `json:"-"`
}

// Added builds an Added outcome.
func Added(itemID string) Outcome {
	return Outcome{Kind: OutcomeAdded, ItemID: itemID}
}

// AlreadyOwned builds an AlreadyOwned outcome.
func AlreadyOwned(itemID string) Outcome {
	return Outcome{Kind: OutcomeAlreadyOwned, ItemID: itemID}
}

// InvalidCode builds an InvalidCode outcome.
func InvalidCode(rawPayload string) Outcome {
	return Outcome{Kind: OutcomeInvalidCode, RawPayload: rawPayload}
}

// Failure builds a Failure outcome, classifying err into a reason.
func Failure(err error) Outcome {
	return Outcome{Kind: OutcomeFailure, Reason: ClassifyFailure(err), Err: err}
}

// ClassifyFailure maps an error onto the failure vocabulary.
func ClassifyFailure(err error) FailureReason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrTimeout):
		return ReasonTimeout
	case errors.Is(err, ErrUnavailable):
		return ReasonUnavailable
	case errors.Is(err, ErrUnauthorized):
		return ReasonUnauthorized
	default:
		return ReasonInternal
	}
}

// IsFailure reports whether the outcome is a Failure.
func (o Outcome) IsFailure() bool {
	return o.Kind == OutcomeFailure
}

// Message returns a default user-facing message for the outcome.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeAdded:
		return fmt.Sprintf(MsgFmtItemAdded, o.ItemID)
	case OutcomeAlreadyOwned:
		return fmt.Sprintf(MsgFmtItemAlreadyOwned, o.ItemID)
	case OutcomeInvalidCode:
		return MsgInvalidCode
	}
	switch o.Reason {
	case ReasonUnauthorized:
		return MsgSessionExpired
	case ReasonTimeout, ReasonUnavailable:
		return MsgTryAgain
	default:
		return MsgRedemptionFailed
	}
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeAdded, OutcomeAlreadyOwned:
		return fmt.Sprintf("%s{%s}", o.Kind, o.ItemID)
	case OutcomeInvalidCode:
		return fmt.Sprintf("%s{%q}", o.Kind, o.RawPayload)
	default:
		return fmt.Sprintf("%s{%s}", o.Kind, o.Reason)
	}
}

// ScanEvent is one decoded payload read by the camera. Never persisted.
type ScanEvent struct {
	RawPayload string
	Timestamp  time.Time
}
