package scan

import "time"

// DefaultDebounce is the quiet window enforced after each delivered outcome.
const DefaultDebounce = time.Second

// Drop reasons, reported on scan.dropped events and in logs.
const (
	DropReasonEmpty    = "empty"
	DropReasonBusy     = "busy"
	DropReasonDebounce = "debounce"
	DropReasonClosed   = "closed"
)

// Log messages
const (
	LogMsgPayloadDropped  = "Scan payload dropped"
	LogMsgPayloadAccepted = "Scan payload accepted"
	LogMsgSignedOut       = "Scan rejected: no signed-in user"
	LogMsgOutcomeDiscard  = "Outcome discarded after session close"
	LogMsgPublishFailed   = "Failed to publish scan event"
)

// Error messages
const (
	ErrMsgSessionClosed = "scan session closed"
	ErrMsgNotSignedIn   = "no signed-in user"
)
