package models

// Conversation contexts.
const (
	ContextGreeting       = "greeting"
	ContextNewReservation = "new_reservation"
	ContextConfirmation   = "confirmation"
	ContextManage         = "manage"
)

// Conversation steps.
const (
	StepWelcome = "welcome"
	StepReady   = "ready"
	StepCollect = "collect"
	StepConfirm = "confirm"
	StepFound   = "found"
)

// CallSession holds the conversational position and scratch state for one
// call. It is owned exclusively by its session; only the ledger and the
// reservation store are shared across calls.
type CallSession struct {
	SessionID          string            `json:"sessionId"`
	Context            string            `json:"context"`
	Step               string            `json:"step"`
	Draft              *ReservationDraft `json:"draft,omitempty"`
	FoundReservationID string            `json:"foundReservationId,omitempty"`
}

// NewCallSession returns a session positioned at the greeting entry point.
func NewCallSession(sessionID string) *CallSession {
	return &CallSession{
		SessionID: sessionID,
		Context:   ContextGreeting,
		Step:      StepWelcome,
	}
}
