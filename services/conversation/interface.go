package conversation

import (
	"context"

	"bobbystable/models"
	"bobbystable/services/reservation"

	"go.uber.org/zap"
)

// ConversationService processes one structured intent per dialogue turn,
// validates it against the session's current context and step, mutates
// session state, and returns the response plus any dashboard events.
type ConversationService interface {
	HandleIntent(ctx context.Context, sessionID string, intent models.Intent, args models.IntentArgs) (*models.TurnResult, error)
}

// DefaultConversationService implements ConversationService.
type DefaultConversationService struct {
	Sessions     SessionStore
	Store        reservation.ReservationStore
	Ledger       *reservation.SlotLedger
	MaxPartySize int
	Logger       *zap.Logger
}
