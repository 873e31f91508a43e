package conversation

import (
	"context"
	"fmt"

	"bobbystable/models"

	"go.uber.org/zap"
)

type stateKey struct {
	context string
	step    string
}

// allowedIntents is the authoritative contract of the state machine: which
// intents each context/step accepts. The dialogue phrasing the upstream
// platform uses to sequence questions carries no authority of its own.
// cancel_flow is additionally accepted from every non-greeting state (the
// universal abort), handled before this table is consulted.
var allowedIntents = map[stateKey][]models.Intent{
	{models.ContextGreeting, models.StepWelcome}: {
		models.IntentStartNewReservation,
		models.IntentLookupReservation,
	},
	{models.ContextGreeting, models.StepReady}: {
		models.IntentStartNewReservation,
		models.IntentLookupReservation,
	},
	{models.ContextNewReservation, models.StepCollect}: {
		models.IntentSetName,
		models.IntentSetPartySize,
		models.IntentSetDate,
		models.IntentSetTime,
		models.IntentSetPhone,
		models.IntentSetSpecialRequests,
		models.IntentCheckAvailability,
	},
	{models.ContextConfirmation, models.StepConfirm}: {
		models.IntentConfirmReservation,
	},
	{models.ContextManage, models.StepFound}: {
		models.IntentModifyReservation,
		models.IntentCancelExisting,
	},
}

func intentAllowed(session *models.CallSession, intent models.Intent) bool {
	for _, allowed := range allowedIntents[stateKey{session.Context, session.Step}] {
		if allowed == intent {
			return true
		}
	}
	return false
}

// HandleIntent runs one conversational turn. The session is loaded (or
// started at the greeting), the intent is checked against the current
// state's allowed set, the matching handler runs, and the updated session
// is saved. Handlers never abort the call: every outcome, including
// validation failures and capacity contention, becomes a guiding response.
func (s *DefaultConversationService) HandleIntent(ctx context.Context, sessionID string, intent models.Intent, args models.IntentArgs) (*models.TurnResult, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load call session: %w", err)
	}
	if session == nil {
		session = models.NewCallSession(sessionID)
	}

	var response string
	var events []models.Event

	switch {
	case intent == models.IntentCancelFlow && session.Context != models.ContextGreeting:
		response = s.cancelFlow(session)
	case !intentAllowed(session, intent):
		response = s.guidance(session)
		s.Logger.Debug("intent not allowed in current state",
			zap.String("sessionId", sessionID),
			zap.String("intent", string(intent)),
			zap.String("context", session.Context),
			zap.String("step", session.Step))
	default:
		switch intent {
		case models.IntentStartNewReservation:
			response = s.startNewReservation(session)
		case models.IntentSetName:
			response = s.setName(session, args)
		case models.IntentSetPartySize:
			response = s.setPartySize(session, args)
		case models.IntentSetDate:
			response = s.setDate(session, args)
		case models.IntentSetTime:
			response = s.setTime(session, args)
		case models.IntentSetPhone:
			response = s.setPhone(session, args)
		case models.IntentSetSpecialRequests:
			response = s.setSpecialRequests(session, args)
		case models.IntentCheckAvailability:
			response = s.checkAvailability(args)
		case models.IntentConfirmReservation:
			response, events = s.confirmReservation(session)
		case models.IntentLookupReservation:
			response = s.lookupReservation(session, args)
		case models.IntentModifyReservation:
			response, events = s.modifyReservation(session, args)
		case models.IntentCancelExisting:
			response, events = s.cancelExisting(session)
		case models.IntentCancelFlow:
			response = s.cancelFlow(session)
		}
	}

	if err := s.Sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save call session: %w", err)
	}

	return &models.TurnResult{
		Response:    response,
		NextContext: session.Context,
		NextStep:    session.Step,
		Events:      events,
	}, nil
}

// guidance steers a caller whose intent does not fit the current state.
func (s *DefaultConversationService) guidance(session *models.CallSession) string {
	switch session.Context {
	case models.ContextNewReservation:
		return "Let's finish your reservation details first, or say cancel to start over."
	case models.ContextConfirmation:
		return "Please confirm whether the reservation details are correct, or say cancel to start over."
	case models.ContextManage:
		return "Would you like to modify or cancel this reservation?"
	default:
		return "I can help you make a new reservation or look up an existing one. What would you like to do?"
	}
}

// cancelFlow is the universal abort: drop the draft and any looked-up
// reservation pointer, and return to the greeting.
func (s *DefaultConversationService) cancelFlow(session *models.CallSession) string {
	session.Draft = nil
	session.FoundReservationID = ""
	session.Context = models.ContextGreeting
	session.Step = models.StepWelcome
	return "No problem! Is there anything else I can help you with?"
}

// draftOf returns the session's draft, creating it if the session has none.
func draftOf(session *models.CallSession) *models.ReservationDraft {
	if session.Draft == nil {
		session.Draft = &models.ReservationDraft{}
	}
	return session.Draft
}
