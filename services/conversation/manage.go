package conversation

import (
	"errors"
	"fmt"
	"strings"

	"bobbystable/models"
	"bobbystable/services/reservation"

	"go.uber.org/zap"
)

// Multi-match lookups surface at most this many candidates.
const maxLookupCandidates = 3

// lookupReservation searches confirmed reservations by phone or name. Only
// a unique match moves the session to the manage step; zero or multiple
// matches keep the caller in the greeting so they can narrow the search.
func (s *DefaultConversationService) lookupReservation(session *models.CallSession, args models.IntentArgs) string {
	session.Step = models.StepReady

	if args.Phone == "" && args.Name == "" {
		return "I can look up your reservation by phone number or name. Which would you like to provide?"
	}

	matches, err := s.Store.Lookup(args.Phone, args.Name)
	if err != nil {
		s.Logger.Error("lookup failed", zap.Error(err))
		return "I couldn't search reservations just now. Could you try that again?"
	}

	switch len(matches) {
	case 0:
		return "I couldn't find a reservation with that information. " +
			"Would you like to try different details or make a new reservation?"
	case 1:
		res := matches[0]
		session.FoundReservationID = res.ID
		session.Context = models.ContextManage
		session.Step = models.StepFound
		return fmt.Sprintf("I found your reservation: %s, party of %d, on %s at %s. "+
			"Would you like to modify or cancel this reservation?",
			res.Name, res.PartySize, res.Date, res.Time)
	default:
		shown := matches
		if len(shown) > maxLookupCandidates {
			shown = shown[:maxLookupCandidates]
		}
		details := make([]string, 0, len(shown))
		for _, r := range shown {
			details = append(details, fmt.Sprintf("%s on %s at %s", r.Name, r.Date, r.Time))
		}
		return fmt.Sprintf("I found multiple reservations: %s. Could you provide more details to help me find the right one?",
			strings.Join(details, "; "))
	}
}

// modifyReservation applies changes against the reservation found by the
// last lookup. The intent itself carries no id; without a stored pointer
// the caller is sent back to look up first.
func (s *DefaultConversationService) modifyReservation(session *models.CallSession, args models.IntentArgs) (string, []models.Event) {
	if session.FoundReservationID == "" {
		return "I need to look up your reservation first. Can you provide your phone number or name?", nil
	}

	changes := models.ReservationChanges{
		PartySize:       args.PartySize,
		SpecialRequests: args.SpecialRequests,
	}
	if args.Date != "" {
		date := args.Date
		changes.Date = &date
	}
	if args.Time != "" {
		slot := args.Time
		changes.Time = &slot
	}

	res, err := s.Store.Modify(session.FoundReservationID, changes)
	if err != nil {
		return s.modifyFailed(session, err), nil
	}

	response := fmt.Sprintf("Your reservation has been updated: %s, party of %d, on %s at %s. Is there anything else?",
		res.Name, res.PartySize, res.Date, res.Time)
	return response, []models.Event{{Type: models.EventReservationModified, Reservation: res}}
}

func (s *DefaultConversationService) modifyFailed(session *models.CallSession, err error) string {
	var notFoundErr *reservation.NotFoundError
	var slotErr *reservation.SlotUnavailableError
	var validationErr *reservation.ValidationError
	var configErr *reservation.ConfigurationError

	switch {
	case errors.As(err, &notFoundErr):
		session.FoundReservationID = ""
		session.Context = models.ContextGreeting
		session.Step = models.StepReady
		return "I can't find that reservation anymore. Can you provide your phone number or name so I can look it up again?"

	case errors.As(err, &slotErr):
		return fmt.Sprintf("I'm sorry, %s on %s is not available. Would you like to try a different time?",
			slotErr.Slot, slotErr.Date)

	case errors.As(err, &validationErr):
		return fmt.Sprintf("I'm sorry, we can only accommodate parties up to %d. What size should I put down?", s.MaxPartySize)

	case errors.As(err, &configErr):
		return fmt.Sprintf("I'm sorry, that's not a valid time slot. We have openings at: %s.",
			strings.Join(s.Ledger.Slots(), ", "))

	default:
		s.Logger.Error("unexpected modify failure", zap.Error(err))
		return "Something went wrong updating your reservation. Could you try that again?"
	}
}

// cancelExisting cancels the looked-up reservation, releases its slot, and
// returns to the greeting.
func (s *DefaultConversationService) cancelExisting(session *models.CallSession) (string, []models.Event) {
	if session.FoundReservationID == "" {
		return "I need to look up your reservation first. Can you provide your phone number or name?", nil
	}

	res, err := s.Store.Cancel(session.FoundReservationID)
	if err != nil {
		var notFoundErr *reservation.NotFoundError
		if errors.As(err, &notFoundErr) {
			session.FoundReservationID = ""
			session.Context = models.ContextGreeting
			session.Step = models.StepReady
			return "I can't find that reservation anymore. Can you provide your phone number or name so I can look it up again?", nil
		}
		s.Logger.Error("unexpected cancel failure", zap.Error(err))
		return "Something went wrong cancelling your reservation. Could you try that again?", nil
	}

	session.FoundReservationID = ""
	session.Context = models.ContextGreeting
	session.Step = models.StepWelcome

	response := fmt.Sprintf("Your reservation for %s on %s at %s has been cancelled. Is there anything else I can help with?",
		res.Name, res.Date, res.Time)
	return response, []models.Event{{Type: models.EventReservationCancelled, ReservationID: res.ID}}
}
