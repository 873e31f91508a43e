package conversation

import (
	"fmt"
	"strings"

	"bobbystable/models"
)

// startNewReservation opens a fresh draft and moves to the collection step.
func (s *DefaultConversationService) startNewReservation(session *models.CallSession) string {
	session.Draft = &models.ReservationDraft{}
	session.Context = models.ContextNewReservation
	session.Step = models.StepCollect
	return "Wonderful! Let's get you a table. May I have the name for the reservation?"
}

func (s *DefaultConversationService) setName(session *models.CallSession, args models.IntentArgs) string {
	if args.Name == "" {
		return "I didn't catch that. May I have the name for the reservation?"
	}
	draftOf(session).Name = args.Name
	return fmt.Sprintf("Thank you, %s. How many guests will be joining us?", args.Name)
}

func (s *DefaultConversationService) setPartySize(session *models.CallSession, args models.IntentArgs) string {
	if args.PartySize == nil || *args.PartySize < 1 {
		return "How many guests should I put down for the reservation?"
	}
	if *args.PartySize > s.MaxPartySize {
		return fmt.Sprintf(
			"I'm sorry, we can only accommodate parties up to %d. For larger groups, please call us directly.",
			s.MaxPartySize)
	}
	draftOf(session).PartySize = *args.PartySize
	return fmt.Sprintf("Party of %d, got it. What date would you like to dine with us?", *args.PartySize)
}

// setDate stores the date and answers with that day's open slots, so the
// caller can pick a time without a second round trip.
func (s *DefaultConversationService) setDate(session *models.CallSession, args models.IntentArgs) string {
	if args.Date == "" {
		return "What date would you like to dine with us?"
	}
	draftOf(session).Date = args.Date

	open := s.Ledger.OpenSlots(args.Date)
	if len(open) == 0 {
		return fmt.Sprintf("I'm sorry, we're fully booked on %s. Would you like to try a different date?", args.Date)
	}
	return fmt.Sprintf("We have availability on %s. Available times are: %s. What time would you prefer?",
		args.Date, strings.Join(open, ", "))
}

// setTime validates the slot label against the configured grid and, when
// the requested slot is full, suggests the day's remaining open slots.
func (s *DefaultConversationService) setTime(session *models.CallSession, args models.IntentArgs) string {
	if !s.Ledger.ValidSlot(args.Time) {
		return fmt.Sprintf("I'm sorry, that's not a valid time slot. We have openings at: %s.",
			strings.Join(s.Ledger.Slots(), ", "))
	}

	draft := draftOf(session)
	if draft.Date == "" {
		return "What date would you like to dine with us? Then I can check that time."
	}

	avail := s.Ledger.Check(draft.Date, args.Time)
	if !avail.Available {
		alternatives := s.Ledger.OpenSlots(draft.Date)
		if len(alternatives) == 0 {
			return fmt.Sprintf("I'm sorry, we're fully booked on %s. Would you like to try a different date?", draft.Date)
		}
		return fmt.Sprintf("I'm sorry, %s is fully booked. We have availability at: %s. Would you like one of those?",
			args.Time, strings.Join(alternatives, ", "))
	}

	draft.Time = args.Time
	return fmt.Sprintf("Great, %s is available! May I have a phone number for the reservation?", args.Time)
}

func (s *DefaultConversationService) setPhone(session *models.CallSession, args models.IntentArgs) string {
	if args.Phone == "" {
		return "May I have a phone number for the reservation?"
	}
	draftOf(session).Phone = args.Phone
	return "Perfect! Any special requests or occasions we should know about? " +
		"For example, a birthday, anniversary, dietary restrictions, or seating preferences?"
}

// setSpecialRequests completes collection (an empty answer counts) and
// moves to confirmation with a full summary of the draft.
func (s *DefaultConversationService) setSpecialRequests(session *models.CallSession, args models.IntentArgs) string {
	draft := draftOf(session)
	if args.SpecialRequests != nil {
		draft.SpecialRequests = *args.SpecialRequests
	}
	draft.RequestsTaken = true

	session.Context = models.ContextConfirmation
	session.Step = models.StepConfirm
	return draftSummary(draft)
}

func draftSummary(draft *models.ReservationDraft) string {
	summary := fmt.Sprintf("Let me confirm your reservation: %s, party of %d, on %s at %s. Phone: %s.",
		draft.Name, draft.PartySize, draft.Date, draft.Time, draft.Phone)
	if draft.SpecialRequests != "" {
		summary += fmt.Sprintf(" Special requests: %s.", draft.SpecialRequests)
	}
	return summary + " Is this correct?"
}

// checkAvailability answers a direct availability question, either for one
// slot or for the whole day.
func (s *DefaultConversationService) checkAvailability(args models.IntentArgs) string {
	if args.Date == "" {
		return "Which date would you like me to check?"
	}

	if args.Time != "" {
		avail := s.Ledger.Check(args.Date, args.Time)
		if avail.Available {
			return fmt.Sprintf("Yes, %s on %s is available with %d spots remaining.", args.Time, args.Date, avail.Remaining)
		}
		return fmt.Sprintf("I'm sorry, %s on %s is fully booked.", args.Time, args.Date)
	}

	var open []string
	for _, slot := range s.Ledger.Slots() {
		if avail := s.Ledger.Check(args.Date, slot); avail.Available {
			open = append(open, fmt.Sprintf("%s (%d spots)", slot, avail.Remaining))
		}
	}
	if len(open) == 0 {
		return fmt.Sprintf("I'm sorry, we're fully booked on %s.", args.Date)
	}
	return fmt.Sprintf("On %s, we have availability at: %s.", args.Date, strings.Join(open, ", "))
}
