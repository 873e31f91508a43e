package conversation

import (
	"errors"
	"fmt"
	"strings"

	"bobbystable/models"
	"bobbystable/services/reservation"
	"bobbystable/utils"

	"go.uber.org/zap"
)

// confirmReservation commits the draft through the reservation store. The
// store re-checks slot availability under its own locks, so a slot taken
// since the caller last heard "available" fails here rather than
// over-booking.
func (s *DefaultConversationService) confirmReservation(session *models.CallSession) (string, []models.Event) {
	if session.Draft == nil {
		session.Context = models.ContextGreeting
		session.Step = models.StepWelcome
		return "I don't have a reservation in progress. Would you like to start a new one?", nil
	}

	res, err := s.Store.Confirm(*session.Draft)
	if err != nil {
		return s.confirmFailed(session, err), nil
	}

	session.Draft = nil
	session.Context = models.ContextGreeting
	session.Step = models.StepWelcome

	response := fmt.Sprintf(
		"Your reservation is confirmed! %s, party of %d, on %s at %s. Your confirmation number is %s. We look forward to seeing you!",
		res.Name, res.PartySize, res.Date, res.Time, utils.SpeakDigits(res.ID))

	return response, []models.Event{{Type: models.EventReservationConfirmed, Reservation: res}}
}

// confirmFailed maps store errors onto guiding responses. Missing fields
// and capacity contention both send the caller back to collection; the
// draft survives so already-collected fields are kept.
func (s *DefaultConversationService) confirmFailed(session *models.CallSession, err error) string {
	var validationErr *reservation.ValidationError
	var slotErr *reservation.SlotUnavailableError
	var configErr *reservation.ConfigurationError

	switch {
	case errors.As(err, &validationErr):
		session.Context = models.ContextNewReservation
		session.Step = models.StepCollect
		if len(validationErr.Missing) > 0 {
			return fmt.Sprintf("I'm missing some information: %s. Let's go back and complete those.",
				strings.Join(validationErr.Missing, ", "))
		}
		return "Some of the reservation details don't look right. Let's go over them again."

	case errors.As(err, &slotErr):
		session.Context = models.ContextNewReservation
		session.Step = models.StepCollect
		alternatives := s.Ledger.OpenSlots(slotErr.Date)
		if len(alternatives) == 0 {
			return fmt.Sprintf("I'm sorry, that time slot was just taken and %s is now fully booked. Would you like to try a different date?", slotErr.Date)
		}
		return fmt.Sprintf("I'm sorry, that time slot was just taken. We still have availability at: %s. Would you like one of those?",
			strings.Join(alternatives, ", "))

	case errors.As(err, &configErr):
		session.Context = models.ContextNewReservation
		session.Step = models.StepCollect
		return fmt.Sprintf("I'm sorry, that's not a valid time slot. We have openings at: %s.",
			strings.Join(s.Ledger.Slots(), ", "))

	default:
		s.Logger.Error("unexpected confirm failure", zap.Error(err))
		return "Something went wrong confirming your reservation. Let's try that again."
	}
}
