package conversation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"bobbystable/models"
	"bobbystable/services/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSlots = []string{"17:00", "18:00", "19:00", "20:00", "21:00"}

func newTestService() *DefaultConversationService {
	ledger := reservation.NewSlotLedger(testSlots, 5)
	store := reservation.NewDefaultReservationStore(ledger, 20, zap.NewNop())
	return &DefaultConversationService{
		Sessions:     NewMemorySessionStore(time.Hour),
		Store:        store,
		Ledger:       ledger,
		MaxPartySize: 20,
		Logger:       zap.NewNop(),
	}
}

func turn(t *testing.T, svc *DefaultConversationService, sid string, intent models.Intent, args models.IntentArgs) *models.TurnResult {
	t.Helper()
	result, err := svc.HandleIntent(context.Background(), sid, intent, args)
	require.NoError(t, err)
	return result
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

// collectDraft walks a session through the whole collection flow up to the
// confirmation step.
func collectDraft(t *testing.T, svc *DefaultConversationService, sid, name, date, slot string) {
	t.Helper()
	turn(t, svc, sid, models.IntentStartNewReservation, models.IntentArgs{})
	turn(t, svc, sid, models.IntentSetName, models.IntentArgs{Name: name})
	turn(t, svc, sid, models.IntentSetPartySize, models.IntentArgs{PartySize: intPtr(4)})
	turn(t, svc, sid, models.IntentSetDate, models.IntentArgs{Date: date})
	turn(t, svc, sid, models.IntentSetTime, models.IntentArgs{Time: slot})
	turn(t, svc, sid, models.IntentSetPhone, models.IntentArgs{Phone: "15551234567"})
	result := turn(t, svc, sid, models.IntentSetSpecialRequests, models.IntentArgs{SpecialRequests: strPtr("")})
	require.Equal(t, models.ContextConfirmation, result.NextContext)
	require.Equal(t, models.StepConfirm, result.NextStep)
}

func TestFullReservationFlow(t *testing.T) {
	svc := newTestService()
	sid := "call-1"

	result := turn(t, svc, sid, models.IntentStartNewReservation, models.IntentArgs{})
	assert.Equal(t, models.ContextNewReservation, result.NextContext)
	assert.Equal(t, models.StepCollect, result.NextStep)

	result = turn(t, svc, sid, models.IntentSetName, models.IntentArgs{Name: "Alice Johnson"})
	assert.Contains(t, result.Response, "Alice Johnson")

	turn(t, svc, sid, models.IntentSetPartySize, models.IntentArgs{PartySize: intPtr(4)})

	result = turn(t, svc, sid, models.IntentSetDate, models.IntentArgs{Date: "2025-03-01"})
	assert.Contains(t, result.Response, "19:00")

	result = turn(t, svc, sid, models.IntentSetTime, models.IntentArgs{Time: "19:00"})
	assert.Contains(t, result.Response, "available")

	turn(t, svc, sid, models.IntentSetPhone, models.IntentArgs{Phone: "15551234567"})

	result = turn(t, svc, sid, models.IntentSetSpecialRequests, models.IntentArgs{SpecialRequests: strPtr("window seat")})
	assert.Equal(t, models.ContextConfirmation, result.NextContext)
	assert.Contains(t, result.Response, "window seat")
	assert.Contains(t, result.Response, "party of 4")

	result = turn(t, svc, sid, models.IntentConfirmReservation, models.IntentArgs{})
	assert.Equal(t, models.ContextGreeting, result.NextContext)
	assert.Equal(t, models.StepWelcome, result.NextStep)
	require.Len(t, result.Events, 1)
	assert.Equal(t, models.EventReservationConfirmed, result.Events[0].Type)
	require.NotNil(t, result.Events[0].Reservation)
	assert.Contains(t, result.Response, "confirmed")

	// The slot was consumed.
	assert.Equal(t, 4, svc.Ledger.Check("2025-03-01", "19:00").Remaining)

	// Look the reservation back up, modify it, then cancel it.
	result = turn(t, svc, sid, models.IntentLookupReservation, models.IntentArgs{Phone: "15551234567"})
	assert.Equal(t, models.ContextManage, result.NextContext)
	assert.Equal(t, models.StepFound, result.NextStep)

	result = turn(t, svc, sid, models.IntentModifyReservation, models.IntentArgs{PartySize: intPtr(6)})
	require.Len(t, result.Events, 1)
	assert.Equal(t, models.EventReservationModified, result.Events[0].Type)
	assert.Contains(t, result.Response, "party of 6")
	assert.Equal(t, models.ContextManage, result.NextContext)

	result = turn(t, svc, sid, models.IntentCancelExisting, models.IntentArgs{})
	require.Len(t, result.Events, 1)
	assert.Equal(t, models.EventReservationCancelled, result.Events[0].Type)
	assert.Equal(t, models.ContextGreeting, result.NextContext)
	assert.Equal(t, 5, svc.Ledger.Check("2025-03-01", "19:00").Remaining)
}

func TestCancelFlowAbortsFromAnyState(t *testing.T) {
	svc := newTestService()

	// From collection.
	sid := "call-collect"
	turn(t, svc, sid, models.IntentStartNewReservation, models.IntentArgs{})
	turn(t, svc, sid, models.IntentSetName, models.IntentArgs{Name: "Alice"})
	result := turn(t, svc, sid, models.IntentCancelFlow, models.IntentArgs{})
	assert.Equal(t, models.ContextGreeting, result.NextContext)
	assert.Equal(t, models.StepWelcome, result.NextStep)

	// The draft is gone: a new flow starts clean.
	turn(t, svc, sid, models.IntentStartNewReservation, models.IntentArgs{})
	turn(t, svc, sid, models.IntentSetPartySize, models.IntentArgs{PartySize: intPtr(2)})
	turn(t, svc, sid, models.IntentSetDate, models.IntentArgs{Date: "2025-03-01"})
	turn(t, svc, sid, models.IntentSetTime, models.IntentArgs{Time: "18:00"})
	turn(t, svc, sid, models.IntentSetPhone, models.IntentArgs{Phone: "15550000000"})
	turn(t, svc, sid, models.IntentSetSpecialRequests, models.IntentArgs{})
	result = turn(t, svc, sid, models.IntentConfirmReservation, models.IntentArgs{})
	assert.Contains(t, result.Response, "name")
	assert.Equal(t, models.ContextNewReservation, result.NextContext)

	// From confirmation.
	sid = "call-confirm"
	collectDraft(t, svc, sid, "Bob", "2025-03-02", "17:00")
	result = turn(t, svc, sid, models.IntentCancelFlow, models.IntentArgs{})
	assert.Equal(t, models.ContextGreeting, result.NextContext)
	assert.Equal(t, 5, svc.Ledger.Check("2025-03-02", "17:00").Remaining)

	// From manage.
	sid = "call-manage"
	collectDraft(t, svc, sid, "Carol", "2025-03-03", "18:00")
	turn(t, svc, sid, models.IntentConfirmReservation, models.IntentArgs{})
	result = turn(t, svc, sid, models.IntentLookupReservation, models.IntentArgs{Name: "Carol"})
	require.Equal(t, models.ContextManage, result.NextContext)
	result = turn(t, svc, sid, models.IntentCancelFlow, models.IntentArgs{})
	assert.Equal(t, models.ContextGreeting, result.NextContext)
}

func TestDisallowedIntentKeepsState(t *testing.T) {
	svc := newTestService()
	sid := "call-1"

	// Confirming from the greeting is not a declared transition.
	result := turn(t, svc, sid, models.IntentConfirmReservation, models.IntentArgs{})
	assert.Equal(t, models.ContextGreeting, result.NextContext)
	assert.Equal(t, models.StepWelcome, result.NextStep)
	assert.Empty(t, result.Events)

	// Neither is field collection.
	result = turn(t, svc, sid, models.IntentSetName, models.IntentArgs{Name: "Alice"})
	assert.Equal(t, models.ContextGreeting, result.NextContext)

	// Modifying from collection is rejected without losing the draft.
	turn(t, svc, sid, models.IntentStartNewReservation, models.IntentArgs{})
	turn(t, svc, sid, models.IntentSetName, models.IntentArgs{Name: "Alice"})
	result = turn(t, svc, sid, models.IntentModifyReservation, models.IntentArgs{PartySize: intPtr(8)})
	assert.Equal(t, models.ContextNewReservation, result.NextContext)
	assert.Equal(t, models.StepCollect, result.NextStep)
}

func TestSetTimeSuggestsAlternativesWhenFull(t *testing.T) {
	svc := newTestService()

	// Fill 19:00 on the target date.
	for i := range 5 {
		sid := fmt.Sprintf("filler-%d", i)
		collectDraft(t, svc, sid, fmt.Sprintf("Guest %d", i), "2025-03-01", "19:00")
		turn(t, svc, sid, models.IntentConfirmReservation, models.IntentArgs{})
	}
	require.Equal(t, 0, svc.Ledger.Check("2025-03-01", "19:00").Remaining)

	sid := "late-caller"
	turn(t, svc, sid, models.IntentStartNewReservation, models.IntentArgs{})
	turn(t, svc, sid, models.IntentSetDate, models.IntentArgs{Date: "2025-03-01"})
	result := turn(t, svc, sid, models.IntentSetTime, models.IntentArgs{Time: "19:00"})
	assert.Contains(t, result.Response, "fully booked")
	assert.Contains(t, result.Response, "17:00")
	assert.Equal(t, models.ContextNewReservation, result.NextContext)
	assert.Equal(t, models.StepCollect, result.NextStep)
}

func TestSetTimeRejectsUnknownSlot(t *testing.T) {
	svc := newTestService()
	sid := "call-1"
	turn(t, svc, sid, models.IntentStartNewReservation, models.IntentArgs{})
	result := turn(t, svc, sid, models.IntentSetTime, models.IntentArgs{Time: "13:00"})
	assert.Contains(t, result.Response, "not a valid time slot")
}

func TestSetPartySizeTooLarge(t *testing.T) {
	svc := newTestService()
	sid := "call-1"
	turn(t, svc, sid, models.IntentStartNewReservation, models.IntentArgs{})
	result := turn(t, svc, sid, models.IntentSetPartySize, models.IntentArgs{PartySize: intPtr(50)})
	assert.Contains(t, result.Response, "up to 20")

	// The refused value was not stored.
	turn(t, svc, sid, models.IntentSetDate, models.IntentArgs{Date: "2025-03-01"})
	turn(t, svc, sid, models.IntentSetTime, models.IntentArgs{Time: "19:00"})
	turn(t, svc, sid, models.IntentSetPhone, models.IntentArgs{Phone: "15551234567"})
	turn(t, svc, sid, models.IntentSetName, models.IntentArgs{Name: "Alice"})
	turn(t, svc, sid, models.IntentSetSpecialRequests, models.IntentArgs{})
	result = turn(t, svc, sid, models.IntentConfirmReservation, models.IntentArgs{})
	assert.Contains(t, result.Response, "party_size")
}

func TestLookupWithoutArgumentsPrompts(t *testing.T) {
	svc := newTestService()
	result := turn(t, svc, "call-1", models.IntentLookupReservation, models.IntentArgs{})
	assert.Contains(t, result.Response, "phone number or name")
	assert.Equal(t, models.ContextGreeting, result.NextContext)
	assert.Equal(t, models.StepReady, result.NextStep)
}

func TestLookupZeroMatches(t *testing.T) {
	svc := newTestService()
	result := turn(t, svc, "call-1", models.IntentLookupReservation, models.IntentArgs{Name: "Nobody"})
	assert.Contains(t, result.Response, "couldn't find")
	assert.Equal(t, models.ContextGreeting, result.NextContext)
}

func TestLookupMultipleMatchesDoesNotAutoSelect(t *testing.T) {
	svc := newTestService()

	for i, slot := range []string{"18:00", "20:00"} {
		sid := fmt.Sprintf("smith-%d", i)
		collectDraft(t, svc, sid, "Smith", "2025-03-01", slot)
		turn(t, svc, sid, models.IntentConfirmReservation, models.IntentArgs{})
	}

	sid := "caller"
	result := turn(t, svc, sid, models.IntentLookupReservation, models.IntentArgs{Name: "smith"})
	assert.Contains(t, result.Response, "multiple reservations")
	assert.Contains(t, result.Response, "18:00")
	assert.Contains(t, result.Response, "20:00")
	assert.Equal(t, models.ContextGreeting, result.NextContext)

	// A narrowing query that lands on one record proceeds to manage.
	result = turn(t, svc, sid, models.IntentLookupReservation, models.IntentArgs{Name: "smith", Phone: "nomatch"})
	assert.Contains(t, result.Response, "multiple")
}

func TestModifyWithoutLookupPointer(t *testing.T) {
	svc := newTestService()
	sid := "call-1"

	// Force a manage-step session with no stored pointer.
	session := models.NewCallSession(sid)
	session.Context = models.ContextManage
	session.Step = models.StepFound
	require.NoError(t, svc.Sessions.Set(context.Background(), session))

	result := turn(t, svc, sid, models.IntentModifyReservation, models.IntentArgs{PartySize: intPtr(2)})
	assert.Contains(t, result.Response, "look up your reservation first")
	assert.Empty(t, result.Events)

	result = turn(t, svc, sid, models.IntentCancelExisting, models.IntentArgs{})
	assert.Contains(t, result.Response, "look up your reservation first")
	assert.Empty(t, result.Events)
}

func TestConfirmStaleSlotReturnsToCollection(t *testing.T) {
	svc := newTestService()

	sid := "slow-caller"
	collectDraft(t, svc, sid, "Alice", "2025-03-01", "19:00")

	// The slot fills while the caller hesitates at confirmation.
	for i := range 5 {
		other := fmt.Sprintf("fast-%d", i)
		collectDraft(t, svc, other, fmt.Sprintf("Guest %d", i), "2025-03-01", "19:00")
		result := turn(t, svc, other, models.IntentConfirmReservation, models.IntentArgs{})
		require.Len(t, result.Events, 1)
	}

	result := turn(t, svc, sid, models.IntentConfirmReservation, models.IntentArgs{})
	assert.Contains(t, result.Response, "just taken")
	assert.Contains(t, result.Response, "17:00")
	assert.Equal(t, models.ContextNewReservation, result.NextContext)
	assert.Empty(t, result.Events)

	// The draft survived: picking an open slot completes the booking.
	turn(t, svc, sid, models.IntentSetTime, models.IntentArgs{Time: "20:00"})
	turn(t, svc, sid, models.IntentSetSpecialRequests, models.IntentArgs{})
	result = turn(t, svc, sid, models.IntentConfirmReservation, models.IntentArgs{})
	require.Len(t, result.Events, 1)
	assert.Contains(t, result.Response, "Alice")
}

func TestDraftIsolationAcrossSessions(t *testing.T) {
	svc := newTestService()

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sid := fmt.Sprintf("call-%d", n)
			collectDraft(t, svc, sid, fmt.Sprintf("Guest %d", n), "2025-03-01", "19:00")
		}(i)
	}
	wg.Wait()

	// Each session kept its own name and confirms independently.
	for i := range 4 {
		sid := fmt.Sprintf("call-%d", i)
		result := turn(t, svc, sid, models.IntentConfirmReservation, models.IntentArgs{})
		require.Len(t, result.Events, 1)
		assert.Contains(t, result.Response, fmt.Sprintf("Guest %d", i))
	}
	assert.Equal(t, 1, svc.Ledger.Check("2025-03-01", "19:00").Remaining)
}

func TestCheckAvailabilityIntent(t *testing.T) {
	svc := newTestService()
	sid := "call-1"
	turn(t, svc, sid, models.IntentStartNewReservation, models.IntentArgs{})

	result := turn(t, svc, sid, models.IntentCheckAvailability, models.IntentArgs{Date: "2025-03-01", Time: "19:00"})
	assert.Contains(t, result.Response, "5 spots remaining")

	result = turn(t, svc, sid, models.IntentCheckAvailability, models.IntentArgs{Date: "2025-03-01"})
	assert.Contains(t, result.Response, "17:00 (5 spots)")

	result = turn(t, svc, sid, models.IntentCheckAvailability, models.IntentArgs{})
	assert.Contains(t, result.Response, "Which date")
}
