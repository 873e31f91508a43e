package reservation

import (
	"sort"
	"strings"
	"sync"
	"time"

	"bobbystable/models"

	"go.uber.org/zap"
)

// DefaultReservationStore implements ReservationStore with in-memory
// records. The id index is guarded by an RWMutex; each record carries its
// own mutex so modify/cancel on different reservations do not contend.
type DefaultReservationStore struct {
	Ledger       *SlotLedger
	MaxPartySize int
	Logger       *zap.Logger

	mu      sync.RWMutex
	records map[string]*reservationEntry
	order   []string // ids in confirmation order, for stable listing
}

type reservationEntry struct {
	mu  sync.Mutex
	res models.Reservation
}

// NewDefaultReservationStore builds a store bound to the given ledger.
func NewDefaultReservationStore(ledger *SlotLedger, maxPartySize int, logger *zap.Logger) *DefaultReservationStore {
	return &DefaultReservationStore{
		Ledger:       ledger,
		MaxPartySize: maxPartySize,
		Logger:       logger,
		records:      make(map[string]*reservationEntry),
	}
}

// Confirm validates the draft, generates a unique confirmation number, and
// books the slot. The availability re-check happens inside Ledger.Book:
// the draft may have gone stale since the caller last saw an availability
// response, so a failed book here is the authoritative answer.
func (s *DefaultReservationStore) Confirm(draft models.ReservationDraft) (*models.Reservation, error) {
	var missing []string
	if draft.Name == "" {
		missing = append(missing, "name")
	}
	if draft.PartySize == 0 {
		missing = append(missing, "party_size")
	}
	if draft.Date == "" {
		missing = append(missing, "date")
	}
	if draft.Time == "" {
		missing = append(missing, "time")
	}
	if draft.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}
	if draft.PartySize < 1 || draft.PartySize > s.MaxPartySize {
		return nil, &ValidationError{Message: "party_size out of range"}
	}
	if !s.Ledger.ValidSlot(draft.Time) {
		return nil, &ConfigurationError{Message: "time slot " + draft.Time + " is not on the slot grid"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.uniqueConfirmationNumber()
	if err != nil {
		return nil, err
	}

	if !s.Ledger.Book(draft.Date, draft.Time, id) {
		return nil, &SlotUnavailableError{Date: draft.Date, Slot: draft.Time}
	}

	entry := &reservationEntry{res: models.Reservation{
		ID:              id,
		Name:            draft.Name,
		PartySize:       draft.PartySize,
		Date:            draft.Date,
		Time:            draft.Time,
		Phone:           draft.Phone,
		SpecialRequests: draft.SpecialRequests,
		Status:          models.StatusConfirmed,
		CreatedAt:       time.Now().UTC(),
	}}
	s.records[id] = entry
	s.order = append(s.order, id)

	s.Logger.Info("reservation confirmed",
		zap.String("id", id),
		zap.String("date", draft.Date),
		zap.String("time", draft.Time),
		zap.Int("partySize", draft.PartySize))

	res := entry.res
	return &res, nil
}

// Modify applies changes to a confirmed reservation. When the date or time
// changes, the destination slot is booked first and the old slot released
// only after that book succeeds; a full destination leaves the original
// occupancy untouched.
func (s *DefaultReservationStore) Modify(id string, changes models.ReservationChanges) (*models.Reservation, error) {
	entry := s.entry(id)
	if entry == nil {
		return nil, &NotFoundError{ID: id}
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.res.Status != models.StatusConfirmed {
		return nil, &NotFoundError{ID: id}
	}

	if changes.PartySize != nil && (*changes.PartySize < 1 || *changes.PartySize > s.MaxPartySize) {
		return nil, &ValidationError{Message: "party_size out of range"}
	}

	newDate, newTime := entry.res.Date, entry.res.Time
	if changes.Date != nil && *changes.Date != "" {
		newDate = *changes.Date
	}
	if changes.Time != nil && *changes.Time != "" {
		newTime = *changes.Time
	}

	if newDate != entry.res.Date || newTime != entry.res.Time {
		if !s.Ledger.ValidSlot(newTime) {
			return nil, &ConfigurationError{Message: "time slot " + newTime + " is not on the slot grid"}
		}
		if !s.Ledger.Book(newDate, newTime, id) {
			return nil, &SlotUnavailableError{Date: newDate, Slot: newTime}
		}
		s.Ledger.Release(entry.res.Date, entry.res.Time, id)
		entry.res.Date = newDate
		entry.res.Time = newTime
	}

	if changes.PartySize != nil {
		entry.res.PartySize = *changes.PartySize
	}
	if changes.SpecialRequests != nil {
		entry.res.SpecialRequests = *changes.SpecialRequests
	}

	s.Logger.Info("reservation modified", zap.String("id", id))

	res := entry.res
	return &res, nil
}

// Cancel flips the reservation to cancelled and releases its slot. A
// second cancel finds no confirmed record and reports NotFoundError; the
// slot is never released twice.
func (s *DefaultReservationStore) Cancel(id string) (*models.Reservation, error) {
	entry := s.entry(id)
	if entry == nil {
		return nil, &NotFoundError{ID: id}
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.res.Status != models.StatusConfirmed {
		return nil, &NotFoundError{ID: id}
	}

	entry.res.Status = models.StatusCancelled
	s.Ledger.Release(entry.res.Date, entry.res.Time, id)

	s.Logger.Info("reservation cancelled", zap.String("id", id))

	res := entry.res
	return &res, nil
}

// Lookup matches confirmed reservations by phone substring or
// case-insensitive name substring. Supplying both is an inclusive-or.
func (s *DefaultReservationStore) Lookup(phone, name string) ([]models.Reservation, error) {
	if phone == "" && name == "" {
		return nil, &ValidationError{Message: "provide a phone number or a name to search"}
	}

	nameLower := strings.ToLower(name)
	var matches []models.Reservation
	for _, res := range s.snapshot() {
		if res.Status != models.StatusConfirmed {
			continue
		}
		if phone != "" && strings.Contains(res.Phone, phone) {
			matches = append(matches, res)
		} else if name != "" && strings.Contains(strings.ToLower(res.Name), nameLower) {
			matches = append(matches, res)
		}
	}
	return matches, nil
}

// ListByDate groups confirmed reservations by date, each date's list
// sorted by time slot. Slot labels are HH:MM, so lexical order is
// chronological.
func (s *DefaultReservationStore) ListByDate() models.DayReservations {
	grouped := make(map[string][]models.Reservation)
	total := 0
	for _, res := range s.snapshot() {
		if res.Status != models.StatusConfirmed {
			continue
		}
		grouped[res.Date] = append(grouped[res.Date], res)
		total++
	}
	for date := range grouped {
		list := grouped[date]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Time < list[j].Time })
		grouped[date] = list
	}
	return models.DayReservations{Reservations: grouped, TotalCount: total}
}

func (s *DefaultReservationStore) entry(id string) *reservationEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id]
}

// snapshot copies all records in confirmation order.
func (s *DefaultReservationStore) snapshot() []models.Reservation {
	s.mu.RLock()
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	entries := make([]*reservationEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, s.records[id])
	}
	s.mu.RUnlock()

	out := make([]models.Reservation, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.res)
		e.mu.Unlock()
	}
	return out
}
