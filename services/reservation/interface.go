package reservation

import "bobbystable/models"

// ReservationStore defines the canonical reservation record operations.
// All slot occupancy side effects go through the SlotLedger it owns a
// reference to; callers never touch the ledger for record mutations.
type ReservationStore interface {
	// Confirm validates a completed draft, re-checks slot availability,
	// books the slot, and persists the reservation.
	Confirm(draft models.ReservationDraft) (*models.Reservation, error)
	// Modify updates an existing confirmed reservation. A date/time change
	// books the destination slot before releasing the old one.
	Modify(id string, changes models.ReservationChanges) (*models.Reservation, error)
	// Cancel flips a confirmed reservation to cancelled and releases its slot.
	Cancel(id string) (*models.Reservation, error)
	// Lookup returns confirmed reservations matching phone (substring) or
	// name (case-insensitive substring), in insertion order.
	Lookup(phone, name string) ([]models.Reservation, error)
	// ListByDate groups confirmed reservations by date for the dashboard.
	ListByDate() models.DayReservations
}
