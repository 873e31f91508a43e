package models

// Event types relayed to the dashboard.
const (
	EventReservationConfirmed = "reservation_confirmed"
	EventReservationModified  = "reservation_modified"
	EventReservationCancelled = "reservation_cancelled"
)

// Event is a notification emitted by a completed reservation operation.
// Confirmed and modified events carry the full record; cancelled events
// carry only the id.
type Event struct {
	Type          string       `json:"type"`
	Reservation   *Reservation `json:"reservation,omitempty"`
	ReservationID string       `json:"reservation_id,omitempty"`
}
