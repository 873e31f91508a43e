package models

import "time"

// Reservation statuses.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Reservation represents a confirmed (or later cancelled) booking record.
// Cancelled reservations are kept for history; they are never deleted.
type Reservation struct {
	ID              string    `json:"id"`                         // 6-digit confirmation number
	Name            string    `json:"name"`                       // Guest name
	PartySize       int       `json:"party_size"`                 // Number of guests
	Date            string    `json:"date"`                       // "YYYY-MM-DD"
	Time            string    `json:"time"`                       // One of the configured time slots, e.g. "19:00"
	Phone           string    `json:"phone"`                      // Contact number
	SpecialRequests string    `json:"special_requests,omitempty"` // Free-form notes, may be empty
	Status          string    `json:"status"`                     // StatusConfirmed or StatusCancelled
	CreatedAt       time.Time `json:"created_at"`
}

// ReservationDraft is the partially filled reservation a session collects
// one field at a time. Nothing is required until confirmation.
type ReservationDraft struct {
	Name            string `json:"name,omitempty"`
	PartySize       int    `json:"party_size,omitempty"`
	Date            string `json:"date,omitempty"`
	Time            string `json:"time,omitempty"`
	Phone           string `json:"phone,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
	RequestsTaken   bool   `json:"requests_taken,omitempty"` // true once special requests were asked, even if empty
}

// ReservationChanges carries the fields a modify operation may update.
// Nil pointers mean "leave unchanged".
type ReservationChanges struct {
	PartySize       *int    `json:"party_size,omitempty"`
	Date            *string `json:"date,omitempty"`
	Time            *string `json:"time,omitempty"`
	SpecialRequests *string `json:"special_requests,omitempty"`
}
