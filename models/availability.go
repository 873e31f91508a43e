package models

// SlotAvailability is the answer to "can this date and time still take a
// reservation", with the remaining headroom.
type SlotAvailability struct {
	Available bool   `json:"available"`
	Remaining int    `json:"remaining"`
	Reason    string `json:"reason,omitempty"` // set when not available
}

// SlotStatus is the dashboard view of one time slot on a date.
type SlotStatus struct {
	Available int `json:"available"`
	Total     int `json:"total"`
}

// DayReservations is the dashboard view of all confirmed reservations,
// grouped by date with each date's list sorted by time slot.
type DayReservations struct {
	Reservations map[string][]Reservation `json:"reservations"`
	TotalCount   int                      `json:"total_count"`
}
