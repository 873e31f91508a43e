package models

// Intent names the structured tool invocations the upstream voice platform
// produces, one per dialogue turn. The set is closed: the engine only
// dispatches intents declared for the session's current context and step.
type Intent string

const (
	IntentStartNewReservation Intent = "start_new_reservation"
	IntentSetName             Intent = "set_reservation_name"
	IntentSetPartySize        Intent = "set_party_size"
	IntentSetDate             Intent = "set_reservation_date"
	IntentSetTime             Intent = "set_reservation_time"
	IntentSetPhone            Intent = "set_phone_number"
	IntentSetSpecialRequests  Intent = "set_special_requests"
	IntentCheckAvailability   Intent = "check_availability"
	IntentConfirmReservation  Intent = "confirm_reservation"
	IntentLookupReservation   Intent = "lookup_reservation"
	IntentModifyReservation   Intent = "modify_reservation"
	IntentCancelExisting      Intent = "cancel_existing_reservation"
	IntentCancelFlow          Intent = "cancel_flow"
)

// IntentArgs carries the arguments of a single intent. Pointer fields
// distinguish "absent" from zero values, which matters for modify.
type IntentArgs struct {
	Name            string  `json:"name,omitempty"`
	PartySize       *int    `json:"party_size,omitempty"`
	Date            string  `json:"date,omitempty"`
	Time            string  `json:"time,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	SpecialRequests *string `json:"requests,omitempty"`
}

// TurnResult is what one processed turn hands back to the transport layer:
// the spoken response, the session's next position, and any events to relay
// to listening dashboards.
type TurnResult struct {
	Response    string  `json:"response"`
	NextContext string  `json:"context"`
	NextStep    string  `json:"step"`
	Events      []Event `json:"events,omitempty"`
}
