// internal/domain/entity/assist.go
package entity

// FlightDraft is the assistant's best-effort structured reading of a
// free-text flight description. Every field may be empty; the caller decides
// the fallbacks.
type FlightDraft struct {
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	Date      string `json:"date"`
	Airline   string `json:"airline"`
}

// TravelerProfile carries the narrative the assistant wrote about the flight
// history. Fallback is set when the assistant could not be reached and the
// fixed substitute text was used instead.
type TravelerProfile struct {
	Profile  string `json:"profile"`
	Fallback bool   `json:"fallback"`
}
