package domain

import (
	"time"
)

// RawEvent is one row of an ACLED yearly extract before any typing or
// normalization. All cells are kept as strings so that malformed values can
// be handled (dropped or zero-filled) by the cleaner instead of failing the
// load.
type RawEvent struct {
	EventID    string `json:"event_id_cnty" csv:"event_id_cnty"`
	EventDate  string `json:"event_date" csv:"event_date"`
	EventType  string `json:"event_type" csv:"event_type"`
	Admin1     string `json:"admin1" csv:"admin1"`
	Admin2     string `json:"admin2" csv:"admin2"`
	Location   string `json:"location" csv:"location"`
	Latitude   string `json:"latitude" csv:"latitude"`
	Longitude  string `json:"longitude" csv:"longitude"`
	Fatalities string `json:"fatalities" csv:"fatalities"`
	Actor1     string `json:"actor1" csv:"actor1"`
	Actor2     string `json:"actor2" csv:"actor2"`
}

// Event is one cleaned conflict incident. Records are immutable after the
// cleaner constructs them.
type Event struct {
	EventID   string    `json:"event_id_cnty" csv:"event_id_cnty"`
	EventDate time.Time `json:"event_date" csv:"event_date"`
	Year      int       `json:"year" csv:"year"`
	Month     int       `json:"month" csv:"month"`
	EventType string    `json:"event_type" csv:"event_type"`

	// State and LGA are the title-cased admin1/admin2 names. Both are
	// non-empty for every retained event.
	State    string `json:"state" csv:"state"`
	LGA      string `json:"lga" csv:"lga"`
	Location string `json:"location" csv:"location"`

	// Latitude/Longitude are nil when the raw value did not parse.
	Latitude  *float64 `json:"latitude,omitempty" csv:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" csv:"longitude"`

	Fatalities int    `json:"fatalities" csv:"fatalities"`
	Actor1     string `json:"actor1" csv:"actor1"`
	Actor2     string `json:"actor2" csv:"actor2"`

	// Derived flags, each a deterministic function of the fields above.
	IsViolent     bool `json:"is_violent" csv:"is_violent"`
	IsBokoHaram   bool `json:"is_boko_haram" csv:"is_boko_haram"`
	HasFatalities bool `json:"has_fatalities" csv:"has_fatalities"`
}
