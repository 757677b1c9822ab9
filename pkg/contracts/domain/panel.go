package domain

// IntensityLabel is the ordinal conflict-intensity bucket assigned to a
// panel cell. Cells with zero violent events keep IntensityNoConflict, which
// is distinct from the lowest bucket of the equal-frequency split.
type IntensityLabel string

const (
	IntensityNoConflict IntensityLabel = "No Conflict"
	IntensityLow        IntensityLabel = "Low"
	IntensityMedium     IntensityLabel = "Medium"
	IntensityHigh       IntensityLabel = "High"
	IntensityVeryHigh   IntensityLabel = "Very High"
)

// PanelCell aggregates all cleaned events for one (state, LGA, year)
// combination. Exactly one cell exists per combination present in the
// cleaned events.
type PanelCell struct {
	State string `json:"state" csv:"state"`
	LGA   string `json:"lga" csv:"lga"`
	Year  int    `json:"year" csv:"year"`

	TotalEvents     int `json:"total_events" csv:"total_events"`
	ViolentEvents   int `json:"violent_events" csv:"violent_events"`
	BokoHaramEvents int `json:"boko_haram_events" csv:"boko_haram_events"`

	TotalFatalities     int `json:"total_fatalities" csv:"total_fatalities"`
	ViolentFatalities   int `json:"violent_fatalities" csv:"violent_fatalities"`
	BokoHaramFatalities int `json:"boko_haram_fatalities" csv:"boko_haram_fatalities"`

	// Per-category event counts.
	Battles           int `json:"battles" csv:"battles"`
	Explosions        int `json:"explosions" csv:"explosions"`
	ViolenceCivilians int `json:"violence_civilians" csv:"violence_civilians"`

	// Coordinates of the first event seen in the cell; nil when the first
	// event had no parseable coordinates.
	Latitude  *float64 `json:"latitude,omitempty" csv:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" csv:"longitude"`

	AnyConflict        bool `json:"any_conflict" csv:"any_conflict"`
	AnyViolentConflict bool `json:"any_violent_conflict" csv:"any_violent_conflict"`
	AnyBokoHaram       bool `json:"any_boko_haram" csv:"any_boko_haram"`

	ConflictIntensity IntensityLabel `json:"conflict_intensity" csv:"conflict_intensity"`
	HighConflict      bool           `json:"high_conflict" csv:"high_conflict"`

	// Cumulative fields, filled in chronological order within the
	// (state, LGA) series by the cumulative builder.
	CumViolentEvents   int `json:"cum_violent_events" csv:"cum_violent_events"`
	CumFatalities      int `json:"cum_fatalities" csv:"cum_fatalities"`
	CumBokoHaramEvents int `json:"cum_boko_haram_events" csv:"cum_boko_haram_events"`

	// FirstViolentYear is nil for series that never record a violent event.
	FirstViolentYear        *int `json:"first_violent_year,omitempty" csv:"first_violent_year"`
	YearsSinceFirstConflict int  `json:"years_since_first_conflict" csv:"years_since_first_conflict"`
	EverExposed             bool `json:"ever_exposed" csv:"ever_exposed"`
}

// StateYearCell is a panel cell summed across all LGAs sharing a state.
// DHS respondents carry only their state of residence, so exposure matching
// happens at this level.
type StateYearCell struct {
	State string `json:"state" csv:"state"`
	Year  int    `json:"year" csv:"year"`

	TotalEvents     int `json:"total_events" csv:"total_events"`
	ViolentEvents   int `json:"violent_events" csv:"violent_events"`
	BokoHaramEvents int `json:"boko_haram_events" csv:"boko_haram_events"`

	TotalFatalities     int `json:"total_fatalities" csv:"total_fatalities"`
	ViolentFatalities   int `json:"violent_fatalities" csv:"violent_fatalities"`
	BokoHaramFatalities int `json:"boko_haram_fatalities" csv:"boko_haram_fatalities"`

	AnyViolentConflict bool `json:"any_violent_conflict" csv:"any_violent_conflict"`
	AnyBokoHaram       bool `json:"any_boko_haram" csv:"any_boko_haram"`
}
