package domain

// Respondent is one DHS survey individual. The record is constructed once by
// the loader; the exposure matcher and treatment labeler fill the derived
// fields in place and the record is never mutated afterward.
type Respondent struct {
	CaseID     string `json:"case_id" csv:"case_id"`
	SurveyYear int    `json:"survey_year" csv:"survey_year"`

	// BirthYear is nil when the raw value was missing or unparseable;
	// such respondents receive all-zero exposure without a panel lookup.
	BirthYear *int `json:"birth_year,omitempty" csv:"birth_year"`
	Age       *int `json:"age,omitempty" csv:"age"`

	// State is the standardized state of residence, empty when missing.
	State string `json:"state" csv:"state"`

	Weight float64 `json:"weight" csv:"weight"`

	// YearsSchooling is clipped to [0, 25] at load time.
	YearsSchooling    float64 `json:"years_schooling" csv:"years_schooling"`
	NoEducation       bool    `json:"no_education" csv:"no_education"`
	PrimaryComplete   bool    `json:"primary_complete" csv:"primary_complete"`
	SecondaryComplete bool    `json:"secondary_complete" csv:"secondary_complete"`

	WealthQuintile int  `json:"wealth_quintile" csv:"wealth_quintile"`
	Urban          bool `json:"urban" csv:"urban"`

	// School-age conflict exposure, computed against the state-year panel
	// over the window [BirthYear+6, BirthYear+18].
	ConflictExposureSchoolAge float64 `json:"conflict_exposure_school_age" csv:"conflict_exposure_school_age"`
	ViolentEventsSchoolAge    int     `json:"violent_events_school_age" csv:"violent_events_school_age"`
	BokoHaramEventsSchoolAge  int     `json:"boko_haram_events_school_age" csv:"boko_haram_events_school_age"`
	YearsExposedSchoolAge     int     `json:"years_exposed_school_age" csv:"years_exposed_school_age"`
	ExposedDuringSchoolAge    bool    `json:"exposed_during_school_age" csv:"exposed_during_school_age"`

	// Treatment and cohort indicators.
	HighConflict          bool `json:"high_conflict" csv:"high_conflict"`
	MediumConflict        bool `json:"medium_conflict" csv:"medium_conflict"`
	LowConflict           bool `json:"low_conflict" csv:"low_conflict"`
	AnyBokoHaramExposure  bool `json:"any_boko_haram_exposure" csv:"any_boko_haram_exposure"`
	PostBokoHaram         bool `json:"post_boko_haram" csv:"post_boko_haram"`
	PreBokoHaram          bool `json:"pre_boko_haram" csv:"pre_boko_haram"`
	Northeast             bool `json:"northeast" csv:"northeast"`
	NortheastXPost        bool `json:"northeast_x_post" csv:"northeast_x_post"`
	HighConflictXPost     bool `json:"high_conflict_x_post" csv:"high_conflict_x_post"`
	SchoolAge2009To2015   bool `json:"school_age_2009_2015" csv:"school_age_2009_2015"`

	// Analysis variables.
	AgeGroup       string `json:"age_group" csv:"age_group"`
	CohortGroup    string `json:"cohort_group" csv:"cohort_group"`
	StateCode      int    `json:"state_code" csv:"state_code"`
	SurveyYearCode int    `json:"survey_year_code" csv:"survey_year_code"`
}

// SchoolAgeWindow returns the inclusive [start, end] year range during which
// the respondent was of school age (6 through 18), and false when the birth
// year is unknown.
func (r *Respondent) SchoolAgeWindow() (start, end int, ok bool) {
	if r.BirthYear == nil {
		return 0, 0, false
	}
	return *r.BirthYear + 6, *r.BirthYear + 18, true
}
