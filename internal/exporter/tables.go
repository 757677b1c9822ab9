package exporter

import (
	"strconv"
	"time"

	apperrors "github.com/jarretangbazo/economics-senior-thesis/internal/errors"
	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

// Cell encoding shared by every artifact: booleans as 1/0, nil pointers as
// the empty string, dates in ISO form. Readers reverse the same encoding so
// that a written artifact loads back identically.

const dateLayout = "2006-01-02"

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatFloatPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

func formatIntPtr(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func parseBoolCell(s string) bool {
	return s == "1" || s == "true"
}

func parseIntCell(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseFloatCell(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseIntPtrCell(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func parseFloatPtrCell(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// RawEventHeaders is the column order of the combined raw-events artifact.
var RawEventHeaders = []string{
	"event_id_cnty", "event_date", "event_type", "admin1", "admin2",
	"location", "latitude", "longitude", "fatalities", "actor1", "actor2",
}

// WriteRawEvents writes the combined multi-year raw extract.
func WriteRawEvents(path string, events []domain.RawEvent) error {
	records := make([][]string, 0, len(events))
	for _, e := range events {
		records = append(records, []string{
			e.EventID, e.EventDate, e.EventType, e.Admin1, e.Admin2,
			e.Location, e.Latitude, e.Longitude, e.Fatalities, e.Actor1, e.Actor2,
		})
	}
	return WriteSimpleCSV(path, RawEventHeaders, records)
}

// CleanEventHeaders is the column order of the cleaned-events artifact.
var CleanEventHeaders = []string{
	"event_id_cnty", "event_date", "year", "month", "event_type",
	"state", "lga", "location", "latitude", "longitude",
	"fatalities", "actor1", "actor2",
	"is_violent", "is_boko_haram", "has_fatalities",
}

// WriteCleanEvents writes the cleaned, typed event table.
func WriteCleanEvents(path string, events []domain.Event) error {
	records := make([][]string, 0, len(events))
	for _, e := range events {
		records = append(records, []string{
			e.EventID,
			e.EventDate.Format(dateLayout),
			strconv.Itoa(e.Year),
			strconv.Itoa(e.Month),
			e.EventType,
			e.State,
			e.LGA,
			e.Location,
			formatFloatPtr(e.Latitude),
			formatFloatPtr(e.Longitude),
			strconv.Itoa(e.Fatalities),
			e.Actor1,
			e.Actor2,
			formatBool(e.IsViolent),
			formatBool(e.IsBokoHaram),
			formatBool(e.HasFatalities),
		})
	}
	return WriteSimpleCSV(path, CleanEventHeaders, records)
}

// ReadCleanEvents loads the cleaned-events artifact back into typed form.
func ReadCleanEvents(path string) ([]domain.Event, error) {
	table, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	col, err := requireColumns(table, CleanEventHeaders)
	if err != nil {
		return nil, err
	}

	events := make([]domain.Event, 0, len(table.Rows))
	for _, row := range table.Rows {
		get := cellReader(row, col)
		date, err := time.Parse(dateLayout, get("event_date"))
		if err != nil {
			return nil, apperrors.NewParsingError("invalid event_date in clean events", err)
		}
		events = append(events, domain.Event{
			EventID:       get("event_id_cnty"),
			EventDate:     date,
			Year:          parseIntCell(get("year")),
			Month:         parseIntCell(get("month")),
			EventType:     get("event_type"),
			State:         get("state"),
			LGA:           get("lga"),
			Location:      get("location"),
			Latitude:      parseFloatPtrCell(get("latitude")),
			Longitude:     parseFloatPtrCell(get("longitude")),
			Fatalities:    parseIntCell(get("fatalities")),
			Actor1:        get("actor1"),
			Actor2:        get("actor2"),
			IsViolent:     parseBoolCell(get("is_violent")),
			IsBokoHaram:   parseBoolCell(get("is_boko_haram")),
			HasFatalities: parseBoolCell(get("has_fatalities")),
		})
	}
	return events, nil
}

// PanelHeaders is the column order of the LGA-year panel artifact.
var PanelHeaders = []string{
	"state", "lga", "year",
	"total_events", "violent_events", "boko_haram_events",
	"total_fatalities", "violent_fatalities", "boko_haram_fatalities",
	"battles", "explosions", "violence_civilians",
	"latitude", "longitude",
	"any_conflict", "any_violent_conflict", "any_boko_haram",
	"conflict_intensity", "high_conflict",
	"cum_violent_events", "cum_fatalities", "cum_boko_haram_events",
	"first_violent_year", "years_since_first_conflict", "ever_exposed",
}

// WritePanel writes the LGA-year panel.
func WritePanel(path string, cells []domain.PanelCell) error {
	records := make([][]string, 0, len(cells))
	for _, c := range cells {
		records = append(records, []string{
			c.State, c.LGA, strconv.Itoa(c.Year),
			strconv.Itoa(c.TotalEvents),
			strconv.Itoa(c.ViolentEvents),
			strconv.Itoa(c.BokoHaramEvents),
			strconv.Itoa(c.TotalFatalities),
			strconv.Itoa(c.ViolentFatalities),
			strconv.Itoa(c.BokoHaramFatalities),
			strconv.Itoa(c.Battles),
			strconv.Itoa(c.Explosions),
			strconv.Itoa(c.ViolenceCivilians),
			formatFloatPtr(c.Latitude),
			formatFloatPtr(c.Longitude),
			formatBool(c.AnyConflict),
			formatBool(c.AnyViolentConflict),
			formatBool(c.AnyBokoHaram),
			string(c.ConflictIntensity),
			formatBool(c.HighConflict),
			strconv.Itoa(c.CumViolentEvents),
			strconv.Itoa(c.CumFatalities),
			strconv.Itoa(c.CumBokoHaramEvents),
			formatIntPtr(c.FirstViolentYear),
			strconv.Itoa(c.YearsSinceFirstConflict),
			formatBool(c.EverExposed),
		})
	}
	return WriteSimpleCSV(path, PanelHeaders, records)
}

// ReadPanel loads the LGA-year panel back into typed form.
func ReadPanel(path string) ([]domain.PanelCell, error) {
	table, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	col, err := requireColumns(table, PanelHeaders)
	if err != nil {
		return nil, err
	}

	cells := make([]domain.PanelCell, 0, len(table.Rows))
	for _, row := range table.Rows {
		get := cellReader(row, col)
		cells = append(cells, domain.PanelCell{
			State:                   get("state"),
			LGA:                     get("lga"),
			Year:                    parseIntCell(get("year")),
			TotalEvents:             parseIntCell(get("total_events")),
			ViolentEvents:           parseIntCell(get("violent_events")),
			BokoHaramEvents:         parseIntCell(get("boko_haram_events")),
			TotalFatalities:         parseIntCell(get("total_fatalities")),
			ViolentFatalities:       parseIntCell(get("violent_fatalities")),
			BokoHaramFatalities:     parseIntCell(get("boko_haram_fatalities")),
			Battles:                 parseIntCell(get("battles")),
			Explosions:              parseIntCell(get("explosions")),
			ViolenceCivilians:       parseIntCell(get("violence_civilians")),
			Latitude:                parseFloatPtrCell(get("latitude")),
			Longitude:               parseFloatPtrCell(get("longitude")),
			AnyConflict:             parseBoolCell(get("any_conflict")),
			AnyViolentConflict:      parseBoolCell(get("any_violent_conflict")),
			AnyBokoHaram:            parseBoolCell(get("any_boko_haram")),
			ConflictIntensity:       domain.IntensityLabel(get("conflict_intensity")),
			HighConflict:            parseBoolCell(get("high_conflict")),
			CumViolentEvents:        parseIntCell(get("cum_violent_events")),
			CumFatalities:           parseIntCell(get("cum_fatalities")),
			CumBokoHaramEvents:      parseIntCell(get("cum_boko_haram_events")),
			FirstViolentYear:        parseIntPtrCell(get("first_violent_year")),
			YearsSinceFirstConflict: parseIntCell(get("years_since_first_conflict")),
			EverExposed:             parseBoolCell(get("ever_exposed")),
		})
	}
	return cells, nil
}

// StateYearHeaders is the column order of the state-year artifact.
var StateYearHeaders = []string{
	"state", "year",
	"total_events", "violent_events", "boko_haram_events",
	"total_fatalities", "violent_fatalities", "boko_haram_fatalities",
	"any_violent_conflict", "any_boko_haram",
}

// WriteStateYear writes the state-year conflict summary.
func WriteStateYear(path string, cells []domain.StateYearCell) error {
	records := make([][]string, 0, len(cells))
	for _, c := range cells {
		records = append(records, []string{
			c.State, strconv.Itoa(c.Year),
			strconv.Itoa(c.TotalEvents),
			strconv.Itoa(c.ViolentEvents),
			strconv.Itoa(c.BokoHaramEvents),
			strconv.Itoa(c.TotalFatalities),
			strconv.Itoa(c.ViolentFatalities),
			strconv.Itoa(c.BokoHaramFatalities),
			formatBool(c.AnyViolentConflict),
			formatBool(c.AnyBokoHaram),
		})
	}
	return WriteSimpleCSV(path, StateYearHeaders, records)
}

// ReadStateYear loads the state-year artifact back into typed form.
func ReadStateYear(path string) ([]domain.StateYearCell, error) {
	table, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	col, err := requireColumns(table, StateYearHeaders)
	if err != nil {
		return nil, err
	}

	cells := make([]domain.StateYearCell, 0, len(table.Rows))
	for _, row := range table.Rows {
		get := cellReader(row, col)
		cells = append(cells, domain.StateYearCell{
			State:               get("state"),
			Year:                parseIntCell(get("year")),
			TotalEvents:         parseIntCell(get("total_events")),
			ViolentEvents:       parseIntCell(get("violent_events")),
			BokoHaramEvents:     parseIntCell(get("boko_haram_events")),
			TotalFatalities:     parseIntCell(get("total_fatalities")),
			ViolentFatalities:   parseIntCell(get("violent_fatalities")),
			BokoHaramFatalities: parseIntCell(get("boko_haram_fatalities")),
			AnyViolentConflict:  parseBoolCell(get("any_violent_conflict")),
			AnyBokoHaram:        parseBoolCell(get("any_boko_haram")),
		})
	}
	return cells, nil
}

// AnalysisHeaders is the column order of the merged analysis dataset.
var AnalysisHeaders = []string{
	"case_id", "survey_year", "birth_year", "age", "state", "weight",
	"years_schooling", "no_education", "primary_complete", "secondary_complete",
	"wealth_quintile", "urban",
	"conflict_exposure_school_age", "violent_events_school_age",
	"boko_haram_events_school_age", "years_exposed_school_age",
	"exposed_during_school_age",
	"high_conflict", "medium_conflict", "low_conflict",
	"any_boko_haram_exposure", "post_boko_haram", "pre_boko_haram",
	"northeast", "northeast_x_post", "high_conflict_x_post",
	"school_age_2009_2015",
	"age_group", "cohort_group", "state_code", "survey_year_code",
}

// WriteAnalysisDataset writes the respondent-level analysis dataset.
func WriteAnalysisDataset(path string, respondents []domain.Respondent) error {
	records := make([][]string, 0, len(respondents))
	for _, r := range respondents {
		records = append(records, []string{
			r.CaseID,
			strconv.Itoa(r.SurveyYear),
			formatIntPtr(r.BirthYear),
			formatIntPtr(r.Age),
			r.State,
			formatFloat(r.Weight),
			formatFloat(r.YearsSchooling),
			formatBool(r.NoEducation),
			formatBool(r.PrimaryComplete),
			formatBool(r.SecondaryComplete),
			strconv.Itoa(r.WealthQuintile),
			formatBool(r.Urban),
			formatFloat(r.ConflictExposureSchoolAge),
			strconv.Itoa(r.ViolentEventsSchoolAge),
			strconv.Itoa(r.BokoHaramEventsSchoolAge),
			strconv.Itoa(r.YearsExposedSchoolAge),
			formatBool(r.ExposedDuringSchoolAge),
			formatBool(r.HighConflict),
			formatBool(r.MediumConflict),
			formatBool(r.LowConflict),
			formatBool(r.AnyBokoHaramExposure),
			formatBool(r.PostBokoHaram),
			formatBool(r.PreBokoHaram),
			formatBool(r.Northeast),
			formatBool(r.NortheastXPost),
			formatBool(r.HighConflictXPost),
			formatBool(r.SchoolAge2009To2015),
			r.AgeGroup,
			r.CohortGroup,
			strconv.Itoa(r.StateCode),
			strconv.Itoa(r.SurveyYearCode),
		})
	}
	return WriteSimpleCSV(path, AnalysisHeaders, records)
}

// ReadAnalysisDataset loads the analysis dataset back into typed form.
func ReadAnalysisDataset(path string) ([]domain.Respondent, error) {
	table, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	col, err := requireColumns(table, AnalysisHeaders)
	if err != nil {
		return nil, err
	}

	respondents := make([]domain.Respondent, 0, len(table.Rows))
	for _, row := range table.Rows {
		get := cellReader(row, col)
		respondents = append(respondents, domain.Respondent{
			CaseID:                    get("case_id"),
			SurveyYear:                parseIntCell(get("survey_year")),
			BirthYear:                 parseIntPtrCell(get("birth_year")),
			Age:                       parseIntPtrCell(get("age")),
			State:                     get("state"),
			Weight:                    parseFloatCell(get("weight")),
			YearsSchooling:            parseFloatCell(get("years_schooling")),
			NoEducation:               parseBoolCell(get("no_education")),
			PrimaryComplete:           parseBoolCell(get("primary_complete")),
			SecondaryComplete:         parseBoolCell(get("secondary_complete")),
			WealthQuintile:            parseIntCell(get("wealth_quintile")),
			Urban:                     parseBoolCell(get("urban")),
			ConflictExposureSchoolAge: parseFloatCell(get("conflict_exposure_school_age")),
			ViolentEventsSchoolAge:    parseIntCell(get("violent_events_school_age")),
			BokoHaramEventsSchoolAge:  parseIntCell(get("boko_haram_events_school_age")),
			YearsExposedSchoolAge:     parseIntCell(get("years_exposed_school_age")),
			ExposedDuringSchoolAge:    parseBoolCell(get("exposed_during_school_age")),
			HighConflict:              parseBoolCell(get("high_conflict")),
			MediumConflict:            parseBoolCell(get("medium_conflict")),
			LowConflict:               parseBoolCell(get("low_conflict")),
			AnyBokoHaramExposure:      parseBoolCell(get("any_boko_haram_exposure")),
			PostBokoHaram:             parseBoolCell(get("post_boko_haram")),
			PreBokoHaram:              parseBoolCell(get("pre_boko_haram")),
			Northeast:                 parseBoolCell(get("northeast")),
			NortheastXPost:            parseBoolCell(get("northeast_x_post")),
			HighConflictXPost:         parseBoolCell(get("high_conflict_x_post")),
			SchoolAge2009To2015:       parseBoolCell(get("school_age_2009_2015")),
			AgeGroup:                  get("age_group"),
			CohortGroup:               get("cohort_group"),
			StateCode:                 parseIntCell(get("state_code")),
			SurveyYearCode:            parseIntCell(get("survey_year_code")),
		})
	}
	return respondents, nil
}

// requireColumns resolves every named column, failing on the first one the
// table lacks.
func requireColumns(table *Table, names []string) (map[string]int, error) {
	col := make(map[string]int, len(names))
	for _, name := range names {
		i := table.ColumnIndex(name)
		if i < 0 {
			return nil, apperrors.NewValidationError("missing column: "+name, nil)
		}
		col[name] = i
	}
	return col, nil
}

func cellReader(row []string, col map[string]int) func(string) string {
	return func(name string) string {
		i := col[name]
		if i < len(row) {
			return row[i]
		}
		return ""
	}
}
