package acled

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

// CleanerConfig carries the classification tables used by the cleaner.
// They are explicit data rather than embedded literals so tests can
// override them.
type CleanerConfig struct {
	// ViolentEventTypes is the fixed set of event-type categories counted
	// as violent.
	ViolentEventTypes []string

	// ArmedGroupKeywords are matched case-insensitively as substrings of
	// either actor field.
	ArmedGroupKeywords []string

	// DateLayouts are tried in order when parsing event dates.
	DateLayouts []string
}

// DefaultCleanerConfig returns the study's classification tables.
func DefaultCleanerConfig() CleanerConfig {
	return CleanerConfig{
		ViolentEventTypes: []string{
			"Battles",
			"Explosions/Remote violence",
			"Violence against civilians",
		},
		ArmedGroupKeywords: []string{
			"boko haram",
			"jama'atu ahlis",
			"iswap",
			"islamic state",
		},
		DateLayouts: []string{
			"2006-01-02",
			"02 January 2006",
			"2 January 2006",
			"02-January-2006",
			"2-January-2006",
			"01/02/2006",
		},
	}
}

// CleanReport counts what cleaning kept and dropped. Row-level problems are
// never fatal; they are excluded and tallied here.
type CleanReport struct {
	InputRows       int
	CleanRows       int
	DroppedBadDates int
	DroppedLocation int

	ViolentEvents   int
	BokoHaramEvents int
	FatalEvents     int
	TotalFatalities int
}

// Cleaner normalizes raw event rows into typed events with derived flags.
type Cleaner struct {
	cfg    CleanerConfig
	logger *slog.Logger
	titler cases.Caser
}

// NewCleaner creates a cleaner with the given classification tables.
func NewCleaner(cfg CleanerConfig, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		cfg:    cfg,
		logger: logger,
		titler: cases.Title(language.English),
	}
}

// Clean converts raw rows to typed events. Rows with unparseable dates or
// missing state/LGA are dropped and counted; everything else is normalized
// permissively. Cleaning already-clean values is a no-op, so the derived
// flags are idempotent under re-running.
func (c *Cleaner) Clean(raw []domain.RawEvent) ([]domain.Event, CleanReport) {
	report := CleanReport{InputRows: len(raw)}
	events := make([]domain.Event, 0, len(raw))

	for _, row := range raw {
		date, ok := c.parseDate(row.EventDate)
		if !ok {
			report.DroppedBadDates++
			continue
		}

		state := c.titleCase(row.Admin1)
		lga := row.Admin2
		if strings.TrimSpace(lga) == "" {
			lga = "Unknown"
		}
		lga = c.titleCase(lga)

		if state == "" || lga == "" {
			report.DroppedLocation++
			continue
		}

		fatalities := parseFatalities(row.Fatalities)

		event := domain.Event{
			EventID:       strings.TrimSpace(row.EventID),
			EventDate:     date,
			Year:          date.Year(),
			Month:         int(date.Month()),
			EventType:     strings.TrimSpace(row.EventType),
			State:         state,
			LGA:           lga,
			Location:      c.titleCase(row.Location),
			Latitude:      parseCoordinate(row.Latitude),
			Longitude:     parseCoordinate(row.Longitude),
			Fatalities:    fatalities,
			Actor1:        strings.TrimSpace(row.Actor1),
			Actor2:        strings.TrimSpace(row.Actor2),
			HasFatalities: fatalities > 0,
		}
		event.IsViolent = c.isViolent(event.EventType)
		event.IsBokoHaram = c.isArmedGroup(event.Actor1, event.Actor2)

		if event.IsViolent {
			report.ViolentEvents++
		}
		if event.IsBokoHaram {
			report.BokoHaramEvents++
		}
		if event.HasFatalities {
			report.FatalEvents++
		}
		report.TotalFatalities += fatalities

		events = append(events, event)
	}

	report.CleanRows = len(events)

	c.logger.Info("cleaning complete",
		slog.Int("input_rows", report.InputRows),
		slog.Int("clean_rows", report.CleanRows),
		slog.Int("dropped_bad_dates", report.DroppedBadDates),
		slog.Int("dropped_missing_location", report.DroppedLocation),
		slog.Int("violent_events", report.ViolentEvents),
		slog.Int("boko_haram_events", report.BokoHaramEvents),
		slog.Int("total_fatalities", report.TotalFatalities))

	return events, report
}

// parseDate tries each configured layout in order.
func (c *Cleaner) parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range c.cfg.DateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// titleCase trims and title-cases a free-text name field.
func (c *Cleaner) titleCase(value string) string {
	return c.titler.String(strings.TrimSpace(value))
}

func (c *Cleaner) isViolent(eventType string) bool {
	for _, t := range c.cfg.ViolentEventTypes {
		if eventType == t {
			return true
		}
	}
	return false
}

func (c *Cleaner) isArmedGroup(actor1, actor2 string) bool {
	a1 := strings.ToLower(actor1)
	a2 := strings.ToLower(actor2)
	for _, kw := range c.cfg.ArmedGroupKeywords {
		if strings.Contains(a1, kw) || strings.Contains(a2, kw) {
			return true
		}
	}
	return false
}

// parseFatalities parses permissively; anything unparseable counts as zero.
func parseFatalities(value string) int {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return 0
	}
	if n, err := strconv.Atoi(value); err == nil && n >= 0 {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
		return int(f)
	}
	return 0
}

// parseCoordinate returns nil on failure; coordinates are optional.
func parseCoordinate(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}
