// Package panel aggregates cleaned conflict events into the LGA-year and
// state-year panels the exposure matching runs against.
package panel

import (
	"log/slog"
	"sort"

	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

// Aggregator groups cleaned events into (state, LGA, year) panel cells and
// assigns conflict-intensity labels.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator. A nil logger falls back to
// slog.Default.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

type cellKey struct {
	State string
	LGA   string
	Year  int
}

// Aggregate builds one panel cell per (state, LGA, year) present in the
// events. Every event lands in exactly one cell, so summing TotalEvents over
// all cells reproduces the event count. Cells come back sorted by
// (state, LGA, year).
func (a *Aggregator) Aggregate(events []domain.Event) []domain.PanelCell {
	cells := make(map[cellKey]*domain.PanelCell)

	for _, e := range events {
		key := cellKey{State: e.State, LGA: e.LGA, Year: e.Year}
		cell, ok := cells[key]
		if !ok {
			cell = &domain.PanelCell{
				State:             e.State,
				LGA:               e.LGA,
				Year:              e.Year,
				ConflictIntensity: domain.IntensityNoConflict,
			}
			cells[key] = cell
		}

		cell.TotalEvents++
		cell.TotalFatalities += e.Fatalities
		if e.IsViolent {
			cell.ViolentEvents++
			cell.ViolentFatalities += e.Fatalities
		}
		if e.IsBokoHaram {
			cell.BokoHaramEvents++
			cell.BokoHaramFatalities += e.Fatalities
		}

		switch e.EventType {
		case "Battles":
			cell.Battles++
		case "Explosions/Remote violence":
			cell.Explosions++
		case "Violence against civilians":
			cell.ViolenceCivilians++
		}

		// First-seen coordinates for the cell.
		if cell.Latitude == nil && e.Latitude != nil {
			lat := *e.Latitude
			cell.Latitude = &lat
		}
		if cell.Longitude == nil && e.Longitude != nil {
			lon := *e.Longitude
			cell.Longitude = &lon
		}
	}

	out := make([]domain.PanelCell, 0, len(cells))
	for _, cell := range cells {
		cell.AnyConflict = cell.TotalEvents > 0
		cell.AnyViolentConflict = cell.ViolentEvents > 0
		cell.AnyBokoHaram = cell.BokoHaramEvents > 0
		out = append(out, *cell)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		if out[i].LGA != out[j].LGA {
			return out[i].LGA < out[j].LGA
		}
		return out[i].Year < out[j].Year
	})

	assignIntensity(out)

	a.logger.Info("panel aggregation complete",
		slog.Int("events", len(events)),
		slog.Int("cells", len(out)))

	return out
}

// intensityLabels maps an achieved bucket count to its ordered label set.
var intensityLabels = map[int][]domain.IntensityLabel{
	4: {domain.IntensityLow, domain.IntensityMedium, domain.IntensityHigh, domain.IntensityVeryHigh},
	3: {domain.IntensityLow, domain.IntensityMedium, domain.IntensityHigh},
	2: {domain.IntensityLow, domain.IntensityHigh},
	1: {domain.IntensityLow},
}

// assignIntensity labels cells with violent events by an equal-frequency
// split of the violent-event-count distribution. Quartile edges, tails
// included, are computed over the nonzero counts; duplicate edges merge
// adjacent buckets (4 collapses to 3, then 2) and the labels truncate to
// the achieved bucket count. When every nonzero count is identical the
// edges collapse entirely and a single Low bucket covers everything. Cells
// without violent events keep "No Conflict".
func assignIntensity(cells []domain.PanelCell) {
	var counts []float64
	for i := range cells {
		if cells[i].ViolentEvents > 0 {
			counts = append(counts, float64(cells[i].ViolentEvents))
		}
	}
	if len(counts) == 0 {
		return
	}

	sort.Float64s(counts)

	edges := quantileBinEdges(counts, 4)
	buckets := len(edges) - 1
	if buckets < 1 {
		buckets = 1
	}
	labels := intensityLabels[buckets]

	for i := range cells {
		if cells[i].ViolentEvents == 0 {
			continue
		}
		bucket := bucketOf(float64(cells[i].ViolentEvents), edges)
		cells[i].ConflictIntensity = labels[bucket]
		cells[i].HighConflict = cells[i].ConflictIntensity == domain.IntensityHigh ||
			cells[i].ConflictIntensity == domain.IntensityVeryHigh
	}
}

// quantileBinEdges computes the equal-frequency bin edges for the given
// bucket count over sorted values, minimum and maximum included. Duplicate
// quantile values are dropped, so a boundary that lands on a tail merges
// buckets instead of failing the split.
func quantileBinEdges(sorted []float64, buckets int) []float64 {
	edges := make([]float64, 0, buckets+1)
	for k := 0; k <= buckets; k++ {
		e := quantileSorted(sorted, float64(k)/float64(buckets))
		if len(edges) == 0 || e > edges[len(edges)-1] {
			edges = append(edges, e)
		}
	}
	return edges
}

// bucketOf returns the index of the bucket v falls in. Buckets are the
// half-open (lo, hi] intervals between consecutive edges, with the first
// bucket closed at the minimum.
func bucketOf(v float64, edges []float64) int {
	for i := 1; i < len(edges)-1; i++ {
		if v <= edges[i] {
			return i - 1
		}
	}
	if last := len(edges) - 2; last > 0 {
		return last
	}
	return 0
}

// quantileSorted computes the linearly interpolated q-quantile of sorted
// values, matching the interpolation used for the treatment thresholds.
func quantileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}
