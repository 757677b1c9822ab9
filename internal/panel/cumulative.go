package panel

import (
	"log/slog"
	"sort"

	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

// BuildCumulative fills the running-sum fields of each (state, LGA) series in
// chronological order and returns the cells sorted by (state, LGA, year).
//
// FirstViolentYear is the earliest year in the series with a violent event,
// nil for series that never record one. YearsSinceFirstConflict is clipped at
// zero and stays zero for never-exposed series rather than going null; that
// matches how the measure is consumed downstream.
func BuildCumulative(cells []domain.PanelCell, logger *slog.Logger) []domain.PanelCell {
	if logger == nil {
		logger = slog.Default()
	}

	out := make([]domain.PanelCell, len(cells))
	copy(out, cells)

	sort.Slice(out, func(i, j int) bool {
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		if out[i].LGA != out[j].LGA {
			return out[i].LGA < out[j].LGA
		}
		return out[i].Year < out[j].Year
	})

	type seriesKey struct {
		State string
		LGA   string
	}

	// First pass: earliest violent year per series.
	firstViolent := make(map[seriesKey]int)
	for i := range out {
		if out[i].ViolentEvents == 0 {
			continue
		}
		key := seriesKey{out[i].State, out[i].LGA}
		if year, ok := firstViolent[key]; !ok || out[i].Year < year {
			firstViolent[key] = out[i].Year
		}
	}

	// Second pass: running sums in year order within each series.
	var current seriesKey
	var cumViolent, cumFatalities, cumBokoHaram int
	everExposedSeries := 0

	for i := range out {
		key := seriesKey{out[i].State, out[i].LGA}
		if i == 0 || key != current {
			current = key
			cumViolent, cumFatalities, cumBokoHaram = 0, 0, 0
			if _, ok := firstViolent[key]; ok {
				everExposedSeries++
			}
		}

		cumViolent += out[i].ViolentEvents
		cumFatalities += out[i].TotalFatalities
		cumBokoHaram += out[i].BokoHaramEvents

		out[i].CumViolentEvents = cumViolent
		out[i].CumFatalities = cumFatalities
		out[i].CumBokoHaramEvents = cumBokoHaram
		out[i].EverExposed = cumViolent > 0

		if first, ok := firstViolent[key]; ok {
			firstCopy := first
			out[i].FirstViolentYear = &firstCopy
			if out[i].Year > first {
				out[i].YearsSinceFirstConflict = out[i].Year - first
			} else {
				out[i].YearsSinceFirstConflict = 0
			}
		} else {
			out[i].FirstViolentYear = nil
			out[i].YearsSinceFirstConflict = 0
		}
	}

	logger.Info("cumulative exposure measures built",
		slog.Int("cells", len(out)),
		slog.Int("series_ever_exposed", everExposedSeries))

	return out
}
