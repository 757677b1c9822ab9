package panel

import (
	"log/slog"
	"sort"

	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

// AggregateStateYear sums panel cells across LGAs sharing a (standardized)
// state. Count and fatality fields sum; the any-conflict flags take the
// series maximum, i.e. true when any LGA in the state-year had one.
func AggregateStateYear(cells []domain.PanelCell, logger *slog.Logger) []domain.StateYearCell {
	if logger == nil {
		logger = slog.Default()
	}

	type key struct {
		State string
		Year  int
	}

	agg := make(map[key]*domain.StateYearCell)
	for i := range cells {
		state := StandardizeState(cells[i].State)
		if state == "" {
			continue
		}
		k := key{State: state, Year: cells[i].Year}
		cell, ok := agg[k]
		if !ok {
			cell = &domain.StateYearCell{State: state, Year: cells[i].Year}
			agg[k] = cell
		}

		cell.TotalEvents += cells[i].TotalEvents
		cell.ViolentEvents += cells[i].ViolentEvents
		cell.BokoHaramEvents += cells[i].BokoHaramEvents
		cell.TotalFatalities += cells[i].TotalFatalities
		cell.ViolentFatalities += cells[i].ViolentFatalities
		cell.BokoHaramFatalities += cells[i].BokoHaramFatalities
		cell.AnyViolentConflict = cell.AnyViolentConflict || cells[i].AnyViolentConflict
		cell.AnyBokoHaram = cell.AnyBokoHaram || cells[i].AnyBokoHaram
	}

	out := make([]domain.StateYearCell, 0, len(agg))
	for _, cell := range agg {
		out = append(out, *cell)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].Year < out[j].Year
	})

	logger.Info("state-year aggregation complete",
		slog.Int("lga_cells", len(cells)),
		slog.Int("state_year_cells", len(out)))

	return out
}
