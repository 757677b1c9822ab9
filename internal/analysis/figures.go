package analysis

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	apperrors "github.com/jarretangbazo/economics-senior-thesis/internal/errors"
	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

// Figure file names under the figures directory.
const (
	TrendsFigure       = "trends_by_cohort.png"
	DistributionFigure = "education_distribution.png"
	DiDFigure          = "did_visual.png"
)

// Plotter renders the thesis figures.
type Plotter struct {
	logger *slog.Logger
}

// NewPlotter creates a plotter. A nil logger falls back to slog.Default.
func NewPlotter(logger *slog.Logger) *Plotter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Plotter{logger: logger}
}

// RenderAll writes every figure into figuresDir.
func (pl *Plotter) RenderAll(figuresDir string, respondents []domain.Respondent) error {
	if err := os.MkdirAll(figuresDir, 0755); err != nil {
		return apperrors.NewStorageError("failed to create figures directory", err)
	}

	renders := []struct {
		name string
		fn   func(string, []domain.Respondent) error
	}{
		{TrendsFigure, pl.renderTrends},
		{DistributionFigure, pl.renderDistribution},
		{DiDFigure, pl.renderDiD},
	}
	for _, r := range renders {
		path := filepath.Join(figuresDir, r.name)
		if err := r.fn(path, respondents); err != nil {
			return err
		}
		pl.logger.Info("figure written", slog.String("path", path))
	}
	return nil
}

// renderTrends plots mean schooling by birth year, one line for the
// northeast and one for everywhere else.
func (pl *Plotter) renderTrends(path string, respondents []domain.Respondent) error {
	p := plot.New()
	p.Title.Text = "Mean Years of Schooling by Birth Cohort"
	p.X.Label.Text = "Birth year"
	p.Y.Label.Text = "Years of schooling"

	northeast := cohortMeans(respondents, true)
	other := cohortMeans(respondents, false)

	if err := plotutil.AddLinePoints(p,
		"Northeast", northeast,
		"Other regions", other,
	); err != nil {
		return apperrors.NewStorageError("failed to build cohort trends figure", err)
	}

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return apperrors.NewStorageError("failed to save cohort trends figure", err)
	}
	return nil
}

// renderDistribution plots the schooling histogram over the full sample.
func (pl *Plotter) renderDistribution(path string, respondents []domain.Respondent) error {
	values := make(plotter.Values, 0, len(respondents))
	for i := range respondents {
		values = append(values, respondents[i].YearsSchooling)
	}
	if len(values) == 0 {
		values = append(values, 0)
	}

	p := plot.New()
	p.Title.Text = "Distribution of Years of Schooling"
	p.X.Label.Text = "Years of schooling"
	p.Y.Label.Text = "Respondents"

	hist, err := plotter.NewHist(values, 13)
	if err != nil {
		return apperrors.NewStorageError("failed to build education distribution figure", err)
	}
	p.Add(hist)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return apperrors.NewStorageError("failed to save education distribution figure", err)
	}
	return nil
}

// renderDiD plots the four difference-in-differences group means as grouped
// bars: region by cohort.
func (pl *Plotter) renderDiD(path string, respondents []domain.Respondent) error {
	means := func(northeast, post bool) float64 {
		var sumW, sum float64
		for i := range respondents {
			r := &respondents[i]
			if r.Northeast != northeast || r.PostBokoHaram != post {
				continue
			}
			w := r.Weight
			if w <= 0 {
				w = 1
			}
			sumW += w
			sum += w * r.YearsSchooling
		}
		if sumW == 0 {
			return 0
		}
		return sum / sumW
	}

	p := plot.New()
	p.Title.Text = "Schooling by Region and Cohort"
	p.Y.Label.Text = "Mean years of schooling"

	width := vg.Points(28)

	pre, err := plotter.NewBarChart(plotter.Values{means(false, false), means(true, false)}, width)
	if err != nil {
		return apperrors.NewStorageError("failed to build comparison bars", err)
	}
	pre.Offset = -width / 2
	pre.Color = plotutil.Color(0)

	post, err := plotter.NewBarChart(plotter.Values{means(false, true), means(true, true)}, width)
	if err != nil {
		return apperrors.NewStorageError("failed to build comparison bars", err)
	}
	post.Offset = width / 2
	post.Color = plotutil.Color(1)

	p.Add(pre, post)
	p.Legend.Add("Pre cohort", pre)
	p.Legend.Add("Post cohort", post)
	p.Legend.Top = true
	p.NominalX("Other regions", "Northeast")

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return apperrors.NewStorageError("failed to save comparison figure", err)
	}
	return nil
}

// cohortMeans computes the weighted mean schooling per birth year for one
// region, ordered by year.
func cohortMeans(respondents []domain.Respondent, northeast bool) plotter.XYs {
	type acc struct{ sumW, sum float64 }
	byYear := make(map[int]*acc)
	for i := range respondents {
		r := &respondents[i]
		if r.BirthYear == nil || r.Northeast != northeast {
			continue
		}
		a, ok := byYear[*r.BirthYear]
		if !ok {
			a = &acc{}
			byYear[*r.BirthYear] = a
		}
		w := r.Weight
		if w <= 0 {
			w = 1
		}
		a.sumW += w
		a.sum += w * r.YearsSchooling
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	points := make(plotter.XYs, 0, len(years))
	for _, y := range years {
		a := byYear[y]
		points = append(points, plotter.XY{X: float64(y), Y: a.sum / a.sumW})
	}
	return points
}
