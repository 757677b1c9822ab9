package regression

import (
	"fmt"
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/mat"

	apperrors "github.com/jarretangbazo/economics-senior-thesis/internal/errors"
	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

// Variable binds a column name to its extraction from a respondent.
type Variable struct {
	Name  string
	Value func(*domain.Respondent) float64
}

// Spec is one regression specification: an outcome, a set of regressors,
// and estimation options. Filter restricts the estimation sample; a nil
// filter keeps everyone with a known birth year.
type Spec struct {
	Name        string
	Description string
	Outcome     Variable
	Regressors  []Variable
	StateFE     bool
	ClusterBy   bool
	Filter      func(*domain.Respondent) bool
}

// Coefficient is one estimated parameter.
type Coefficient struct {
	Name     string
	Estimate float64
	StdErr   float64
	TStat    float64
	PValue   float64
}

// Result is one fitted specification.
type Result struct {
	Spec         string
	Description  string
	Outcome      string
	N            int
	Clusters     int
	RSquared     float64
	Coefficients []Coefficient
}

// Coefficient returns the named coefficient, or false.
func (r *Result) Coefficient(name string) (Coefficient, bool) {
	for _, c := range r.Coefficients {
		if c.Name == name {
			return c, true
		}
	}
	return Coefficient{}, false
}

// Runner fits specifications over the analysis dataset.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a runner. A nil logger falls back to slog.Default.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Fit estimates one specification by weighted least squares over the
// respondents passing the spec's filter.
func (rn *Runner) Fit(spec Spec, respondents []domain.Respondent) (*Result, error) {
	filter := spec.Filter
	if filter == nil {
		filter = func(r *domain.Respondent) bool { return r.BirthYear != nil }
	}

	sample := make([]*domain.Respondent, 0, len(respondents))
	for i := range respondents {
		if filter(&respondents[i]) {
			sample = append(sample, &respondents[i])
		}
	}
	if len(sample) == 0 {
		return nil, apperrors.NewValidationError("empty estimation sample: "+spec.Name, nil)
	}

	names := []string{"intercept"}
	for _, v := range spec.Regressors {
		names = append(names, v.Name)
	}

	// State fixed effects: one dummy per state present in the sample, the
	// lexicographically first state is the omitted category.
	var feStates []string
	if spec.StateFE {
		feStates = sampleStates(sample)
		if len(feStates) > 1 {
			for _, s := range feStates[1:] {
				names = append(names, "state:"+s)
			}
		}
	}

	k := len(names)
	n := len(sample)
	X := mat.NewDense(n, k, nil)
	y := make([]float64, n)
	w := make([]float64, n)
	clusters := make([]string, n)

	for i, r := range sample {
		y[i] = spec.Outcome.Value(r)
		w[i] = r.Weight
		if w[i] <= 0 {
			w[i] = 1
		}
		clusters[i] = r.State

		X.Set(i, 0, 1)
		for j, v := range spec.Regressors {
			X.Set(i, j+1, v.Value(r))
		}
		if spec.StateFE && len(feStates) > 1 {
			base := 1 + len(spec.Regressors)
			for j, s := range feStates[1:] {
				if r.State == s {
					X.Set(i, base+j, 1)
				}
			}
		}
	}

	fit, err := solveWLS(X, y, w)
	if err != nil {
		return nil, apperrors.NewValidationError("fit failed: "+spec.Name, err)
	}

	var se []float64
	clusterCount := 0
	if spec.ClusterBy {
		se, clusterCount = fit.clusterRobustSE(X, w, clusters)
	} else {
		se = fit.classicalSE(w)
	}

	result := &Result{
		Spec:        spec.Name,
		Description: spec.Description,
		Outcome:     spec.Outcome.Name,
		N:           n,
		Clusters:    clusterCount,
		RSquared:    fit.rSquared(y, w),
	}
	for j, name := range names {
		t := 0.0
		if se[j] > 0 {
			t = fit.beta[j] / se[j]
		}
		result.Coefficients = append(result.Coefficients, Coefficient{
			Name:     name,
			Estimate: fit.beta[j],
			StdErr:   se[j],
			TStat:    t,
			PValue:   pValue(t, fit.n-fit.k),
		})
	}

	rn.logger.Info("specification estimated",
		slog.String("spec", spec.Name),
		slog.String("outcome", spec.Outcome.Name),
		slog.Int("n", n),
		slog.Int("clusters", clusterCount),
		slog.Float64("r_squared", result.RSquared))

	return result, nil
}

// FitAll estimates every specification, skipping ones whose sample is
// degenerate rather than failing the whole battery.
func (rn *Runner) FitAll(specs []Spec, respondents []domain.Respondent) []*Result {
	results := make([]*Result, 0, len(specs))
	for _, spec := range specs {
		res, err := rn.Fit(spec, respondents)
		if err != nil {
			rn.logger.Warn("specification skipped",
				slog.String("spec", spec.Name),
				slog.String("error", fmt.Sprintf("%v", err)))
			continue
		}
		results = append(results, res)
	}
	return results
}

func sampleStates(sample []*domain.Respondent) []string {
	seen := make(map[string]bool)
	for _, r := range sample {
		if r.State != "" {
			seen[r.State] = true
		}
	}
	states := make([]string, 0, len(seen))
	for s := range seen {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}
