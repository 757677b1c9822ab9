package regression

import (
	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

func boolVar(name string, get func(*domain.Respondent) bool) Variable {
	return Variable{Name: name, Value: func(r *domain.Respondent) float64 {
		if get(r) {
			return 1
		}
		return 0
	}}
}

func floatVar(name string, get func(*domain.Respondent) float64) Variable {
	return Variable{Name: name, Value: get}
}

// Common variables of the battery.
var (
	varNortheast      = boolVar("northeast", func(r *domain.Respondent) bool { return r.Northeast })
	varPost           = boolVar("post_boko_haram", func(r *domain.Respondent) bool { return r.PostBokoHaram })
	varNortheastXPost = boolVar("northeast_x_post", func(r *domain.Respondent) bool { return r.NortheastXPost })
	varUrban          = boolVar("urban", func(r *domain.Respondent) bool { return r.Urban })
	varExposure       = floatVar("conflict_exposure_school_age", func(r *domain.Respondent) float64 { return r.ConflictExposureSchoolAge })
	varBokoHaram      = boolVar("any_boko_haram_exposure", func(r *domain.Respondent) bool { return r.AnyBokoHaramExposure })

	varYearsSchooling = floatVar("years_schooling", func(r *domain.Respondent) float64 { return r.YearsSchooling })
	varPrimary        = boolVar("primary_complete", func(r *domain.Respondent) bool { return r.PrimaryComplete })
	varSecondary      = boolVar("secondary_complete", func(r *domain.Respondent) bool { return r.SecondaryComplete })
	varNoEducation    = boolVar("no_education", func(r *domain.Respondent) bool { return r.NoEducation })
)

// wealthDummies omits the first quintile as the reference category.
func wealthDummies() []Variable {
	dummies := make([]Variable, 0, 4)
	for q := 2; q <= 5; q++ {
		q := q
		dummies = append(dummies, boolVar(
			"wealth_q"+string(rune('0'+q)),
			func(r *domain.Respondent) bool { return r.WealthQuintile == q }))
	}
	return dummies
}

func controls() []Variable {
	vars := []Variable{varUrban}
	vars = append(vars, wealthDummies()...)
	return vars
}

// cohortInteractions builds the event-study regressors: one northeast
// interaction per birth cohort, the earliest cohort omitted as reference.
func cohortInteractions() []Variable {
	cohorts := []string{
		"1975-79", "1980-84", "1985-89", "1990-94", "1995-99", "2000-04", "2005-09",
	}
	vars := make([]Variable, 0, len(cohorts))
	for _, c := range cohorts {
		c := c
		vars = append(vars, boolVar("northeast_x_"+c, func(r *domain.Respondent) bool {
			return r.Northeast && r.CohortGroup == c
		}))
	}
	return vars
}

// Battery returns the full specification set, in presentation order.
func Battery() []Spec {
	didRegressors := []Variable{varNortheast, varPost, varNortheastXPost}

	specs := []Spec{
		{
			Name:        "did_basic",
			Description: "Basic difference-in-differences",
			Outcome:     varYearsSchooling,
			Regressors:  didRegressors,
		},
		{
			Name:        "did_controls",
			Description: "Difference-in-differences with individual controls",
			Outcome:     varYearsSchooling,
			Regressors:  append(append([]Variable{}, didRegressors...), controls()...),
		},
		{
			Name:        "did_state_fe",
			Description: "Difference-in-differences with state fixed effects, clustered by state",
			Outcome:     varYearsSchooling,
			Regressors:  []Variable{varPost, varNortheastXPost},
			StateFE:     true,
			ClusterBy:   true,
		},
		{
			Name:        "continuous_exposure",
			Description: "Continuous school-age exposure intensity, clustered by state",
			Outcome:     varYearsSchooling,
			Regressors:  append([]Variable{varExposure, varPost}, controls()...),
			StateFE:     true,
			ClusterBy:   true,
		},
		{
			Name:        "event_study",
			Description: "Northeast effects by birth cohort, clustered by state",
			Outcome:     varYearsSchooling,
			Regressors:  append(cohortInteractions(), varPost),
			StateFE:     true,
			ClusterBy:   true,
		},
	}

	// Heterogeneity splits.
	specs = append(specs,
		Spec{
			Name:        "het_urban",
			Description: "Urban respondents only",
			Outcome:     varYearsSchooling,
			Regressors:  didRegressors,
			Filter: func(r *domain.Respondent) bool {
				return r.BirthYear != nil && r.Urban
			},
		},
		Spec{
			Name:        "het_rural",
			Description: "Rural respondents only",
			Outcome:     varYearsSchooling,
			Regressors:  didRegressors,
			Filter: func(r *domain.Respondent) bool {
				return r.BirthYear != nil && !r.Urban
			},
		},
		Spec{
			Name:        "het_poor",
			Description: "Bottom two wealth quintiles",
			Outcome:     varYearsSchooling,
			Regressors:  didRegressors,
			Filter: func(r *domain.Respondent) bool {
				return r.BirthYear != nil && r.WealthQuintile >= 1 && r.WealthQuintile <= 2
			},
		},
	)

	// Robustness: alternative outcomes and treatment definitions.
	specs = append(specs,
		Spec{
			Name:        "rob_primary",
			Description: "Primary completion outcome",
			Outcome:     varPrimary,
			Regressors:  didRegressors,
		},
		Spec{
			Name:        "rob_secondary",
			Description: "Secondary completion outcome",
			Outcome:     varSecondary,
			Regressors:  didRegressors,
		},
		Spec{
			Name:        "rob_no_education",
			Description: "No-education outcome",
			Outcome:     varNoEducation,
			Regressors:  didRegressors,
		},
		Spec{
			Name:        "rob_boko_haram",
			Description: "Any Boko Haram school-age exposure as treatment",
			Outcome:     varYearsSchooling,
			Regressors: []Variable{
				varBokoHaram, varPost,
				boolVar("boko_haram_x_post", func(r *domain.Respondent) bool {
					return r.AnyBokoHaramExposure && r.PostBokoHaram
				}),
			},
		},
		Spec{
			Name:        "placebo_pre_period",
			Description: "Placebo: pre-insurgency cohorts split at 1980",
			Outcome:     varYearsSchooling,
			Regressors: []Variable{
				varNortheast,
				boolVar("placebo_post", func(r *domain.Respondent) bool {
					return r.BirthYear != nil && *r.BirthYear >= 1980
				}),
				boolVar("northeast_x_placebo", func(r *domain.Respondent) bool {
					return r.Northeast && r.BirthYear != nil && *r.BirthYear >= 1980
				}),
			},
			Filter: func(r *domain.Respondent) bool {
				return r.BirthYear != nil && *r.BirthYear < 1991
			},
		},
	)

	return specs
}
