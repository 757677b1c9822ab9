package panel

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StateAliases collapses known spelling variants of Nigerian state names.
// Keys are the already trimmed and title-cased form. The table is applied
// identically to the conflict panel and the survey respondents, so a variant
// on either side cannot silently break the spatial join.
var StateAliases = map[string]string{
	"Fct Abuja":                 "FCT",
	"Fct":                       "FCT",
	"Federal Capital Territory": "FCT",
	"Nassarawa":                 "Nasarawa",
	"Rivers State":              "Rivers",
	"Lagos State":               "Lagos",
}

// NortheastStates is the six-state region most affected by the insurgency,
// used as the regional treatment group.
var NortheastStates = map[string]bool{
	"Adamawa": true,
	"Bauchi":  true,
	"Borno":   true,
	"Gombe":   true,
	"Taraba":  true,
	"Yobe":    true,
}

var stateTitler = cases.Title(language.English)

// StandardizeState trims, title-cases, and resolves aliases for a state
// name. An empty or blank input stays empty.
func StandardizeState(name string) string {
	name = stateTitler.String(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	if canonical, ok := StateAliases[name]; ok {
		return canonical
	}
	return name
}

// IsNortheast reports whether the standardized state belongs to the
// northeast treatment region.
func IsNortheast(state string) bool {
	return NortheastStates[state]
}
