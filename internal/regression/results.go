package regression

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jarretangbazo/economics-senior-thesis/internal/exporter"
)

// ResultHeaders is the column order of the coefficients artifact.
var ResultHeaders = []string{
	"spec", "outcome", "term", "estimate", "std_err", "t_stat", "p_value",
	"n", "clusters", "r_squared",
}

// WriteResults writes every coefficient of every fitted specification to a
// single long-format CSV.
func WriteResults(path string, results []*Result) error {
	records := make([][]string, 0)
	for _, res := range results {
		for _, c := range res.Coefficients {
			records = append(records, []string{
				res.Spec,
				res.Outcome,
				c.Name,
				strconv.FormatFloat(c.Estimate, 'f', 6, 64),
				strconv.FormatFloat(c.StdErr, 'f', 6, 64),
				strconv.FormatFloat(c.TStat, 'f', 4, 64),
				strconv.FormatFloat(c.PValue, 'f', 4, 64),
				strconv.Itoa(res.N),
				strconv.Itoa(res.Clusters),
				strconv.FormatFloat(res.RSquared, 'f', 4, 64),
			})
		}
	}
	return exporter.WriteSimpleCSV(path, ResultHeaders, records)
}

// stars returns the conventional significance marker for a p-value.
func stars(p float64) string {
	switch {
	case p < 0.01:
		return "***"
	case p < 0.05:
		return "**"
	case p < 0.1:
		return "*"
	default:
		return ""
	}
}

// RenderText formats one result as a readable estimation table.
func RenderText(res *Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", res.Description)
	fmt.Fprintf(&b, "  outcome: %s   n=%d", res.Outcome, res.N)
	if res.Clusters > 0 {
		fmt.Fprintf(&b, "   clusters=%d", res.Clusters)
	}
	fmt.Fprintf(&b, "   R²=%.4f\n", res.RSquared)
	fmt.Fprintf(&b, "  %-32s %12s %12s %8s %8s\n", "term", "estimate", "std err", "t", "p")

	for _, c := range res.Coefficients {
		// State dummies clutter the table; the CSV keeps them.
		if strings.HasPrefix(c.Name, "state:") {
			continue
		}
		fmt.Fprintf(&b, "  %-32s %12.4f %12.4f %8.2f %8.4f %s\n",
			c.Name, c.Estimate, c.StdErr, c.TStat, c.PValue, stars(c.PValue))
	}

	return b.String()
}

// RenderAll formats the whole battery.
func RenderAll(results []*Result) string {
	parts := make([]string, 0, len(results))
	for _, res := range results {
		parts = append(parts, RenderText(res))
	}
	return strings.Join(parts, "\n")
}
