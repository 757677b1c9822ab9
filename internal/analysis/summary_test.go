package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

func respondent(state string, northeast, post bool, schooling, weight float64) domain.Respondent {
	return domain.Respondent{
		State:          state,
		Northeast:      northeast,
		PostBokoHaram:  post,
		PreBokoHaram:   !post,
		YearsSchooling: schooling,
		Weight:         weight,
	}
}

func TestSummarize_WeightedMeans(t *testing.T) {
	respondents := []domain.Respondent{
		respondent("Borno", true, true, 4, 1),
		respondent("Borno", true, true, 8, 3),
		respondent("Lagos", false, false, 12, 1),
	}

	stats := Summarize(respondents)
	require.NotEmpty(t, stats)

	byGroup := make(map[string]GroupStats)
	for _, s := range stats {
		byGroup[s.Group] = s
	}

	all := byGroup["All respondents"]
	assert.Equal(t, 3, all.N)
	// (4*1 + 8*3 + 12*1) / 5 = 8
	assert.InDelta(t, 8.0, all.MeanSchooling, 1e-9)

	ne := byGroup["Northeast"]
	assert.Equal(t, 2, ne.N)
	// (4 + 24) / 4 = 7
	assert.InDelta(t, 7.0, ne.MeanSchooling, 1e-9)

	other := byGroup["Other regions"]
	assert.Equal(t, 1, other.N)
	assert.InDelta(t, 12.0, other.MeanSchooling, 1e-9)
	assert.Zero(t, other.SDSchooling)
}

func TestSummarize_RatesAndEmptyGroups(t *testing.T) {
	respondents := []domain.Respondent{
		{State: "Kano", YearsSchooling: 0, NoEducation: true, Weight: 1},
		{State: "Kano", YearsSchooling: 7, PrimaryComplete: true, Weight: 1},
		{State: "Kano", YearsSchooling: 13, PrimaryComplete: true, SecondaryComplete: true, Weight: 2},
	}

	stats := Summarize(respondents)
	byGroup := make(map[string]GroupStats)
	for _, s := range stats {
		byGroup[s.Group] = s
	}

	all := byGroup["All respondents"]
	assert.InDelta(t, 0.25, all.NoEducationRate, 1e-9)
	assert.InDelta(t, 0.75, all.PrimaryRate, 1e-9)
	assert.InDelta(t, 0.5, all.SecondaryRate, 1e-9)

	// No respondent is northeast; the group stays all-zero instead of NaN.
	ne := byGroup["Northeast"]
	assert.Zero(t, ne.N)
	assert.Zero(t, ne.MeanSchooling)
}

func TestWriteSummary(t *testing.T) {
	respondents := []domain.Respondent{
		respondent("Borno", true, true, 6, 1),
	}

	path := filepath.Join(t.TempDir(), "results", "summary_statistics.txt")
	require.NoError(t, WriteSummary(path, Summarize(respondents), nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "All respondents")
	assert.Contains(t, string(content), "Northeast")
}

func TestRenderAll_WritesFigures(t *testing.T) {
	by1, by2 := 1985, 1995
	respondents := []domain.Respondent{
		{State: "Borno", Northeast: true, BirthYear: &by1, YearsSchooling: 8, Weight: 1},
		{State: "Borno", Northeast: true, PostBokoHaram: true, BirthYear: &by2, YearsSchooling: 5, Weight: 1},
		{State: "Lagos", BirthYear: &by1, YearsSchooling: 10, Weight: 1},
		{State: "Lagos", PostBokoHaram: true, BirthYear: &by2, YearsSchooling: 11, Weight: 1},
	}

	dir := filepath.Join(t.TempDir(), "figures")
	require.NoError(t, NewPlotter(nil).RenderAll(dir, respondents))

	for _, name := range []string{TrendsFigure, DistributionFigure, DiDFigure} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}
