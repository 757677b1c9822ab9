package dhs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dhsHeader = "case_id,birth_year,age,state,survey_year,weight,years_schooling,wealth_quintile,urban\n"

func writeDHSFile(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dhs_education_clean.csv")
	require.NoError(t, os.WriteFile(path, []byte(dhsHeader+rows), 0644))
	return path
}

func TestLoad_TypedRespondents(t *testing.T) {
	path := writeDHSFile(t,
		"C1,1995,23,Borno,2018,1.25,9,3,1\n"+
			"C2,1988,30,lagos state,2018,0.80,14,5,0\n")

	respondents, report, err := NewLoader(nil).Load(path)
	require.NoError(t, err)
	require.Len(t, respondents, 2)

	r := respondents[0]
	require.NotNil(t, r.BirthYear)
	assert.Equal(t, 1995, *r.BirthYear)
	assert.Equal(t, "Borno", r.State)
	assert.Equal(t, 1.25, r.Weight)
	assert.Equal(t, 9.0, r.YearsSchooling)
	assert.True(t, r.PrimaryComplete)
	assert.False(t, r.SecondaryComplete)
	assert.True(t, r.Urban)

	// State standardization runs on the survey side of the join too.
	assert.Equal(t, "Lagos", respondents[1].State)
	assert.True(t, respondents[1].SecondaryComplete)

	assert.Equal(t, 2, report.Rows)
	assert.Zero(t, report.MissingBirthYear)
}

func TestLoad_MissingFieldsNeverFatal(t *testing.T) {
	path := writeDHSFile(t,
		"C1,,23,Borno,2018,1.0,6,2,0\n"+
			"C2,1990,28,,2018,1.0,0,1,0\n"+
			"C3,not-a-year,31,Yobe,2018,1.0,3,2,1\n")

	respondents, report, err := NewLoader(nil).Load(path)
	require.NoError(t, err)
	require.Len(t, respondents, 3)

	assert.Nil(t, respondents[0].BirthYear)
	assert.Empty(t, respondents[1].State)
	assert.Nil(t, respondents[2].BirthYear)
	assert.Equal(t, 2, report.MissingBirthYear)
	assert.Equal(t, 1, report.MissingState)

	// Zero schooling marks no education.
	assert.True(t, respondents[1].NoEducation)
}

func TestLoad_ClipsSchooling(t *testing.T) {
	path := writeDHSFile(t,
		"C1,1990,28,Borno,2018,1.0,31,3,0\n"+
			"C2,1991,27,Borno,2018,1.0,-2,3,0\n")

	respondents, report, err := NewLoader(nil).Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25.0, respondents[0].YearsSchooling)
	assert.Equal(t, 0.0, respondents[1].YearsSchooling)
	assert.True(t, respondents[1].NoEducation)
	assert.Equal(t, 2, report.ClippedSchooling)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := NewLoader(nil).Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestGenerateSynthetic_Deterministic(t *testing.T) {
	a := GenerateSynthetic(200, 2018, 42)
	b := GenerateSynthetic(200, 2018, 42)

	require.Len(t, a, 200)
	assert.Equal(t, a, b)

	for _, r := range a {
		require.NotNil(t, r.BirthYear)
		assert.GreaterOrEqual(t, r.YearsSchooling, MinYearsSchooling)
		assert.LessOrEqual(t, r.YearsSchooling, MaxYearsSchooling)
		assert.NotEmpty(t, r.State)
		assert.Positive(t, r.Weight)
	}
}
