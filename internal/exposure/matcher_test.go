package exposure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

func intPtr(n int) *int { return &n }

func TestMatch_SchoolAgeWindow(t *testing.T) {
	index := []domain.StateYearCell{
		{State: "Borno", Year: 2001, ViolentEvents: 5, BokoHaramEvents: 0},
		{State: "Borno", Year: 2005, ViolentEvents: 3, BokoHaramEvents: 1},
		{State: "Borno", Year: 2020, ViolentEvents: 50},
		{State: "Lagos", Year: 2005, ViolentEvents: 100},
	}

	respondents := []domain.Respondent{
		{CaseID: "C1", BirthYear: intPtr(1995), State: "Borno"},
	}

	report, err := NewMatcher(index, nil, 1).Match(context.Background(), respondents)
	require.NoError(t, err)

	// Window is 2001 through 2013 inclusive; only two panel cells fall in
	// it, so the intensity averages over those two.
	r := respondents[0]
	assert.Equal(t, 8, r.ViolentEventsSchoolAge)
	assert.Equal(t, 1, r.BokoHaramEventsSchoolAge)
	assert.Equal(t, 2, r.YearsExposedSchoolAge)
	assert.Equal(t, 4.0, r.ConflictExposureSchoolAge)
	assert.True(t, r.ExposedDuringSchoolAge)

	assert.Equal(t, 1, report.Matched)
	assert.Equal(t, 1, report.Exposed)
}

func TestMatch_WindowBoundariesInclusive(t *testing.T) {
	index := []domain.StateYearCell{
		{State: "Yobe", Year: 2001, ViolentEvents: 1}, // birth+6
		{State: "Yobe", Year: 2013, ViolentEvents: 1}, // birth+18
		{State: "Yobe", Year: 2000, ViolentEvents: 9}, // outside
		{State: "Yobe", Year: 2014, ViolentEvents: 9}, // outside
	}

	respondents := []domain.Respondent{
		{CaseID: "C1", BirthYear: intPtr(1995), State: "Yobe"},
	}

	_, err := NewMatcher(index, nil, 1).Match(context.Background(), respondents)
	require.NoError(t, err)

	assert.Equal(t, 2, respondents[0].ViolentEventsSchoolAge)
	assert.Equal(t, 2, respondents[0].YearsExposedSchoolAge)
}

func TestMatch_MissingBirthYearOrState(t *testing.T) {
	index := []domain.StateYearCell{
		{State: "Borno", Year: 2005, ViolentEvents: 3},
	}

	respondents := []domain.Respondent{
		{CaseID: "C1", State: "Borno"},                 // no birth year
		{CaseID: "C2", BirthYear: intPtr(1995)},        // no state
		{CaseID: "C3", BirthYear: intPtr(1995), State: "Kebbi"}, // state not in panel
	}

	report, err := NewMatcher(index, nil, 2).Match(context.Background(), respondents)
	require.NoError(t, err)

	for _, r := range respondents {
		assert.Zero(t, r.ViolentEventsSchoolAge, r.CaseID)
		assert.Zero(t, r.ConflictExposureSchoolAge, r.CaseID)
		assert.Zero(t, r.YearsExposedSchoolAge, r.CaseID)
		assert.False(t, r.ExposedDuringSchoolAge, r.CaseID)
	}

	assert.Equal(t, 1, report.NoBirthYear)
	assert.Equal(t, 1, report.NoState)
	assert.Equal(t, 0, report.Matched)
	assert.Equal(t, 0, report.Exposed)
}

func TestMatch_ResetsStaleFields(t *testing.T) {
	respondents := []domain.Respondent{
		{
			CaseID: "C1", BirthYear: intPtr(1995), State: "Kwara",
			ViolentEventsSchoolAge:    99,
			ConflictExposureSchoolAge: 9.9,
			ExposedDuringSchoolAge:    true,
		},
	}

	_, err := NewMatcher(nil, nil, 1).Match(context.Background(), respondents)
	require.NoError(t, err)

	assert.Zero(t, respondents[0].ViolentEventsSchoolAge)
	assert.Zero(t, respondents[0].ConflictExposureSchoolAge)
	assert.False(t, respondents[0].ExposedDuringSchoolAge)
}

func TestMatch_ParallelMatchesSequential(t *testing.T) {
	index := make([]domain.StateYearCell, 0)
	for year := 1997; year <= 2019; year++ {
		index = append(index,
			domain.StateYearCell{State: "Borno", Year: year, ViolentEvents: year % 7},
			domain.StateYearCell{State: "Lagos", Year: year, ViolentEvents: year % 3},
		)
	}

	build := func() []domain.Respondent {
		out := make([]domain.Respondent, 0, 60)
		for i := 0; i < 60; i++ {
			state := "Borno"
			if i%2 == 0 {
				state = "Lagos"
			}
			out = append(out, domain.Respondent{
				CaseID:    string(rune('A' + i%26)),
				BirthYear: intPtr(1980 + i%25),
				State:     state,
			})
		}
		return out
	}

	sequential := build()
	parallel := build()

	_, err := NewMatcher(index, nil, 1).Match(context.Background(), sequential)
	require.NoError(t, err)
	_, err = NewMatcher(index, nil, 8).Match(context.Background(), parallel)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestMatch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	respondents := []domain.Respondent{
		{CaseID: "C1", BirthYear: intPtr(1995), State: "Borno"},
	}

	_, err := NewMatcher(nil, nil, 1).Match(ctx, respondents)
	assert.Error(t, err)
}
