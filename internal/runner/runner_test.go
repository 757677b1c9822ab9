package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jarretangbazo/economics-senior-thesis/internal/errors"
)

type fakeStage struct {
	id          string
	validateErr error
	executeErr  error
	executed    bool
}

func (f *fakeStage) ID() string   { return f.id }
func (f *fakeStage) Name() string { return "Fake " + f.id }

func (f *fakeStage) Validate(state *State) error { return f.validateErr }

func (f *fakeStage) Execute(ctx context.Context, state *State) error {
	f.executed = true
	return f.executeErr
}

func TestRun_AllStagesComplete(t *testing.T) {
	a := &fakeStage{id: "a"}
	b := &fakeStage{id: "b"}

	state, err := NewManager(nil, a, b).Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, state)

	assert.NotEmpty(t, state.RunID)
	assert.True(t, a.executed)
	assert.True(t, b.executed)
	for _, ss := range state.Stages() {
		assert.Equal(t, StageStatusCompleted, ss.Status)
	}
}

func TestRun_FailureSkipsRemaining(t *testing.T) {
	a := &fakeStage{id: "a", executeErr: errors.New("boom")}
	b := &fakeStage{id: "b"}

	state, err := NewManager(nil, a, b).Run(context.Background())
	require.Error(t, err)
	require.NotNil(t, state)

	assert.False(t, b.executed)
	stages := state.Stages()
	assert.Equal(t, StageStatusFailed, stages[0].Status)
	assert.Equal(t, StageStatusSkipped, stages[1].Status)
	assert.Error(t, stages[0].Err)
}

func TestRun_PreservesFailureType(t *testing.T) {
	a := &fakeStage{id: "a", executeErr: apperrors.NewLoadError("events file unreadable", nil)}

	_, err := NewManager(nil, a).Run(context.Background())
	require.Error(t, err)

	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
	assert.False(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestRun_ValidateFailureSkipsExecute(t *testing.T) {
	a := &fakeStage{id: "a", validateErr: errors.New("missing input")}

	state, err := NewManager(nil, a).Run(context.Background())
	require.Error(t, err)

	assert.False(t, a.executed)
	assert.Equal(t, StageStatusFailed, state.Stages()[0].Status)
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &fakeStage{id: "a"}
	state, err := NewManager(nil, a).Run(ctx)
	require.Error(t, err)

	assert.False(t, a.executed)
	assert.Equal(t, StageStatusSkipped, state.Stages()[0].Status)
}

func TestRun_UniqueRunIDs(t *testing.T) {
	m := NewManager(nil, &fakeStage{id: "a"})

	first, err := m.Run(context.Background())
	require.NoError(t, err)
	second, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
}
