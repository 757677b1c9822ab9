// Package runner executes the pipeline as an ordered sequence of stages.
// The run is an offline batch: a stage failure aborts the remainder, there
// are no retries and no resumption.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jarretangbazo/economics-senior-thesis/internal/errors"
	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

// StageStatus is the lifecycle state of one stage within a run.
type StageStatus string

const (
	StageStatusPending   StageStatus = "pending"
	StageStatusActive    StageStatus = "active"
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
	StageStatusSkipped   StageStatus = "skipped"
)

// State is the shared pipeline state threaded through stages. Each stage
// reads the datasets earlier stages produced and fills in its own.
type State struct {
	RunID     string
	StartedAt time.Time

	Events      []domain.Event
	Panel       []domain.PanelCell
	StateYear   []domain.StateYearCell
	Respondents []domain.Respondent

	stages []*StageState
}

// StageState tracks one stage's execution within a run.
type StageState struct {
	ID        string
	Name      string
	Status    StageStatus
	StartedAt time.Time
	EndedAt   time.Time
	Err       error
}

// Stages returns the per-stage execution records of the run.
func (s *State) Stages() []*StageState { return s.stages }

// Stage is one unit of pipeline work.
type Stage interface {
	// ID is the stable machine identifier of the stage.
	ID() string
	// Name is the human-readable stage name for logs.
	Name() string
	// Validate checks that the state carries what the stage needs.
	Validate(state *State) error
	// Execute runs the stage, mutating state in place.
	Execute(ctx context.Context, state *State) error
}

// Manager runs stages sequentially.
type Manager struct {
	stages []Stage
	logger *slog.Logger
}

// NewManager creates a manager over the given stages, in execution order.
func NewManager(logger *slog.Logger, stages ...Stage) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{stages: stages, logger: logger}
}

// Run executes every stage in order. The first failure marks the remaining
// stages skipped and returns the failure; the returned state is always
// non-nil so callers can inspect partial progress.
func (m *Manager) Run(ctx context.Context) (*State, error) {
	state := &State{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}
	for _, stage := range m.stages {
		state.stages = append(state.stages, &StageState{
			ID:     stage.ID(),
			Name:   stage.Name(),
			Status: StageStatusPending,
		})
	}

	m.logger.Info("pipeline run started",
		slog.String("run_id", state.RunID),
		slog.Int("stages", len(m.stages)))

	var failure error
	for i, stage := range m.stages {
		ss := state.stages[i]

		if failure != nil {
			ss.Status = StageStatusSkipped
			continue
		}
		if err := ctx.Err(); err != nil {
			ss.Status = StageStatusSkipped
			failure = err
			continue
		}

		ss.Status = StageStatusActive
		ss.StartedAt = time.Now()
		m.logger.Info("stage started",
			slog.String("run_id", state.RunID),
			slog.String("stage", stage.ID()),
			slog.String("name", stage.Name()))

		err := stage.Validate(state)
		if err == nil {
			err = stage.Execute(ctx, state)
		}
		ss.EndedAt = time.Now()

		if err != nil {
			ss.Status = StageStatusFailed
			ss.Err = err
			failure = wrapStageFailure(stage.ID(), err)
			m.logger.Error("stage failed",
				slog.String("run_id", state.RunID),
				slog.String("stage", stage.ID()),
				slog.String("error", err.Error()))
			continue
		}

		ss.Status = StageStatusCompleted
		m.logger.Info("stage completed",
			slog.String("run_id", state.RunID),
			slog.String("stage", stage.ID()),
			slog.Duration("elapsed", ss.EndedAt.Sub(ss.StartedAt)))
	}

	m.logger.Info("pipeline run finished",
		slog.String("run_id", state.RunID),
		slog.Duration("elapsed", time.Since(state.StartedAt)),
		slog.Bool("success", failure == nil))

	return state, failure
}

// wrapStageFailure names the failed stage while keeping the cause's error
// type, so callers can still dispatch on what actually went wrong.
func wrapStageFailure(stageID string, err error) error {
	errType := apperrors.ErrTypeValidation
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		errType = appErr.Type
	}
	return apperrors.NewAppError(errType,
		fmt.Sprintf("stage %s failed", stageID), err)
}
