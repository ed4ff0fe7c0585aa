package operations

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"metadash/internal/infrastructure"
)

// Manager runs the registered steps of one operation in order
type Manager struct {
	mu     sync.RWMutex
	name   string
	steps  []Step
	ids    map[string]struct{}
	logger *slog.Logger
}

// NewManager creates a manager for the named operation
func NewManager(name string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		name:   name,
		ids:    make(map[string]struct{}),
		logger: logger.With(slog.String("component", "operation_manager")),
	}
}

// RegisterStep appends a step. Step IDs must be unique.
func (m *Manager) RegisterStep(step Step) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if step.ID() == "" {
		return NewValidationError("", "step ID must not be empty")
	}
	if _, dup := m.ids[step.ID()]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateStep, step.ID())
	}
	m.ids[step.ID()] = struct{}{}
	m.steps = append(m.steps, step)
	return nil
}

// Steps returns the registered steps in execution order
func (m *Manager) Steps() []Step {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Step(nil), m.steps...)
}

// Execute runs every step in order and stops at the first failure. The
// returned state is complete in every case; the error names the failed step.
func (m *Manager) Execute(ctx context.Context, operationID string) (*OperationState, error) {
	steps := m.Steps()
	state := NewOperationState(operationID, m.name, steps)
	if len(steps) == 0 {
		state.Fail(ErrNoSteps)
		return state, ErrNoSteps
	}

	ctx, span := infrastructure.StartSpan(ctx, "operation."+m.name,
		attribute.String("operation.id", operationID),
		attribute.Int("operation.steps", len(steps)))
	defer span.End()

	state.Start()
	m.logOperationStart(ctx, state)

	for i, step := range steps {
		stepState := state.Steps[i]

		if err := ctx.Err(); err != nil {
			opErr := NewCancellationError(step.ID(), err)
			m.skipRemaining(ctx, state, i)
			state.Cancel(opErr)
			m.logOperationError(ctx, state, opErr)
			return state, opErr
		}

		if err := m.executeStep(ctx, state, step, stepState); err != nil {
			opErr := NewExecutionError(step.ID(), err)
			m.skipRemaining(ctx, state, i+1)
			state.Fail(opErr)
			infrastructure.RecordError(ctx, opErr)
			m.logOperationError(ctx, state, opErr)
			return state, opErr
		}
	}

	state.Complete()
	m.logOperationComplete(ctx, state)
	return state, nil
}

func (m *Manager) executeStep(ctx context.Context, state *OperationState, step Step, stepState *StepState) error {
	ctx, span := infrastructure.StartSpan(ctx, "step."+step.ID())
	defer span.End()

	stepState.Start()
	m.logStepStart(ctx, state, step)

	start := time.Now()
	if err := step.Execute(ctx); err != nil {
		stepState.Fail(err)
		m.logStepError(ctx, state, step, err)
		return err
	}

	stepState.Complete()
	m.logStepComplete(ctx, state, step, time.Since(start))
	return nil
}

func (m *Manager) skipRemaining(ctx context.Context, state *OperationState, from int) {
	for _, s := range state.Steps[from:] {
		s.Skip()
		m.logStepSkipped(ctx, state, s)
	}
}
