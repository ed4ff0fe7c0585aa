package operations

import (
	"context"
	"log/slog"
	"time"
)

func (m *Manager) logOperationStart(ctx context.Context, state *OperationState) {
	m.logger.InfoContext(ctx, EventOperationStart,
		slog.String("operation_id", state.ID),
		slog.String("operation", state.Name),
		slog.Int("steps", len(state.Steps)))
}

func (m *Manager) logOperationComplete(ctx context.Context, state *OperationState) {
	m.logger.InfoContext(ctx, EventOperationComplete,
		slog.String("operation_id", state.ID),
		slog.String("status", string(state.GetStatus())),
		slog.Duration("duration", state.Duration()))
}

// logOperationError is the single top-level record of a failed operation
func (m *Manager) logOperationError(ctx context.Context, state *OperationState, err error) {
	m.logger.ErrorContext(ctx, EventOperationError,
		slog.String("operation_id", state.ID),
		slog.String("status", string(state.GetStatus())),
		slog.Int("completed", state.CountByStatus(StepStatusCompleted)),
		slog.Int("skipped", state.CountByStatus(StepStatusSkipped)),
		slog.String("error", err.Error()))
}

func (m *Manager) logStepStart(ctx context.Context, state *OperationState, step Step) {
	m.logger.DebugContext(ctx, EventStepStart,
		slog.String("operation_id", state.ID),
		slog.String("step", step.ID()))
}

func (m *Manager) logStepComplete(ctx context.Context, state *OperationState, step Step, duration time.Duration) {
	m.logger.InfoContext(ctx, EventStepComplete,
		slog.String("operation_id", state.ID),
		slog.String("step", step.ID()),
		slog.Duration("duration", duration))
}

func (m *Manager) logStepError(ctx context.Context, state *OperationState, step Step, err error) {
	m.logger.DebugContext(ctx, EventStepError,
		slog.String("operation_id", state.ID),
		slog.String("step", step.ID()),
		slog.String("error", err.Error()))
}

func (m *Manager) logStepSkipped(ctx context.Context, state *OperationState, s *StepState) {
	m.logger.DebugContext(ctx, EventStepSkipped,
		slog.String("operation_id", state.ID),
		slog.String("step", s.ID))
}
