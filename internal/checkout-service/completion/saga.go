// Package completion runs the side effects of completing a checkout as a small
// saga: each step either succeeds or the steps before it are compensated in
// reverse order.
package completion

import (
	"context"
	"log/slog"
)

// Step represents a single unit of work in the completion saga.
// Each step must have a compensating action to undo its effects.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Orchestrator manages the execution of a collection of Steps for one session.
type Orchestrator struct {
	sessionID string
	steps     []Step
}

func NewOrchestrator(sessionID string, steps ...Step) *Orchestrator {
	return &Orchestrator{sessionID: sessionID, steps: steps}
}

// Start runs the steps sequentially. If a step fails, every previously
// successful step is compensated and the step's error is returned unchanged.
func (o *Orchestrator) Start(ctx context.Context) error {
	var successfulSteps []Step

	for _, step := range o.steps {
		slog.DebugContext(ctx, "executing completion step", "session_id", o.sessionID, "step", step.Name())
		if err := step.Execute(ctx); err != nil {
			slog.WarnContext(ctx, "completion step failed, rolling back",
				"session_id", o.sessionID, "step", step.Name(), "error", err)
			o.rollback(ctx, successfulSteps)
			return err
		}
		successfulSteps = append(successfulSteps, step)
	}
	return nil
}

func (o *Orchestrator) rollback(ctx context.Context, steps []Step) {
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "CRITICAL: failed to compensate completion step",
				"session_id", o.sessionID, "step", step.Name(), "error", err)
		}
	}
}
