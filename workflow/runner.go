package workflow

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/heksoli/Stocks-Watcher/events"
	"github.com/heksoli/Stocks-Watcher/inference"
	"github.com/heksoli/Stocks-Watcher/mailer"

	"github.com/petrijr/fluxo"
)

// Runner hosts the welcome workflow on a SQLite-backed fluxo engine. The
// engine persists instance progress for audit; the StepRecordStore in the
// same database provides the cross-delivery step memoization.
type Runner struct {
	engine fluxo.Engine
}

// NewRunner registers the welcome workflow on a durable engine backed by db.
func NewRunner(db *sql.DB, client inference.Client, sender mailer.Sender, model string) (*Runner, error) {
	records, err := NewStepRecordStore(db)
	if err != nil {
		return nil, fmt.Errorf("init step record store: %w", err)
	}

	engine, err := fluxo.NewSQLiteEngineWithObserver(db, fluxo.NewLoggingObserver(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("init workflow engine: %w", err)
	}

	wf := NewWelcomeWorkflow(client, sender, records, model)
	if err := wf.Definition().Register(engine); err != nil {
		return nil, fmt.Errorf("register %s workflow: %w", Name, err)
	}

	return &Runner{engine: engine}, nil
}

// Recover marks instances left running by a previous process as failed so
// they show up in operator queries. Re-execution is driven by broker
// redelivery, not by the engine itself.
func (r *Runner) Recover(ctx context.Context) (int, error) {
	return r.engine.RecoverStuckInstances(ctx)
}

// Handle runs the welcome workflow for one delivered event. Errors surface
// to the caller so the host runtime can apply its retry policy.
func (r *Runner) Handle(ctx context.Context, event events.UserEvent) (StepResult, error) {
	inst, err := r.engine.Run(ctx, Name, event)
	if err != nil {
		return StepResult{}, fmt.Errorf("welcome workflow for event %s: %w", event.ID, err)
	}

	result, ok := inst.Output.(StepResult)
	if !ok {
		return StepResult{}, fmt.Errorf("welcome workflow for event %s: unexpected output %T", event.ID, inst.Output)
	}

	return result, nil
}
