package workflow

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// StepRecordStore persists step-completion records keyed by event ID and
// step name. A record is written only after the step's side effect has
// succeeded; on redelivery the stored output is replayed instead of
// re-executing the step. This is the dedup mechanism that turns the
// broker's at-least-once delivery into effective exactly-once side effects.
//
// It expects an *sql.DB using a SQLite driver (for example,
// "modernc.org/sqlite"). The caller is responsible for importing the driver.
type StepRecordStore struct {
	db *sql.DB
}

// NewStepRecordStore initializes the required schema in the given database
// and returns a new StepRecordStore.
func NewStepRecordStore(db *sql.DB) (*StepRecordStore, error) {
	s := &StepRecordStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *StepRecordStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS step_records (
			event_id TEXT NOT NULL,
			step TEXT NOT NULL,
			output BLOB,
			completed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (event_id, step)
		);`,
	)
	return err
}

// Lookup reports whether the step has already completed for the given event.
// On a hit the stored output is decoded into out (which must be a pointer).
func (s *StepRecordStore) Lookup(ctx context.Context, eventID, step string, out any) (bool, error) {
	var output []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT output FROM step_records
		WHERE event_id = ? AND step = ?`,
		eventID, step,
	).Scan(&output)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup step record %s/%s: %w", eventID, step, err)
	}

	if out != nil && len(output) > 0 {
		if err := json.Unmarshal(output, out); err != nil {
			return false, fmt.Errorf("decode step record %s/%s: %w", eventID, step, err)
		}
	}

	return true, nil
}

// Record marks the step completed for the given event and stores its output.
// Recording the same step twice is a no-op, so a crash between the side
// effect and the insert can only lead to one extra attempt, never a lost
// record overwrite.
func (s *StepRecordStore) Record(ctx context.Context, eventID, step string, output any) error {
	encoded, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("encode step record %s/%s: %w", eventID, step, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO step_records (event_id, step, output)
		VALUES (?, ?, ?)
		ON CONFLICT (event_id, step) DO NOTHING`,
		eventID, step, encoded,
	)
	if err != nil {
		return fmt.Errorf("record step %s/%s: %w", eventID, step, err)
	}

	return nil
}
