package workflow

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "workflow.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestStepRecordStore_LookupMiss(t *testing.T) {
	store, err := NewStepRecordStore(newTestDB(t))
	require.NoError(t, err)

	var out string
	done, err := store.Lookup(context.Background(), "evt-1", "some-step", &out)
	require.NoError(t, err)
	require.False(t, done)
	require.Empty(t, out)
}

func TestStepRecordStore_RecordAndLookup(t *testing.T) {
	store, err := NewStepRecordStore(newTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "evt-1", "generate-welcome-intro", "Welcome Ann!"))

	var out string
	done, err := store.Lookup(ctx, "evt-1", "generate-welcome-intro", &out)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, "Welcome Ann!", out)
}

func TestStepRecordStore_RecordIsIdempotent(t *testing.T) {
	store, err := NewStepRecordStore(newTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "evt-1", "step", "first"))
	require.NoError(t, store.Record(ctx, "evt-1", "step", "second"))

	var out string
	done, err := store.Lookup(ctx, "evt-1", "step", &out)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, "first", out)
}

func TestStepRecordStore_KeysByEventAndStep(t *testing.T) {
	store, err := NewStepRecordStore(newTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "evt-1", "step-a", "one"))

	done, err := store.Lookup(ctx, "evt-2", "step-a", nil)
	require.NoError(t, err)
	require.False(t, done)

	done, err = store.Lookup(ctx, "evt-1", "step-b", nil)
	require.NoError(t, err)
	require.False(t, done)

	var structured StepResult
	require.NoError(t, store.Record(ctx, "evt-1", "step-b", StepResult{Success: true, Message: "done"}))
	done, err = store.Lookup(ctx, "evt-1", "step-b", &structured)
	require.NoError(t, err)
	require.True(t, done)
	require.True(t, structured.Success)
	require.Equal(t, "done", structured.Message)
}
