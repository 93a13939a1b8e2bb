// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cspanachis/emzconv/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.HistoryConfig{HistoryDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(id string, started time.Time) types.RunRecord {
	return types.RunRecord{
		ID:           id,
		InputDir:     "/data/in",
		OutputDir:    "/data/in/output_png_images",
		OutputFormat: "png",
		StartedAt:    started,
		FinishedAt:   started.Add(2 * time.Second),
		Relabeled:    2,
		Converted:    1,
		Failed:       1,
		ReportPath:   "unsuccessful_conversions.csv",
		Outcomes: []types.FileOutcome{
			{Name: "a.wmf", OutputPath: "/data/in/output_png_images/a.png", Status: types.FileConverted},
			{Name: "bad.wmf", Status: types.FileFailed, Reason: "improper image header"},
		},
	}
}

func TestRecordAndListRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.RecordRun(ctx, sampleRun("run-1", base)))
	require.NoError(t, store.RecordRun(ctx, sampleRun("run-2", base.Add(time.Hour))))

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, "run-1", runs[1].ID)
	assert.Equal(t, 1, runs[0].Converted)
	assert.Equal(t, 1, runs[0].Failed)
	assert.Equal(t, "png", runs[0].OutputFormat)
	assert.True(t, runs[0].StartedAt.Equal(base.Add(time.Hour)))
}

func TestListRuns_Limit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-1", "run-2", "run-3"} {
		require.NoError(t, store.RecordRun(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Minute))))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].ID)
}

func TestRunFiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sampleRun("run-1", time.Now().UTC())
	require.NoError(t, store.RecordRun(ctx, rec))

	outcomes, err := store.RunFiles(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, "a.wmf", outcomes[0].Name)
	assert.Equal(t, types.FileConverted, outcomes[0].Status)
	assert.Equal(t, "bad.wmf", outcomes[1].Name)
	assert.True(t, outcomes[1].Failed())
	assert.Equal(t, "improper image header", outcomes[1].Reason)
}

func TestRunFiles_UnknownRun(t *testing.T) {
	store := newTestStore(t)

	_, err := store.RunFiles(context.Background(), "no-such-run")
	assert.Error(t, err)
}

func TestRecordRun_DuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sampleRun("run-1", time.Now().UTC())
	require.NoError(t, store.RecordRun(ctx, rec))
	assert.Error(t, store.RecordRun(ctx, rec))
}

func TestNewStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	cfg := types.HistoryConfig{HistoryDir: dir}

	store, err := NewStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.RecordRun(context.Background(), sampleRun("run-1", time.Now().UTC())))
	require.NoError(t, store.Close())

	// Schema bootstrap is idempotent; existing rows survive a reopen.
	store, err = NewStore(cfg)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
