package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SaveAndGetRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := NewRun("pdk180.svrf")
	run.Technology = "Generic"
	run.ProcessNode = "180nm"
	run.Layers = 12
	run.Rules = 40
	run.Translated = 36
	run.Warnings = 2

	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "pdk180.svrf", got.InputFile)
	assert.Equal(t, "Generic", got.Technology)
	assert.Equal(t, "180nm", got.ProcessNode)
	assert.Equal(t, 12, got.Layers)
	assert.Equal(t, 40, got.Rules)
	assert.Equal(t, 36, got.Translated)
	assert.Equal(t, 0, got.Errors)
	assert.Equal(t, 2, got.Warnings)
	assert.InDelta(t, 0.9, got.Coverage(), 1e-9)
}

func TestStore_GetRunMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRun(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestStore_ListRunsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := NewRun("deck.svrf")
		run.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		run.Rules = i
		require.NoError(t, store.SaveRun(ctx, run))
	}

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, 2, runs[0].Rules)
	assert.Equal(t, 0, runs[2].Rules)
}

func TestStore_ListRunsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveRun(ctx, NewRun("deck.svrf")))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRun_CoverageEmptyDeck(t *testing.T) {
	run := NewRun("empty.svrf")
	assert.Equal(t, 1.0, run.Coverage())
}
