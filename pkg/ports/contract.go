package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunRunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	newRecord := func(id string) *domain.RunRecord {
		return &domain.RunRecord{
			ID:        id,
			Machine:   "contract",
			Input:     "abba",
			MaxSteps:  500,
			StartedAt: time.Now().UTC().Truncate(time.Millisecond),
			Duration:  3 * time.Millisecond,
			Result: &domain.RunResult{
				Accepted:   true,
				FinalState: 2,
				Steps:      7,
				Tapes: []domain.TapeSnapshot{
					{Start: -1, Head: 2, Content: "βabba"},
				},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		rec := newRecord(runID)

		err := store.Save(ctx, rec)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, rec.ID, loaded.ID)
		assert.Equal(t, rec.Machine, loaded.Machine)
		assert.Equal(t, rec.Input, loaded.Input)
		assert.Equal(t, rec.Verdict(), loaded.Verdict())
		require.NotNil(t, loaded.Result)
		assert.Equal(t, 7, loaded.Result.Steps)
		assert.Equal(t, domain.StateID(2), loaded.Result.FinalState)
		require.Len(t, loaded.Result.Tapes, 1)
		assert.Equal(t, "βabba", loaded.Result.Tapes[0].Content)
		assert.True(t, rec.StartedAt.Equal(loaded.StartedAt), "StartedAt must survive persistence")
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		rec := newRecord(runID)
		rec.Result = nil
		rec.Error = domain.ErrMaxStepsReached.Error()
		require.NoError(t, store.Save(ctx, rec))

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, domain.VerdictError, loaded.Verdict())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newRecord(runID)))

		err := store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		require.NoError(t, store.Save(ctx, newRecord(id1)))
		require.NoError(t, store.Save(ctx, newRecord(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
