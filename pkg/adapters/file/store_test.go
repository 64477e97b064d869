package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements RunStore
var _ ports.RunStore = (*file.Store)(nil)

func TestStore_Contract(t *testing.T) {
	ports.RunRunStoreContract(t, file.NewStore(t.TempDir()))
}

func TestStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(ctx, &domain.RunRecord{ID: "same", Input: "a"}))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "same.json", entries[0].Name())
}

func TestStore_EmptyID(t *testing.T) {
	store := file.NewStore(t.TempDir())
	assert.Error(t, store.Save(context.Background(), &domain.RunRecord{}))
	_, err := store.Load(context.Background(), "")
	assert.Error(t, err)
}

func TestStore_ListMissingDir(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "none"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
