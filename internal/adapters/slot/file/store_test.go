package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/holameeto/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "slot key is empty"},
		{name: "whitespace", key: "   ", wantErr: "slot key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid slot key"},
		{name: "traversal", key: "../escape", wantErr: "invalid slot key"},
		{name: "deep traversal", key: "../../history", wantErr: "invalid slot key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "[]")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "slots")
	store := NewStore(root)
	want := `[{"id":"a","link":"https://meet.jit.si/HolaMeeto-abc1234","timestamp":1}]`

	require.NoError(t, store.Put(context.Background(), domain.HistorySlotKey, want))

	got, err := store.Get(context.Background(), domain.HistorySlotKey)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(filepath.Join(root, domain.HistorySlotKey+slotFileExt))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(slotFileMode), info.Mode().Perm())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStorePutReplacesPreviousValue(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), "slot", "first"))
	require.NoError(t, store.Put(context.Background(), "slot", "second"))

	got, err := store.Get(context.Background(), "slot")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestStoreGetMissingSlotReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), domain.HistorySlotKey)
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestStoreDeleteIsIdempotentWhenSlotMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	require.NoError(t, store.Put(context.Background(), "slot", "value"))
	require.NoError(t, store.Delete(context.Background(), "slot"))
	require.NoError(t, store.Delete(context.Background(), "slot"))

	_, err := store.Get(context.Background(), "slot")
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestStoreHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewStore(t.TempDir())
	assert.ErrorIs(t, store.Put(ctx, "slot", "value"), context.Canceled)
	_, err := store.Get(ctx, "slot")
	assert.ErrorIs(t, err, context.Canceled)
}
