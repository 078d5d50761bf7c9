package toml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/holameeto/internal/domain"
	"github.com/bnema/holameeto/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", "slots.toml")
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)).Maybe()

	store, err := NewStore(path, clock)
	require.NoError(t, err)
	return store, path
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, path := newTestStore(t)
	history := `[{"id":"a","link":"https://meet.jit.si/HolaMeeto-Team_Sync-abc1234","nickname":"Team \"Sync\"","timestamp":1771066800000}]`

	require.NoError(t, store.Put(context.Background(), domain.HistorySlotKey, history))
	require.NoError(t, store.Put(context.Background(), "other", "value"))

	got, err := store.Get(context.Background(), domain.HistorySlotKey)
	require.NoError(t, err)
	assert.Equal(t, history, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "2026-02-14T11:00:00Z")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(slotsFileMode), info.Mode().Perm())
}

func TestStorePutOverwritesExistingSlot(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	require.NoError(t, store.Put(context.Background(), "slot", "first"))
	require.NoError(t, store.Put(context.Background(), "slot", "second"))

	got, err := store.Get(context.Background(), "slot")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestStoreGetMissing(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), domain.HistorySlotKey)
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	require.NoError(t, store.Put(context.Background(), "a", "1"))
	require.NoError(t, store.Put(context.Background(), "b", "2"))

	require.NoError(t, store.Delete(context.Background(), "a"))
	require.NoError(t, store.Delete(context.Background(), "a"))

	_, err := store.Get(context.Background(), "a")
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
	got, err := store.Get(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "2", got)
}

func TestStoreRejectsNewerSchemaVersion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "slots.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"version = 2",
		"",
		"[[slots]]",
		"key = \"holaMeetoHistory\"",
		"value = \"[]\"",
		"",
	}, "\n")), 0o600))

	store, err := NewStore(path, nil)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), domain.HistorySlotKey)
	assert.ErrorContains(t, err, "unsupported slots schema version 2")
}

func TestStoreRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewStore("  ", nil)
	assert.ErrorContains(t, err, "slots path is empty")
}

func TestStoresOnSamePathShareLock(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "slots.toml")
	first, err := NewStore(path, nil)
	require.NoError(t, err)
	second, err := NewStore(path, nil)
	require.NoError(t, err)

	assert.Same(t, first.mu, second.mu)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store := first
			if i%2 == 0 {
				store = second
			}
			assert.NoError(t, store.Put(context.Background(), "slot-"+string(rune('a'+i)), "v"))
		}(i)
	}
	wg.Wait()

	for i := range 10 {
		_, err := first.Get(context.Background(), "slot-"+string(rune('a'+i)))
		assert.NoError(t, err)
	}
}
