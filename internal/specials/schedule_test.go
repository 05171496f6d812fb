package specials

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBlob is an in-memory Blob for tests.
type memBlob struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
	fail   bool
}

func newMemBlob() *memBlob {
	return &memBlob{data: make(map[string][]byte)}
}

func (b *memBlob) Read(key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[key]
	return v, ok, nil
}

func (b *memBlob) Write(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail {
		return errors.New("disk full")
	}
	b.writes++
	b.data[key] = append([]byte{}, value...)
	return nil
}

func TestScheduleStoreLoadMissingBlob(t *testing.T) {
	s := NewScheduleStore(newMemBlob(), nil)
	require.NoError(t, s.Load())

	schedule := s.Get()
	for _, d := range Days {
		assert.Empty(t, schedule[d])
	}
}

func TestScheduleStoreLoadRestores(t *testing.T) {
	blob := newMemBlob()
	blob.data[BlobKey] = []byte(`{"friday":["item_1"],"saturday":["item_6","item_3"]}`)

	s := NewScheduleStore(blob, nil)
	require.NoError(t, s.Load())

	assert.Equal(t, []string{"item_1"}, s.GetDay(Friday))
	assert.Equal(t, []string{"item_6", "item_3"}, s.GetDay(Saturday))
	assert.Empty(t, s.GetDay(Monday))
}

func TestSetDayDedupesAndPersists(t *testing.T) {
	blob := newMemBlob()
	s := NewScheduleStore(blob, nil)

	got := s.SetDay(Friday, []string{"item_1", "item_2", "item_1"})
	assert.Equal(t, []string{"item_1", "item_2"}, got)
	assert.Equal(t, 1, blob.writes)

	var stored Schedule
	require.NoError(t, json.Unmarshal(blob.data[BlobKey], &stored))
	assert.Equal(t, []string{"item_1", "item_2"}, stored[Friday])
}

func TestAddToDayIdempotent(t *testing.T) {
	blob := newMemBlob()
	s := NewScheduleStore(blob, nil)

	got := s.AddToDay(Monday, "item_7")
	assert.Equal(t, []string{"item_7"}, got)
	assert.Equal(t, 1, blob.writes)

	// Adding the same item again neither grows the list nor rewrites
	got = s.AddToDay(Monday, "item_7")
	assert.Equal(t, []string{"item_7"}, got)
	assert.Equal(t, 1, blob.writes)
}

func TestRemoveFromDay(t *testing.T) {
	blob := newMemBlob()
	s := NewScheduleStore(blob, nil)
	s.SetDay(Saturday, []string{"item_6", "item_3"})

	got := s.RemoveFromDay(Saturday, "item_6")
	assert.Equal(t, []string{"item_3"}, got)

	// Removing an absent item is a quiet no-op
	writes := blob.writes
	got = s.RemoveFromDay(Saturday, "item_6")
	assert.Equal(t, []string{"item_3"}, got)
	assert.Equal(t, writes, blob.writes)
}

func TestIsSpecialOn(t *testing.T) {
	s := NewScheduleStore(newMemBlob(), nil)
	s.SetDay(Tuesday, []string{"item_9"})

	assert.True(t, s.IsSpecialOn(Tuesday, "item_9"))
	assert.False(t, s.IsSpecialOn(Wednesday, "item_9"))
	assert.False(t, s.IsSpecialOn(Tuesday, "item_1"))
	assert.False(t, s.IsSpecialOn(Day("funday"), "item_9"))
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	blob := newMemBlob()
	blob.fail = true
	s := NewScheduleStore(blob, nil)

	got := s.SetDay(Friday, []string{"item_1"})
	assert.Equal(t, []string{"item_1"}, got)
	assert.Equal(t, []string{"item_1"}, s.GetDay(Friday))
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewScheduleStore(newMemBlob(), nil)
	s.SetDay(Friday, []string{"item_1"})

	schedule := s.Get()
	schedule[Friday][0] = "mutated"

	assert.Equal(t, []string{"item_1"}, s.GetDay(Friday))
}
