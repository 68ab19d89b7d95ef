package audiobuffer

import (
	"testing"
	"time"

	"github.com/continuum-run/continuum/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAndFetchRoundTrip(t *testing.T) {
	p := New(10, time.Minute)
	result := p.Store([]int16{1, 2, 3, 4}, 16000, "adapter-a")
	assert.NotEmpty(t, result.Handle)
	assert.Equal(t, 4, result.SampleCount)

	entry, err := p.Fetch(result.Handle)
	require.NoError(t, err)
	assert.Equal(t, []int16{1, 2, 3, 4}, entry.Samples)
}

func TestStoreCopiesSamplesForImmutability(t *testing.T) {
	p := New(10, time.Minute)
	samples := []int16{1, 2, 3}
	result := p.Store(samples, 16000, "adapter-a")
	samples[0] = 999

	entry, err := p.Fetch(result.Handle)
	require.NoError(t, err)
	assert.Equal(t, int16(1), entry.Samples[0])
}

func TestFetchUnknownHandleErrors(t *testing.T) {
	p := New(10, time.Minute)
	_, err := p.Fetch("nonexistent")
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.KindBadParam))
}

func TestFetchUpdatesLastAccessed(t *testing.T) {
	p := New(10, time.Minute)
	fakeNow := time.Unix(1000, 0)
	p.now = func() time.Time { return fakeNow }
	result := p.Store([]int16{1}, 16000, "a")

	later := fakeNow.Add(time.Second)
	p.now = func() time.Time { return later }
	entry, err := p.Fetch(result.Handle)
	require.NoError(t, err)
	assert.Equal(t, later, entry.LastAccessed)
}

func TestDiscardRemovesEntry(t *testing.T) {
	p := New(10, time.Minute)
	result := p.Store([]int16{1}, 16000, "a")
	p.Discard(result.Handle)
	_, err := p.Fetch(result.Handle)
	assert.Error(t, err)
}

func TestLRUEvictionAtCapacity(t *testing.T) {
	p := New(2, time.Minute)
	r1 := p.Store([]int16{1}, 16000, "a")
	r2 := p.Store([]int16{2}, 16000, "b")
	// Access r1 so r2 becomes the least-recently-used entry.
	_, err := p.Fetch(r1.Handle)
	require.NoError(t, err)

	p.Store([]int16{3}, 16000, "c")

	_, err = p.Fetch(r2.Handle)
	assert.Error(t, err, "least-recently-used entry should have been evicted")
	assert.Equal(t, 2, p.Len())
}

func TestExpiredEntrySweptOnStore(t *testing.T) {
	fakeNow := time.Unix(0, 0)
	p := New(10, 10*time.Second)
	p.now = func() time.Time { return fakeNow }
	result := p.Store([]int16{1}, 16000, "a")

	fakeNow = fakeNow.Add(time.Minute)
	p.Store([]int16{2}, 16000, "b")

	_, err := p.Fetch(result.Handle)
	assert.Error(t, err)
}

func TestSweepRemovesExpiredEntries(t *testing.T) {
	fakeNow := time.Unix(0, 0)
	p := New(10, 10*time.Second)
	p.now = func() time.Time { return fakeNow }
	p.Store([]int16{1}, 16000, "a")

	fakeNow = fakeNow.Add(time.Minute)
	removed := p.Sweep()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, p.Len())
}
