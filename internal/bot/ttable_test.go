package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTStoreAndProbe(t *testing.T) {
	tt := NewTranspositionTable(4)

	tt.Store(42, ttEntry{depth: 3, bound: boundExact, score: 17, node: &node{}})

	// A probe at the stored depth or shallower hits.
	entry, ok := tt.Probe(42, 3)
	require.True(t, ok)
	assert.Equal(t, 17, entry.score)
	_, ok = tt.Probe(42, 2)
	assert.True(t, ok)

	// A probe requiring more depth misses.
	_, ok = tt.Probe(42, 4)
	assert.False(t, ok)

	// Unknown hash misses.
	_, ok = tt.Probe(7, 1)
	assert.False(t, ok)
}

func TestTTOverwriteOnlyDeeper(t *testing.T) {
	tt := NewTranspositionTable(4)

	tt.Store(42, ttEntry{depth: 5, score: 1})
	tt.Store(42, ttEntry{depth: 3, score: 2})
	entry, ok := tt.Probe(42, 1)
	require.True(t, ok)
	assert.Equal(t, 1, entry.score, "a shallower entry must not replace a deeper one")

	tt.Store(42, ttEntry{depth: 6, score: 3})
	entry, ok = tt.Probe(42, 1)
	require.True(t, ok)
	assert.Equal(t, 3, entry.score, "a strictly deeper entry replaces")

	tt.Store(42, ttEntry{depth: 6, score: 4})
	entry, _ = tt.Probe(42, 1)
	assert.Equal(t, 3, entry.score, "equal depth does not replace")
}

func TestTTAdvanceTurn(t *testing.T) {
	tt := NewTranspositionTable(2)

	tt.Store(1, ttEntry{depth: 4, score: 11})
	tt.AdvanceTurn()

	// The old generation is still probed.
	entry, ok := tt.Probe(1, 4)
	require.True(t, ok)
	assert.Equal(t, 11, entry.score)

	// New entries land in the new generation; the newest wins the walk.
	tt.Store(1, ttEntry{depth: 4, score: 22})
	entry, _ = tt.Probe(1, 4)
	assert.Equal(t, 22, entry.score)

	// After enough turns the oldest generation is dropped.
	tt.AdvanceTurn()
	tt.AdvanceTurn()
	_, ok = tt.Probe(1, 1)
	assert.False(t, ok, "entries older than the ring size must be evicted")
	assert.Equal(t, 0, tt.Len())
}

func TestTTNewestPreferredOverOlderDeeper(t *testing.T) {
	tt := NewTranspositionTable(4)

	tt.Store(9, ttEntry{depth: 8, score: 1})
	tt.AdvanceTurn()
	tt.Store(9, ttEntry{depth: 4, score: 2})

	// A shallow probe prefers the newest generation even though an older,
	// deeper entry exists.
	entry, ok := tt.Probe(9, 3)
	require.True(t, ok)
	assert.Equal(t, 2, entry.score)

	// A deep probe falls through to the older generation.
	entry, ok = tt.Probe(9, 6)
	require.True(t, ok)
	assert.Equal(t, 1, entry.score)
}
