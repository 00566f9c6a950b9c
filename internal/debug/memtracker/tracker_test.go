package memtracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerLedger(t *testing.T) {
	mt := NewTracker(true)

	mt.TrackAllocation(1, 100, "src")
	mt.TrackAllocation(2, 400, "dst")
	require.Len(t, mt.GetAllocations(), 2)
	assert.Equal(t, int64(500), mt.ActiveBytes())
	assert.NotEmpty(t, mt.GetAllocations()[1].StackTrace)
	assert.Len(t, mt.GetAllocationsByTag("dst"), 1)

	mt.TrackDeallocation(1, "src")
	stats := mt.GetStats()
	assert.Equal(t, int64(1), stats.CurrentlyActive)
	assert.Equal(t, int64(100), stats.TotalDeallocated)
	assert.Equal(t, int64(2), stats.AllocationCount)
	assert.Len(t, mt.DetectLeaks(0), 1)

	mt.TrackDeallocation(2, "dst")
	mt.TrackDeallocation(2, "dst")
	stats = mt.GetStats()
	assert.Equal(t, int64(0), stats.CurrentlyActive)
	assert.Equal(t, int64(1), stats.LeakCount)
	assert.Empty(t, mt.DetectLeaks(0))
}

func TestTrackerDisabled(t *testing.T) {
	mt := NewTracker(false)
	mt.SetEnabled(false)
	mt.TrackAllocation(1, 100, "src")
	assert.Empty(t, mt.GetAllocations())
	assert.Equal(t, int64(0), mt.GetStats().AllocationCount)
}
