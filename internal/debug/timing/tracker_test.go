package timing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackerRecords(t *testing.T) {
	tt := NewTracker()

	ctx := tt.StartTiming(context.Background(), "b")
	d := tt.EndTiming(ctx)
	assert.GreaterOrEqual(t, d, time.Duration(0))

	tt.Record("a", 2*time.Millisecond)
	tt.Record("a", 4*time.Millisecond)

	assert.Equal(t, []string{"b", "a"}, tt.Operations())
	assert.Len(t, tt.GetTimings("a"), 2)
	assert.Equal(t, 3*time.Millisecond, tt.GetAverageTime("a"))
	assert.Equal(t, time.Duration(0), tt.GetAverageTime("missing"))

	tt.Reset("b")
	assert.Equal(t, []string{"a"}, tt.Operations())
	tt.Reset("")
	assert.Empty(t, tt.Operations())
}

func TestTrackerDisabled(t *testing.T) {
	tt := NewTracker()
	tt.SetEnabled(false)

	ctx := tt.StartTiming(context.Background(), "op")
	assert.Equal(t, time.Duration(0), tt.EndTiming(ctx))
	tt.Record("op", time.Second)
	assert.Nil(t, tt.GetTimings("op"))
}

func TestTrackerLatest(t *testing.T) {
	tt := NewTracker()
	_, ok := tt.Latest("a")
	assert.False(t, ok)

	tt.Record("a", 2*time.Millisecond)
	tt.Record("a", 5*time.Millisecond)

	d, ok := tt.Latest("a")
	assert.True(t, ok)
	assert.Equal(t, 5*time.Millisecond, d)
}
