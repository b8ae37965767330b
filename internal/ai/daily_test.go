package ai

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyMemoFillsOncePerDay(t *testing.T) {
	memo := NewDailyMemo()

	calls := 0
	value, cached := memo.GetOrFill(func() string {
		calls++
		return "today's speech"
	})
	require.False(t, cached)
	assert.Equal(t, "today's speech", value)

	value, cached = memo.GetOrFill(func() string {
		calls++
		return "should not run"
	})
	assert.True(t, cached)
	assert.Equal(t, "today's speech", value)
	assert.Equal(t, 1, calls)
}

func TestDailyMemoExpiresAtMidnight(t *testing.T) {
	current := time.Date(2024, 6, 1, 23, 50, 0, 0, time.UTC)
	memo := NewDailyMemo()
	memo.now = func() time.Time { return current }

	value, cached := memo.GetOrFill(func() string { return "yesterday's speech" })
	require.False(t, cached)
	assert.Equal(t, "yesterday's speech", value)

	current = current.Add(20 * time.Minute)
	value, cached = memo.GetOrFill(func() string { return "new day's speech" })
	require.False(t, cached)
	assert.Equal(t, "new day's speech", value)

	value, cached = memo.GetOrFill(func() string { return "should not run" })
	assert.True(t, cached)
	assert.Equal(t, "new day's speech", value)
}

func TestDailyMemoConcurrentColdSlot(t *testing.T) {
	memo := NewDailyMemo()

	var fills int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, _ := memo.GetOrFill(func() string {
				atomic.AddInt32(&fills, 1)
				return "the one speech"
			})
			assert.Equal(t, "the one speech", value)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fills))
}
