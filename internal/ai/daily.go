package ai

import (
	"sync"
	"time"
)

// DailyMemo holds a single value per UTC day. The daily speech endpoint uses
// it so the provider is hit at most once per day regardless of traffic.
type DailyMemo struct {
	mu    sync.Mutex
	day   string
	value string
	now   func() time.Time
}

// NewDailyMemo creates an empty memo.
func NewDailyMemo() *DailyMemo {
	return &DailyMemo{now: time.Now}
}

// GetOrFill returns today's value, calling fill to produce it when the slot
// is empty or belongs to a previous day. The lock is held across fill, so
// concurrent callers on a cold slot wait and fill runs once per day.
func (m *DailyMemo) GetOrFill(fill func() string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := m.today()
	if m.day == day && m.value != "" {
		return m.value, true
	}
	m.day = day
	m.value = fill()
	return m.value, false
}

func (m *DailyMemo) today() string {
	return m.now().UTC().Format("2006-01-02")
}
