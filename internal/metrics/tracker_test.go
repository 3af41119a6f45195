package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock returns a controllable clock starting at a fixed instant.
func fakeClock(start time.Time) (func() time.Time, func(d time.Duration)) {
	var mu sync.Mutex
	current := start
	now := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(d)
	}
	return now, advance
}

func TestTracker_CountsRequests(t *testing.T) {
	tr := NewTracker()

	assert.Equal(t, int64(0), tr.Requests())
	assert.Equal(t, int64(1), tr.IncRequests())
	assert.Equal(t, int64(2), tr.IncRequests())
	assert.Equal(t, int64(2), tr.Requests())
}

func TestTracker_ConcurrentIncrements(t *testing.T) {
	tr := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.IncRequests()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(5000), tr.Requests())
}

func TestTracker_RequestsPerSecond_ZeroElapsed(t *testing.T) {
	now, _ := fakeClock(time.Unix(1_700_000_000, 0))
	tr := NewTrackerWithClock(now)
	tr.IncRequests()

	assert.Equal(t, float64(0), tr.RequestsPerSecond())
}

func TestTracker_Metrics(t *testing.T) {
	now, advance := fakeClock(time.Unix(1_700_000_000, 0))
	tr := NewTrackerWithClock(now)

	for i := 0; i < 25; i++ {
		tr.IncRequests()
	}
	advance(10 * time.Second)

	snap := tr.Metrics()
	assert.Equal(t, int64(25), snap.RequestsTotal)
	assert.Equal(t, 2.5, snap.RequestsPerSecond)
	assert.Equal(t, 10.0, snap.UptimeSeconds)

	// Placeholder fields are fixed by contract
	assert.Equal(t, 0.2, snap.ResponseTimeAvg)
	assert.Equal(t, 8.5, snap.MemoryUsage)
	assert.Equal(t, 2.1, snap.CPUUsage)
	assert.Equal(t, 1, snap.ActiveConnections)
}

func TestTracker_Metrics_RoundsToOneDecimal(t *testing.T) {
	now, advance := fakeClock(time.Unix(1_700_000_000, 0))
	tr := NewTrackerWithClock(now)

	tr.IncRequests()
	advance(3 * time.Second) // 1/3 req/s

	snap := tr.Metrics()
	assert.Equal(t, 0.3, snap.RequestsPerSecond)
}

func TestTracker_Health(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	now, advance := fakeClock(start)
	tr := NewTrackerWithClock(now)

	tr.IncRequests()
	tr.IncRequests()
	advance(1500 * time.Millisecond)

	h := tr.Health(3)
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, start.Add(1500*time.Millisecond).Unix(), h.Timestamp)
	assert.Equal(t, "1.5s", h.Uptime)
	assert.Equal(t, int64(3), h.UsersCount)
	assert.Equal(t, int64(2), h.RequestsProcessed)
}
