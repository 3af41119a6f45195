package metrics

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

// Placeholder metrics, fixed constants by contract rather than live measurements.
const (
	ResponseTimeAvg   = 0.2
	MemoryUsageMB     = 8.5
	CPUUsagePercent   = 2.1
	ActiveConnections = 1
)

// Tracker holds process-wide request counters. The request count is
// incremented exactly once per inbound request, matched or not; uptime and
// throughput are derived on read.
type Tracker struct {
	start    time.Time
	now      func() time.Time
	requests atomic.Int64
}

// NewTracker creates a tracker anchored at the current time.
func NewTracker() *Tracker {
	return NewTrackerWithClock(time.Now)
}

// NewTrackerWithClock creates a tracker using the given clock. The start time
// is fixed at construction.
func NewTrackerWithClock(now func() time.Time) *Tracker {
	return &Tracker{
		start: now(),
		now:   now,
	}
}

// IncRequests counts one inbound request and returns the new total.
func (t *Tracker) IncRequests() int64 {
	return t.requests.Add(1)
}

// Requests returns the number of requests counted so far.
func (t *Tracker) Requests() int64 {
	return t.requests.Load()
}

// Uptime returns the elapsed time since process start.
func (t *Tracker) Uptime() time.Duration {
	return t.now().Sub(t.start)
}

// RequestsPerSecond returns throughput since start, 0 when no time has elapsed.
func (t *Tracker) RequestsPerSecond() float64 {
	elapsed := t.Uptime().Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(t.Requests()) / elapsed
}

// HealthSnapshot is the flat /health payload.
type HealthSnapshot struct {
	Status            string `json:"status"`
	Timestamp         int64  `json:"timestamp"`
	Uptime            string `json:"uptime"`
	UsersCount        int64  `json:"users_count"`
	RequestsProcessed int64  `json:"requests_processed"`
}

// Snapshot is the flat /metrics payload.
type Snapshot struct {
	RequestsTotal     int64   `json:"requests_total"`
	ResponseTimeAvg   float64 `json:"response_time_avg"`
	MemoryUsage       float64 `json:"memory_usage"`
	CPUUsage          float64 `json:"cpu_usage"`
	ActiveConnections int     `json:"active_connections"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// Health builds the health payload for the given store size.
func (t *Tracker) Health(usersCount int64) HealthSnapshot {
	return HealthSnapshot{
		Status:            "healthy",
		Timestamp:         t.now().Unix(),
		Uptime:            fmt.Sprintf("%.1fs", t.Uptime().Seconds()),
		UsersCount:        usersCount,
		RequestsProcessed: t.Requests(),
	}
}

// Metrics builds the metrics payload.
func (t *Tracker) Metrics() Snapshot {
	return Snapshot{
		RequestsTotal:     t.Requests(),
		ResponseTimeAvg:   ResponseTimeAvg,
		MemoryUsage:       MemoryUsageMB,
		CPUUsage:          CPUUsagePercent,
		ActiveConnections: ActiveConnections,
		RequestsPerSecond: round1(t.RequestsPerSecond()),
		UptimeSeconds:     round1(t.Uptime().Seconds()),
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
