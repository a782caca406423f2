package utils

import (
	"sync"
	"time"
)

// TimeProvider abstracts the wall clock so time based logic can be unit tested
type TimeProvider interface {
	Now() time.Time
}

// SystemTime returns the local system time
type SystemTime struct{}

// Now returns current time
func (SystemTime) Now() time.Time {
	return time.Now()
}

// ManualTime is a TimeProvider that only moves when told to
type ManualTime struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualTime creates a ManualTime starting at t
func NewManualTime(t time.Time) *ManualTime {
	return &ManualTime{now: t}
}

// Now returns the current manual time
func (m *ManualTime) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the manual time forward by d
func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
