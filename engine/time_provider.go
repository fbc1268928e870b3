package engine

import "time"

// Clock supplies the tick loop's notion of now
type Clock interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the wall clock with its monotonic component
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a real-time clock
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
