package services

import "time"

// fakeClock returns a fixed instant that tests can move.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }
