package kernel

import "time"

// Clock supplies timestamps for formation and completion.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock; tests pin time with it.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns UTC wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
