package gameplay

import "time"

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the timer before it fired.
	Stop() bool
}

// Clock schedules callbacks. The game never sleeps; every hold is a timer.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock schedules with the runtime timer wheel.
type SystemClock struct{}

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
