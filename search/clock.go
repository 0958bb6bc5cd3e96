package search

import "time"

// Timer is a pending deferred call that can be stopped before it fires
type Timer interface {
	// Stop prevents the call from firing. It reports whether the call was still pending.
	Stop() bool
}

// Clock schedules deferred calls. Tests substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
