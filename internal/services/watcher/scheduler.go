// File: internal/services/watcher/scheduler.go
package watcher

import "time"

// CancelFunc stops a scheduled callback. Safe to call more than once and
// after the callback has fired.
type CancelFunc func()

// Scheduler abstracts timer scheduling so the polling state machine runs on
// a fake clock in tests instead of wall time.
type Scheduler interface {
    Schedule(delay time.Duration, fn func()) CancelFunc
}

// TimerScheduler is the production scheduler on time.AfterFunc.
type TimerScheduler struct{}

func NewTimerScheduler() *TimerScheduler {
    return &TimerScheduler{}
}

func (s *TimerScheduler) Schedule(delay time.Duration, fn func()) CancelFunc {
    timer := time.AfterFunc(delay, fn)
    return func() { timer.Stop() }
}
