package session

import (
	"sync"
	"time"
)

// CancelHandle stops a scheduled callback. Cancel is idempotent and
// safe to call after the callback has fired.
type CancelHandle interface {
	Cancel()
}

// Scheduler is the timer abstraction behind the promotion and expiry
// sweeps and the per-status-message dismissal timers. The orchestrator
// collects every handle it receives and cancels them all at teardown.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) CancelHandle
	ScheduleRepeating(interval time.Duration, fn func()) CancelHandle
}

type timerScheduler struct{}

// NewTimerScheduler returns the production Scheduler backed by the
// runtime timer heap.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) Schedule(delay time.Duration, fn func()) CancelHandle {
	timer := time.AfterFunc(delay, fn)
	return &timerHandle{timer: timer}
}

func (timerScheduler) ScheduleRepeating(interval time.Duration, fn func()) CancelHandle {
	if interval <= 0 {
		interval = time.Second
	}
	handle := &tickerHandle{stop: make(chan struct{})}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-handle.stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return handle
}

type timerHandle struct {
	once  sync.Once
	timer *time.Timer
}

func (h *timerHandle) Cancel() {
	h.once.Do(func() {
		h.timer.Stop()
	})
}

type tickerHandle struct {
	once sync.Once
	stop chan struct{}
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() {
		close(h.stop)
	})
}
