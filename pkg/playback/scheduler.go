package playback

import (
	"sync"
	"time"
)

// Scheduler starts a repeating trigger. Every calls fn once per period until
// the returned cancel function is called. Cancel must be idempotent and
// must guarantee that fn is not invoked after it returns, except for a call
// already in progress.
type Scheduler interface {
	Every(period time.Duration, fn func()) (cancel func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(period time.Duration, fn func()) func()

// Every calls f.
func (f SchedulerFunc) Every(period time.Duration, fn func()) func() { return f(period, fn) }

// TickerScheduler runs triggers on a time.Ticker in a background goroutine.
type TickerScheduler struct{}

// Every implements Scheduler.
func (TickerScheduler) Every(period time.Duration, fn func()) func() {
	ticker := time.NewTicker(period)
	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// ManualScheduler records the active trigger so it can be fired on demand.
// It is intended for tests and for hosts that own their own event loop.
type ManualScheduler struct {
	mu      sync.Mutex
	fn      func()
	period  time.Duration
	started int
}

// Every implements Scheduler.
func (m *ManualScheduler) Every(period time.Duration, fn func()) func() {
	m.mu.Lock()
	m.fn = fn
	m.period = period
	m.started++
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.fn = nil
			m.mu.Unlock()
		})
	}
}

// Fire invokes the active trigger once. It reports false if no trigger is
// active.
func (m *ManualScheduler) Fire() bool {
	m.mu.Lock()
	fn := m.fn
	m.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Active reports whether a trigger is currently registered.
func (m *ManualScheduler) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fn != nil
}

// Started returns how many triggers have been registered in total.
func (m *ManualScheduler) Started() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// Period returns the period of the most recent trigger.
func (m *ManualScheduler) Period() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.period
}
