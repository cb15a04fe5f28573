// ABOUTME: Cancellable periodic scheduling for the countdown tick.
// ABOUTME: TickerScheduler runs callbacks from a single goroutine per handle.
package timer

import (
	"sync"
	"time"
)

// Handle is a scheduled periodic task.
type Handle interface {
	// Cancel stops future invocations. It never blocks and may be called
	// from inside the task itself.
	Cancel()
}

// Scheduler invokes fn every d until the returned Handle is cancelled.
type Scheduler interface {
	Every(d time.Duration, fn func()) Handle
}

// TickerScheduler schedules with time.Ticker.
type TickerScheduler struct{}

// Every starts a goroutine that calls fn once per period.
func (TickerScheduler) Every(d time.Duration, fn func()) Handle {
	h := &tickerHandle{stop: make(chan struct{})}
	t := time.NewTicker(d)

	go func() {
		defer t.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-t.C:
				// A tick and a cancel can be ready together; cancel wins.
				select {
				case <-h.stop:
					return
				default:
				}
				fn()
			}
		}
	}()

	return h
}

type tickerHandle struct {
	stop chan struct{}
	once sync.Once
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() { close(h.stop) })
}
