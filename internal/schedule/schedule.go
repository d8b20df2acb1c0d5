// Package schedule runs fixed-period callbacks behind an explicit cancellation handle.
package schedule

import (
	"sync"
	"time"
)

// Task is a running periodic callback. The zero value is inert.
type Task struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Every invokes fn with the tick time once per period until Stop is called.
// The first call happens one period after Every returns. A non-positive
// period or nil fn yields an inert task.
func Every(period time.Duration, fn func(time.Time)) *Task {
	t := &Task{}
	if period <= 0 || fn == nil {
		return t
	}
	t.stop = make(chan struct{})
	t.done = make(chan struct{})

	ticker := time.NewTicker(period)
	go func() {
		defer close(t.done)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case now := <-ticker.C:
				select {
				case <-t.stop:
					return
				default:
				}
				fn(now)
			}
		}
	}()
	return t
}

// Stop cancels the task and waits for an in-progress callback to return.
// It is safe to call more than once and on a nil task. Stop must not be
// called from inside the task's own callback.
func (t *Task) Stop() {
	if t == nil || t.stop == nil {
		return
	}
	t.once.Do(func() { close(t.stop) })
	<-t.done
}

// Active reports whether the task has a running ticker.
func (t *Task) Active() bool {
	if t == nil || t.stop == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}
