// Package rotation advances a wrapping index over a fixed-length sequence on a
// timer and on explicit navigation.
package rotation

import (
	"sync"
	"time"

	"finitefield.org/vurel-web/internal/schedule"
)

// DefaultPeriod is the automatic advance interval.
const DefaultPeriod = 5 * time.Second

// Direction selects how Advance moves the index.
type Direction int

const (
	None Direction = iota
	Next
	Prev
)

// Engine owns a current index in [0, length). All methods are safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	index  int
	length int

	period   time.Duration
	onChange func(int)
	task     *schedule.Task
}

// Option configures an Engine.
type Option func(*Engine)

// WithPeriod overrides the automatic advance interval.
func WithPeriod(period time.Duration) Option {
	return func(e *Engine) {
		if period > 0 {
			e.period = period
		}
	}
}

// WithOnChange registers a callback invoked with the new index after an
// automatic advance. It runs on the ticker goroutine and must not call Stop.
func WithOnChange(fn func(int)) Option {
	return func(e *Engine) {
		e.onChange = fn
	}
}

// NewEngine returns an engine positioned at 0 over length items.
func NewEngine(length int, opts ...Option) *Engine {
	if length < 0 {
		length = 0
	}
	e := &Engine{length: length, period: DefaultPeriod}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Index returns the current position. It is 0 for an empty sequence.
func (e *Engine) Index() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index
}

// Len returns the sequence length.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.length
}

// Next moves forward one position, wrapping to 0.
func (e *Engine) Next() int { return e.Advance(Next) }

// Prev moves back one position, wrapping to the last item.
func (e *Engine) Prev() int { return e.Advance(Prev) }

// Advance applies d and returns the new index. None leaves the index as is.
func (e *Engine) Advance(d Direction) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.advanceLocked(d)
}

// GoTo jumps to i. Out-of-range targets are ignored and reported as false.
func (e *Engine) GoTo(i int) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= e.length {
		return e.index, false
	}
	e.index = i
	return e.index, true
}

// SetLength replaces the sequence length. A changed length resets the index
// to 0; a length of 0 also stops the timer.
func (e *Engine) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	e.mu.Lock()
	if n == e.length {
		e.mu.Unlock()
		return
	}
	e.length = n
	e.index = 0
	var task *schedule.Task
	if n == 0 {
		task, e.task = e.task, nil
	}
	e.mu.Unlock()
	task.Stop()
}

// Start begins automatic advancing. It does nothing for an empty sequence or
// when already running. Manual navigation never resets the timer.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.length == 0 || e.task.Active() {
		return
	}
	e.task = schedule.Every(e.period, func(time.Time) { e.tick() })
}

// Stop halts automatic advancing and waits for an in-flight tick.
func (e *Engine) Stop() {
	e.mu.Lock()
	task := e.task
	e.task = nil
	e.mu.Unlock()
	task.Stop()
}

func (e *Engine) tick() {
	e.mu.Lock()
	if e.length == 0 {
		e.mu.Unlock()
		return
	}
	before := e.index
	after := e.advanceLocked(Next)
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil && after != before {
		fn(after)
	}
}

func (e *Engine) advanceLocked(d Direction) int {
	if e.length == 0 {
		return 0
	}
	switch d {
	case Next:
		e.index = (e.index + 1) % e.length
	case Prev:
		e.index = (e.index - 1 + e.length) % e.length
	}
	return e.index
}
