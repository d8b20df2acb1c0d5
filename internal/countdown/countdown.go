// Package countdown derives a live day/hour/minute/second breakdown of the
// time left until an end instant.
package countdown

import (
	"fmt"
	"sync"
	"time"

	"finitefield.org/vurel-web/internal/schedule"
)

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour

	// DefaultPeriod is the tick interval used when none is configured.
	DefaultPeriod = time.Second
)

// State is the lifecycle position of an Engine.
type State int

const (
	Unarmed State = iota
	Counting
	Expired
)

func (s State) String() string {
	switch s {
	case Counting:
		return "counting"
	case Expired:
		return "expired"
	default:
		return "unarmed"
	}
}

// MarshalText renders the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name written by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "unarmed":
		*s = Unarmed
	case "counting":
		*s = Counting
	case "expired":
		*s = Expired
	default:
		return fmt.Errorf("countdown: unknown state %q", text)
	}
	return nil
}

// Breakdown is the non-negative remaining time split into buckets.
type Breakdown struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// Remaining floor-divides the millisecond distance from now to end. Distances
// at or below zero give the zero Breakdown.
func Remaining(end, now time.Time) Breakdown {
	distance := end.Sub(now).Milliseconds()
	if distance <= 0 {
		return Breakdown{}
	}
	return Breakdown{
		Days:    distance / msPerDay,
		Hours:   (distance % msPerDay) / msPerHour,
		Minutes: (distance % msPerHour) / msPerMinute,
		Seconds: (distance % msPerMinute) / msPerSecond,
	}
}

// Duration reassembles the breakdown, to whole seconds.
func (b Breakdown) Duration() time.Duration {
	ms := b.Days*msPerDay + b.Hours*msPerHour + b.Minutes*msPerMinute + b.Seconds*msPerSecond
	return time.Duration(ms) * time.Millisecond
}

// IsZero reports whether no time remains.
func (b Breakdown) IsZero() bool {
	return b == Breakdown{}
}

// Snapshot is a point-in-time view of an Engine.
type Snapshot struct {
	State     State     `json:"state"`
	End       time.Time `json:"end_date"`
	Remaining Breakdown `json:"remaining"`
}

// Engine ticks a Breakdown toward zero. All methods are safe for concurrent use.
type Engine struct {
	mu        sync.Mutex
	state     State
	end       time.Time
	remaining Breakdown

	now      func() time.Time
	period   time.Duration
	onChange func(Snapshot)
	task     *schedule.Task
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithPeriod overrides the tick interval.
func WithPeriod(period time.Duration) Option {
	return func(e *Engine) {
		if period > 0 {
			e.period = period
		}
	}
}

// WithOnChange registers a callback invoked after each tick that altered the snapshot.
// The callback runs on the ticker goroutine and must not call Stop.
func WithOnChange(fn func(Snapshot)) Option {
	return func(e *Engine) {
		e.onChange = fn
	}
}

// NewEngine returns an unarmed engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now, period: DefaultPeriod}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Arm sets the end instant and recomputes immediately. Supplying the end
// instant already armed is a no-op, so an expired engine stays expired until
// a different instant arrives. It reports whether the engine was re-armed.
func (e *Engine) Arm(end time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Unarmed && e.end.Equal(end) {
		return false
	}
	e.end = end
	e.state = Counting
	e.recomputeLocked()
	return true
}

// Tick recomputes the breakdown against the clock.
func (e *Engine) Tick() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recomputeLocked()
	return e.snapshotLocked()
}

// Snapshot returns the state without recomputing.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Start begins periodic ticking. Calling Start on a running engine does nothing.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.task.Active() {
		return
	}
	e.task = schedule.Every(e.period, func(time.Time) { e.tick() })
}

// Stop halts ticking and waits for any in-flight tick to finish.
func (e *Engine) Stop() {
	e.mu.Lock()
	task := e.task
	e.task = nil
	e.mu.Unlock()
	task.Stop()
}

func (e *Engine) tick() {
	e.mu.Lock()
	before := e.snapshotLocked()
	e.recomputeLocked()
	after := e.snapshotLocked()
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil && after != before {
		fn(after)
	}
}

func (e *Engine) recomputeLocked() {
	if e.state != Counting {
		return
	}
	now := e.now()
	if !e.end.After(now) {
		e.state = Expired
		e.remaining = Breakdown{}
		return
	}
	e.remaining = Remaining(e.end, now)
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{State: e.state, End: e.end, Remaining: e.remaining}
}
