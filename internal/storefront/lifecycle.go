package storefront

import (
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"finitefield.org/vurel-web/internal/observability"
)

// Status is the load state of a view that targets one entity.
type Status string

const (
	StatusLoading  Status = "loading"
	StatusReady    Status = "ready"
	StatusNotFound Status = "not_found"
)

// lifecycle is the per-view mount/teardown state embedded by every view.
// mu also guards the embedding view's own fields.
type lifecycle struct {
	id     string
	name   string
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
	stops  []func()

	ready     chan struct{}
	readyOnce sync.Once
	changes   chan struct{}
	closeOnce sync.Once
}

func newLifecycle(name string, logger *zap.Logger) *lifecycle {
	id := ulid.Make().String()
	observability.ViewMounted(name)
	return &lifecycle{
		id:      id,
		name:    name,
		logger:  observability.OrNop(logger).Named("view").With(zap.String("view", name), zap.String("view_id", id)),
		ready:   make(chan struct{}),
		changes: make(chan struct{}, 1),
	}
}

// ID returns the view instance id.
func (l *lifecycle) ID() string { return l.id }

// Ready is closed once the initial load has been applied or discarded.
func (l *lifecycle) Ready() <-chan struct{} { return l.ready }

// Changes receives a signal whenever visible state changes after Ready.
// Signals coalesce; receivers should re-read the snapshot.
func (l *lifecycle) Changes() <-chan struct{} { return l.changes }

// Closed reports whether the view has been torn down.
func (l *lifecycle) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Close stops the view's timers and marks it disposed. Results arriving
// afterwards are discarded. Close is idempotent.
func (l *lifecycle) Close() {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		stops := l.stops
		l.stops = nil
		l.mu.Unlock()

		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
		observability.ViewClosed(l.name)
		l.markReady()
	})
}

// onCloseLocked registers fn to run at teardown. Callers hold l.mu.
func (l *lifecycle) onCloseLocked(fn func()) {
	l.stops = append(l.stops, fn)
}

// commit applies fn under the view lock unless the view is closed, then
// signals readiness. It reports whether fn ran.
func (l *lifecycle) commit(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		l.discard()
		return false
	}
	fn()
	l.mu.Unlock()
	l.markReady()
	l.notify()
	return true
}

func (l *lifecycle) discard() {
	l.logger.Debug("discarding stale result")
	observability.CountStaleDiscard(l.name)
}

func (l *lifecycle) markReady() {
	l.readyOnce.Do(func() { close(l.ready) })
}

func (l *lifecycle) notify() {
	select {
	case l.changes <- struct{}{}:
	default:
	}
}
