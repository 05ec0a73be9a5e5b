package objpool

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNilFactory is returned by New when no factory function is supplied.
var ErrNilFactory = errors.New("objpool: a factory function is required")

// Factory manufactures a brand-new instance when no idle one is available.
type Factory[T any] func() (T, error)

// Hook is run against a single instance on its way out of or back into
// the pool. A non-nil error propagates to the caller of Take or Return.
type Hook[T any] func(T) error

// Pool holds idle, reusable instances of T. All methods are safe for
// concurrent use without external locking. T should be a pointer (or
// other reference) type: reuse is identity based, so pooling values that
// are copied on hand-off defeats the purpose.
//
// The pool never blocks and never caps its size. Take manufactures on
// demand instead of waiting for a return, and Return always accepts.
type Pool[T any] struct {
	mu   sync.Mutex
	idle []T // unordered; no FIFO/LIFO promise to callers

	create   Factory[T]
	activate Hook[T]
	reset    Hook[T]

	logger    *zap.Logger
	logFields []zap.Field
}

// Option configures a Pool at construction time. Capabilities are fixed
// once New returns; there is no runtime reconfiguration.
type Option[T any] func(*Pool[T])

// WithActivate sets a hook invoked on a reused instance immediately
// before Take hands it to the caller. Freshly created instances skip it.
func WithActivate[T any](hook Hook[T]) Option[T] {
	return func(p *Pool[T]) {
		p.activate = hook
	}
}

// WithReset sets a hook invoked on an instance immediately before Return
// places it back into the idle set.
func WithReset[T any](hook Hook[T]) Option[T] {
	return func(p *Pool[T]) {
		p.reset = hook
	}
}

// WithLogger sets the logger used for debug-level pool events. The
// default is zap.NewNop().
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(p *Pool[T]) {
		p.logger = logger
	}
}

// New creates a pool around the given factory. It returns ErrNilFactory
// if create is nil. Distinct pools are fully independent; nothing is
// shared process-wide.
func New[T any](create Factory[T], opts ...Option[T]) (*Pool[T], error) {
	if create == nil {
		return nil, ErrNilFactory
	}

	p := &Pool[T]{
		create: create,
		logger: zap.NewNop(),
		logFields: []zap.Field{
			zap.String("pool_id", uuid.NewString()),
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Take checks an instance out of the pool. If an idle instance exists it
// is removed, run through the activate hook (if configured) and
// returned; otherwise a fresh one is manufactured with the factory,
// bypassing activate. Losing the last idle instance to a concurrent
// Take is not an error; Take falls through to the factory.
//
// Take never blocks. The only failures are those raised by the caller's
// own factory or activate hook, which propagate unmodified. The pool
// does not track the instance once handed out; the caller owns it until
// it calls Return.
func (p *Pool[T]) Take() (T, error) {
	item, ok := p.tryTake()
	if !ok {
		created, err := p.create()
		if err != nil {
			var zero T
			return zero, err
		}
		p.logger.Debug("no idle instance, created a new one", p.logFields...)
		return created, nil
	}

	if p.activate != nil {
		if err := p.activate(item); err != nil {
			// The instance is partially activated and no longer known
			// to be in a clean state, so it is dropped rather than
			// put back into the idle set.
			var zero T
			return zero, err
		}
	}
	return item, nil
}

// tryTake atomically pops an arbitrary idle instance, reporting false
// when the idle set is empty.
func (p *Pool[T]) tryTake() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.idle)
	if n == 0 {
		var zero T
		return zero, false
	}

	item := p.idle[n-1]
	var zero T
	p.idle[n-1] = zero // don't let the backing array pin the instance
	p.idle = p.idle[:n-1]
	return item, true
}

// Return checks one or more instances back into the pool, in the order
// given. Each instance is run through the reset hook (if configured) and
// then inserted into the idle set. Processing is fail-fast: on the first
// reset error the failing instance is not inserted, the remaining items
// in the batch are abandoned, and the error is returned to the caller.
//
// The pool performs no verification that an instance was actually
// checked out from it, or that it is not returned twice; that contract
// is the caller's to keep.
func (p *Pool[T]) Return(items ...T) error {
	for _, item := range items {
		if p.reset != nil {
			if err := p.reset(item); err != nil {
				return err
			}
		}
		p.mu.Lock()
		p.idle = append(p.idle, item)
		p.mu.Unlock()
	}
	return nil
}

// Prime pre-warms the pool so that it holds at least n idle instances,
// invoking the factory for each missing one. Primed instances bypass
// activate and reset; the factory is expected to produce them ready for
// use. The returned delta is n minus the idle count observed when Prime
// started: zero or negative means the pool was already warm enough and
// nothing was created or removed. Under concurrent Take/Return traffic
// the delta is a best-effort estimate, not a transactional count.
//
// If the factory fails mid-way, Prime returns the number of instances
// actually added together with the factory's error.
func (p *Pool[T]) Prime(n int) (int, error) {
	delta := n - p.Idle()
	if delta <= 0 {
		return delta, nil
	}

	for i := 0; i < delta; i++ {
		item, err := p.create()
		if err != nil {
			return i, err
		}
		p.mu.Lock()
		p.idle = append(p.idle, item)
		p.mu.Unlock()
	}

	p.logger.Debug("primed pool",
		append(p.logFields, zap.Int("created", delta))...)
	return delta, nil
}

// Idle reports the number of idle instances currently held. The value is
// a point-in-time snapshot and may be stale by the time it is read under
// concurrent traffic.
func (p *Pool[T]) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}
