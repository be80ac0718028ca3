package lazycell

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

type contextKey struct{}

// entry is a settled slot. Exactly one of value/err is meaningful: err
// non-nil marks the slot poisoned.
type entry struct {
	value any
	err   error
}

// Registry holds named lazy-once slots. Each key's initializer runs at
// most once per registry; a failed run poisons the slot for the
// registry's lifetime. Create one with NewRegistry, or attach one to a
// context with WithRegistry and retrieve it via FromContext.
type Registry struct {
	group    singleflight.Group
	mu       sync.RWMutex
	store    map[string]entry
	observer Observer
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{store: make(map[string]entry)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithRegistry returns a child context that carries a new Registry.
func WithRegistry(ctx context.Context, opts ...Option) context.Context {
	return NewContext(ctx, NewRegistry(opts...))
}

// NewContext returns a child context carrying r. Use it to share one
// registry across requests or tasks instead of creating one per context.
func NewContext(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, contextKey{}, r)
}

// FromContext retrieves the Registry from ctx, or nil if none is present.
func FromContext(ctx context.Context) *Registry {
	r, _ := ctx.Value(contextKey{}).(*Registry)
	return r
}

func (r *Registry) emit(event Event, keyName string) {
	if r.observer == nil {
		return
	}
	r.observer.On(EventData{Event: event, Key: keyName})
}

// lookup returns the settled entry for name, if any.
func (r *Registry) lookup(name string) (entry, bool) {
	r.mu.RLock()
	e, ok := r.store[name]
	r.mu.RUnlock()
	return e, ok
}

// Get returns the value stored under key, running fn at most once per
// registry for a given key. Concurrent callers for the same key block
// and share the outcome of the single in-flight run, including its
// failure. A failed fn poisons the slot: callers arriving later receive
// a *PoisonedError wrapping the original failure, and fn is never run
// again for that key.
//
// If ctx carries no Registry (WithRegistry was not called), fn is called
// directly.
//
// The same key must always be used with the same type T.
func Get[T any](ctx context.Context, key Key[T], fn func() (T, error)) (T, error) {
	r := FromContext(ctx)
	if r == nil {
		return fn()
	}

	// Fast path: slot already settled.
	if e, ok := r.lookup(key.name); ok {
		r.emit(EventHit, key.name)
		return settled[T](key, e)
	}

	// Slow path: singleflight dedup. The winner runs fn and settles the
	// slot; waiters share the in-flight result.
	v, err, shared := r.group.Do(key.name, func() (any, error) {
		// Double-check: another goroutine may have settled the slot
		// while we waited.
		if e, ok := r.lookup(key.name); ok {
			return e.value, e.err
		}

		// A panic inside fn poisons the slot before singleflight
		// propagates the panic to the winner and all waiters.
		completed := false
		defer func() {
			if completed {
				return
			}
			p := recover()
			r.mu.Lock()
			r.store[key.name] = entry{err: &PanicError{Value: p}}
			r.mu.Unlock()
			r.emit(EventPoisoned, key.name)
			if p != nil {
				panic(p)
			}
		}()

		value, err := fn()
		completed = true

		r.mu.Lock()
		r.store[key.name] = entry{value: value, err: err}
		r.mu.Unlock()

		if err != nil {
			r.emit(EventPoisoned, key.name)
			return nil, err
		}
		r.emit(EventInit, key.name)
		return value, nil
	})

	if shared {
		r.emit(EventShared, key.name)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return settled[T](key, entry{value: v})
}

// settled converts a stored entry into the caller's typed result.
func settled[T any](key Key[T], e entry) (T, error) {
	var zero T
	if e.err != nil {
		return zero, &PoisonedError{cause: e.err}
	}
	v, ok := e.value.(T)
	if !ok && e.value != nil {
		// The slot settled but holds the wrong type. Never reachable
		// through typed keys; a result here means corrupted state.
		panic(fmt.Sprintf("lazycell: internal error: slot %q holds %T, not the requested type", key.name, e.value))
	}
	return v, nil
}
