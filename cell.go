package lazycell

import (
	"sync"
	"sync/atomic"
)

// Cell states. There is no stored "running" state: the goroutine holding
// mu while the state is still stateNew is the one executing the
// initializer, and everyone else queues on the mutex.
const (
	stateNew uint32 = iota
	stateDone
	statePoisoned
)

// Cell is a slot holding a value constructed at most once. The zero value
// is an empty, usable cell whose initializer is supplied to Get; New
// binds the initializer up front instead.
//
// A Cell must not be copied after first use.
type Cell[T any] struct {
	state atomic.Uint32
	mu    sync.Mutex
	value T
	err   error
	fn    func() (T, error)
}

// New returns a Cell bound to fn. fn is not called until the first Get.
func New[T any](fn func() (T, error)) *Cell[T] {
	return &Cell[T]{fn: fn}
}

// Get returns the cell's value, running the initializer on first access.
// fn overrides an initializer bound by New and may be nil when one was
// bound. Exactly one caller runs the initializer; concurrent callers
// block until it finishes and share the outcome. After that, Get is a
// single atomic load.
//
// If the initializer returns an error, the winning caller receives that
// error and the cell is poisoned: every waiting and later caller receives
// a *PoisonedError wrapping it, and the initializer is never run again.
// If the initializer panics, the cell is poisoned with a *PanicError and
// the panic resumes in the winning caller.
//
// The initializer must not call Get on the same cell; doing so deadlocks.
func (c *Cell[T]) Get(fn func() (T, error)) (T, error) {
	// Fast path. The atomic load acquires, so observing stateDone
	// guarantees the value written before the state store is visible.
	if s := c.state.Load(); s != stateNew {
		if s == statePoisoned {
			var zero T
			return zero, &PoisonedError{cause: c.err}
		}
		return c.value, nil
	}
	return c.getSlow(fn)
}

func (c *Cell[T]) getSlow(fn func() (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have settled the cell while we waited.
	switch c.state.Load() {
	case stateDone:
		return c.value, nil
	case statePoisoned:
		var zero T
		return zero, &PoisonedError{cause: c.err}
	}

	if fn == nil {
		fn = c.fn
	}
	if fn == nil {
		panic("lazycell: Get with nil initializer on an unbound Cell")
	}

	// A panic inside fn poisons the cell, then resumes in the caller.
	completed := false
	defer func() {
		if completed {
			return
		}
		p := recover()
		c.err = &PanicError{Value: p}
		c.state.Store(statePoisoned)
		if p != nil {
			panic(p)
		}
	}()

	v, err := fn()
	completed = true
	if err != nil {
		c.err = err
		c.state.Store(statePoisoned)
		var zero T
		return zero, err
	}

	c.value = v
	c.fn = nil
	c.state.Store(stateDone)
	return v, nil
}

// MustGet is like Get but panics if the initializer fails or the cell is
// poisoned.
func (c *Cell[T]) MustGet(fn func() (T, error)) T {
	v, err := c.Get(fn)
	if err != nil {
		panic(err)
	}
	return v
}

// Value returns the initialized value without triggering initialization.
// ok is false while the cell is uninitialized and stays false forever if
// it is poisoned.
func (c *Cell[T]) Value() (T, bool) {
	if c.state.Load() == stateDone {
		return c.value, true
	}
	var zero T
	return zero, false
}

// Poisoned reports whether a failed initializer has poisoned the cell.
func (c *Cell[T]) Poisoned() bool {
	return c.state.Load() == statePoisoned
}
