// Package screens holds one view-state holder per app screen. A holder owns
// the loading flag, the error text and the result data, and fills them by
// calling a single repository or service method.
package screens

import (
	"context"
	"sync"
)

// State is what a screen renders.
type State[T any] struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error"`
	Data    T      `json:"data"`
}

// Holder is an observable State. Only its own Run writes it.
type Holder[T any] struct {
	mu        sync.Mutex
	state     State[T]
	observers map[*observer[T]]struct{}
}

type observer[T any] struct {
	mu      sync.Mutex
	pending []State[T]
	signal  chan struct{}
}

func NewHolder[T any]() *Holder[T] {
	return &Holder[T]{observers: make(map[*observer[T]]struct{})}
}

// State returns the current value.
func (h *Holder[T]) State() State[T] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Observe delivers the current state and then every change, in order, until
// ctx ends and the channel is closed.
func (h *Holder[T]) Observe(ctx context.Context) <-chan State[T] {
	o := &observer[T]{signal: make(chan struct{}, 1)}
	out := make(chan State[T])

	h.mu.Lock()
	o.push(h.state)
	h.observers[o] = struct{}{}
	h.mu.Unlock()

	go func() {
		defer close(out)
		defer func() {
			h.mu.Lock()
			delete(h.observers, o)
			h.mu.Unlock()
		}()
		for {
			for _, s := range o.drain() {
				select {
				case out <- s:
				case <-ctx.Done():
					return
				}
			}
			select {
			case <-o.signal:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (o *observer[T]) push(s State[T]) {
	o.mu.Lock()
	o.pending = append(o.pending, s)
	o.mu.Unlock()
	select {
	case o.signal <- struct{}{}:
	default:
	}
}

func (o *observer[T]) drain() []State[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.pending
	o.pending = nil
	return out
}

func (h *Holder[T]) set(update func(*State[T])) State[T] {
	h.mu.Lock()
	defer h.mu.Unlock()
	update(&h.state)
	for o := range h.observers {
		o.push(h.state)
	}
	return h.state
}

// Run marks the holder loading, calls fn and stores its outcome. A failure
// keeps the previous data and shows err.Error() as is. err is returned so that
// callers can tell the kind of failure.
func (h *Holder[T]) Run(ctx context.Context, fn func(context.Context) (T, error)) (State[T], error) {
	h.set(func(s *State[T]) {
		s.Loading = true
		s.Error = ""
	})
	data, err := fn(ctx)
	state := h.set(func(s *State[T]) {
		s.Loading = false
		if err != nil {
			s.Error = err.Error()
			return
		}
		s.Data = data
	})
	return state, err
}

// emit stores an outcome produced outside Run, as streamed updates are.
func (h *Holder[T]) emit(data T, err error) State[T] {
	return h.set(func(s *State[T]) {
		s.Loading = false
		if err != nil {
			s.Error = err.Error()
			return
		}
		s.Error = ""
		s.Data = data
	})
}
