package grape_test

import (
	"fmt"
	"sync"
)

type NameService interface {
	Name() string
}

type NameProvider string

func (s NameProvider) Name() string {
	return string(s)
}

type HelloService interface {
	Hello() string
}

type Hero struct {
	name string
}

func (h *Hero) Announce() string {
	return fmt.Sprintf("%s is our hero!", h.name)
}

func (h *Hero) Hello() string {
	return "Hello from " + h.name
}

// records values handed to callbacks in the order they arrive
type recorder[T any] struct {
	values []T
	mu     sync.Mutex
}

func (r *recorder[T]) record(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values = append(r.values, v)
}

func (r *recorder[T]) calls() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]T(nil), r.values...)
}
