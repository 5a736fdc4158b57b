package grape

import (
	"log/slog"
	"slices"
	"sync"
)

// Registry maps a service type to its single instance
// and keeps callbacks waiting for services that are not registered yet.
// It is safe for concurrent use.
type Registry struct {
	log      *slog.Logger
	services map[serviceKey]any
	pending  map[serviceKey][]*Subscription
	mu       sync.Mutex
}

// Returns new empty Registry.
func New(opts ...RegistryOption) *Registry {
	conf := RegistryConfiguration{}

	for _, opt := range opts {
		opt(&conf)
	}

	return &Registry{
		log:      conf.Logger,
		services: make(map[serviceKey]any),
		pending:  make(map[serviceKey][]*Subscription),
	}
}

// Registers service under type T and invokes, in the order they were added,
// every callback waiting for T.
// Callbacks run on the calling goroutine before Register returns.
// Returns *AlreadyRegisteredError if T already has a service,
// in which case the registry is left untouched.
func Register[T any](r *Registry, service T) error {
	return r.register(keyFor[T](), service)
}

// Same as Register but panics on error.
// Meant for the application composition root where a duplicate is a wiring bug.
func MustRegister[T any](r *Registry, service T) {
	if err := Register(r, service); err != nil {
		panic(err)
	}
}

// Reports whether service of type T is registered.
func Has[T any](r *Registry) bool {
	_, ok := r.find(keyFor[T]())
	return ok
}

// Returns service of type T and true, or zero value and false if T is not registered.
// Find never waits and never leaves a callback behind.
func Find[T any](r *Registry) (T, bool) {
	service, ok := r.find(keyFor[T]())
	if !ok {
		var zero T
		return zero, false
	}

	return service.(T), true
}

// Calls callback with service of type T.
// If T is registered callback is invoked right away on the calling goroutine,
// otherwise it is queued and invoked exactly once by the Register call for T.
// There is no timeout: a queued callback stays until T is registered
// or the returned Subscription is cancelled.
func Get[T any](r *Registry, callback func(T)) *Subscription {
	if callback == nil {
		panic(ErrNilCallback)
	}

	return r.get(keyFor[T](), func(service any) { callback(service.(T)) })
}

// Returns registered service types sorted by name.
func (r *Registry) Services() []string {
	r.mu.Lock()
	names := make([]string, 0, len(r.services))
	for key := range r.services {
		names = append(names, key.String())
	}
	r.mu.Unlock()

	slices.Sort(names)

	return names
}

// Returns number of callbacks still waiting per service type.
// Types with no waiting callbacks are omitted.
func (r *Registry) Pending() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[string]int, len(r.pending))
	for key, queue := range r.pending {
		result[key.String()] = len(queue)
	}

	return result
}

func (r *Registry) logger() *slog.Logger {
	if r.log != nil {
		return r.log
	}

	return logger()
}

func (r *Registry) register(key serviceKey, service any) error {
	if isNil(service) {
		return newRegisterError(ErrNilService, key)
	}

	r.mu.Lock()

	if _, ok := r.services[key]; ok {
		r.mu.Unlock()
		return newAlreadyRegisteredError(key)
	}

	r.services[key] = service

	// queue is detached here so callbacks can use the registry without deadlocking
	queue := r.pending[key]
	delete(r.pending, key)

	for _, sub := range queue {
		sub.state.Store(int32(SubscriptionDelivered))
	}

	r.mu.Unlock()

	r.logger().Debug("service registered", "service", key.String(), "callbacks", len(queue))

	delivered := 0

	// callbacks left behind a panicking one are never invoked
	defer func() {
		for _, sub := range queue[min(delivered+1, len(queue)):] {
			sub.drop()
		}
	}()

	for _, sub := range queue {
		r.deliver(sub, service)
		delivered++
	}

	return nil
}

func (r *Registry) find(key serviceKey) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	service, ok := r.services[key]
	return service, ok
}

func (r *Registry) get(key serviceKey, fn func(any)) *Subscription {
	sub := &Subscription{registry: r, key: key, fn: fn}

	r.mu.Lock()

	if service, ok := r.services[key]; ok {
		sub.state.Store(int32(SubscriptionDelivered))
		r.mu.Unlock()

		r.deliver(sub, service)

		return sub
	}

	r.pending[key] = append(r.pending[key], sub)
	waiting := len(r.pending[key])

	r.mu.Unlock()

	r.logger().Debug("callback queued", "service", key.String(), "pending", waiting)

	return sub
}

func (r *Registry) deliver(sub *Subscription, service any) {
	defer func() {
		if rp := recover(); rp != nil {
			err := newCallbackPanicError(rp, sub.key)
			r.logger().Error("callback panicked", "service", sub.key.String(), "error", err)

			panic(err)
		}
	}()

	fn := sub.fn
	sub.fn = nil

	fn(service)
}

func (r *Registry) cancel(sub *Subscription) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if SubscriptionState(sub.state.Load()) != SubscriptionPending {
		return false
	}

	queue := r.pending[sub.key]
	i := slices.Index(queue, sub)
	if i < 0 {
		return false
	}

	queue = slices.Delete(queue, i, i+1)
	if len(queue) == 0 {
		delete(r.pending, sub.key)
	} else {
		r.pending[sub.key] = queue
	}

	sub.state.Store(int32(SubscriptionCancelled))
	sub.fn = nil

	return true
}
