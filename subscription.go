package grape

import "sync/atomic"

// Subscription is a handle to a callback passed to Get.
type Subscription struct {
	registry *Registry
	fn       func(any)
	key      serviceKey
	state    atomic.Int32
}

// Withdraws callback if it is still waiting for its service.
// Returns false if callback was already delivered or cancelled.
func (s *Subscription) Cancel() bool {
	return s.registry.cancel(s)
}

func (s *Subscription) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

// Reports whether callback was handed the service.
func (s *Subscription) Delivered() bool {
	return s.State() == SubscriptionDelivered
}

func (s *Subscription) drop() {
	s.fn = nil
	s.state.Store(int32(SubscriptionCancelled))
}
