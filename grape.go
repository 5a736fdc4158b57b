package grape

// This package provides a registry of singleton services keyed by their type.
// This package does NOT try to be another IOC container: nothing is constructed,
// ordered or torn down here.
// It was created because modules of the same application get initialized in no particular order
// and still need to find each other without being wired at construction time.

type SubscriptionState int32

const (
	// Callback is waiting for the service to be registered.
	SubscriptionPending SubscriptionState = iota
	// Callback was (or is being) invoked with the registered service.
	SubscriptionDelivered
	// Callback was withdrawn, or skipped because an earlier callback panicked, and will never be invoked.
	SubscriptionCancelled
)

func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionPending:
		return "Pending"
	case SubscriptionDelivered:
		return "Delivered"
	case SubscriptionCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}
