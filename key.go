package grape

import "reflect"

// serviceKey is the type identity of a service.
// Two keys are equal only when they were produced from the same type parameter,
// so an interface and its implementation are different keys.
type serviceKey struct {
	t reflect.Type
}

func keyFor[T any]() serviceKey {
	return serviceKey{t: reflect.TypeFor[T]()}
}

func (k serviceKey) String() string {
	return k.t.String()
}
