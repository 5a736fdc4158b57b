package grape

import (
	"fmt"
	"reflect"
)

var (
	ErrAlreadyRegistered = fmt.Errorf("Registry has already registered service for this type")
	ErrNilService        = fmt.Errorf("got nil service")
	ErrNilCallback       = fmt.Errorf("got nil callback")
	ErrNilContext        = fmt.Errorf("got nil context")
)

func newAlreadyRegisteredError(key serviceKey) error {
	return &AlreadyRegisteredError{
		TypeName: key.String(),
	}
}

// Returned by Register when a service of the same type is already registered.
// It is a wiring bug, not a transient condition: nothing is retried.
type AlreadyRegisteredError struct {
	TypeName string
}

func (err *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("there is already a service registered for %s", err.TypeName)
}

func (err *AlreadyRegisteredError) Unwrap() error {
	return ErrAlreadyRegistered
}

func newRegisterError(cause error, key serviceKey) error {
	return &RegisterError{
		cause:    cause,
		TypeName: key.String(),
	}
}

type RegisterError struct {
	cause    error
	TypeName string
}

func (err *RegisterError) Error() string {
	return fmt.Sprintf("cannot register %s: %s", err.TypeName, err.cause)
}

func (err *RegisterError) Unwrap() error {
	return err.cause
}

func newCallbackPanicError(recovered any, key serviceKey) error {
	return &CallbackPanicError{
		Recovered: recovered,
		TypeName:  key.String(),
	}
}

// Wraps a value recovered from a callback panic.
// Register re-panics with it so the registering caller observes the failure.
type CallbackPanicError struct {
	Recovered any
	TypeName  string
}

func (err *CallbackPanicError) Error() string {
	return fmt.Sprintf("callback for %s panicked: %v", err.TypeName, err.Recovered)
}

func (err *CallbackPanicError) Unwrap() error {
	if cause, ok := err.Recovered.(error); ok {
		return cause
	}

	return nil
}

func isNil(service any) bool {
	if service == nil {
		return true
	}

	v := reflect.ValueOf(service)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}
