// Package modules holds the modules started by grape-demo.
// Each module registers one service and may wait for services of other modules.
package modules

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/andriiyaremenko/grape"
)

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

type Greeter interface {
	Greet(name string) string
}

// Start registers module services in registry.
// It returns once module services are registered or ctx is done.
type Start func(ctx context.Context, registry *grape.Registry) error

var known = map[string]Start{
	"ids":     StartIDs,
	"clock":   StartClock,
	"greeter": StartGreeter,
}

// Names returns names of known modules, sorted.
func Names() []string {
	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Lookup returns Start of the named module.
func Lookup(name string) (Start, bool) {
	start, ok := known[name]
	return start, ok
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

func StartIDs(_ context.Context, registry *grape.Registry) error {
	return grape.Register[IDGenerator](registry, uuidGenerator{})
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func StartClock(_ context.Context, registry *grape.Registry) error {
	return grape.Register[Clock](registry, systemClock{})
}

type greeter struct {
	ids   IDGenerator
	clock Clock
}

func (g *greeter) Greet(name string) string {
	return fmt.Sprintf("[%s %s] Hello, %s!", g.clock.Now().Format(time.RFC3339), g.ids.NewID(), name)
}

// StartGreeter waits for IDGenerator and Clock, then registers Greeter.
func StartGreeter(ctx context.Context, registry *grape.Registry) error {
	ids, err := await[IDGenerator](ctx, registry)
	if err != nil {
		return err
	}

	clock, err := await[Clock](ctx, registry)
	if err != nil {
		return err
	}

	return grape.Register[Greeter](registry, &greeter{ids: ids, clock: clock})
}

func await[T any](ctx context.Context, registry *grape.Registry) (T, error) {
	future := grape.Await[T](registry)

	service, err := future.Wait(ctx)
	if err != nil {
		future.Cancel()

		var zero T
		return zero, fmt.Errorf("waiting for %s: %w", reflect.TypeFor[T](), err)
	}

	return service, nil
}
