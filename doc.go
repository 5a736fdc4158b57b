/*
This package provides a registry of singleton services keyed by their type.
Its purpose is to let modules of an application find each other when they are initialized in no particular order.

To install grape:

	go get -u github.com/andriiyaremenko/grape

How to use:

	type Clock interface {
		Now() time.Time
	}

	type Greeter interface {
		Greet(name string) string
	}

	registry := grape.New()

	// somewhere in the greeter module:
	grape.Get(registry, func(clock Clock) {
		// runs now if Clock is registered, or later on the goroutine registering it
	})

	// or:
	future := grape.Await[Clock](registry)
	clock, err := future.Wait(ctx)
	if err != nil {
		// ctx is done before Clock was registered
		future.Cancel()
	}

	// somewhere in the clock module:
	if err := grape.Register[Clock](registry, systemClock{}); err != nil {
		// Clock was already registered
	}

	if clock, ok := grape.Find[Clock](registry); ok {
		// use clock
	}

Functions:
  - grape.New
  - grape.Register
  - grape.MustRegister
  - grape.Has
  - grape.Find
  - grape.Get
  - grape.Await
  - grape.SetDefaultLogger

Services are keyed by the type parameter, not by the dynamic type of the value:
grape.Register[Clock] and grape.Register[systemClock] are two different services.
A type can be registered only once; there is no replacing or removing a service.

Callbacks queued with grape.Get are invoked in the order they were queued,
on the goroutine calling grape.Register, after the registry lock is released.
A callback may therefore use the registry itself.
Nothing ever times out: cancel the returned Subscription or Future to stop waiting.

Registry does not hold any global state.
Create it once at the composition root of your application and pass it down.
*/
package grape
