package grape_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/goleak"

	"github.com/andriiyaremenko/grape"
)

var _ = Describe("Registry used concurrently", func() {
	var registry *grape.Registry

	BeforeEach(func() {
		registry = grape.New()
	})

	It("should let only one Register win", func() {
		var (
			wg        sync.WaitGroup
			succeeded atomic.Int32
			refused   atomic.Int32
		)

		for i := range 100 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				err := grape.Register[NameService](registry, NameProvider(fmt.Sprintf("Bob %d", i)))
				if err != nil {
					refused.Add(1)
					return
				}

				succeeded.Add(1)
			}()
		}

		wg.Wait()

		Expect(succeeded.Load()).To(Equal(int32(1)))
		Expect(refused.Load()).To(Equal(int32(99)))
	})

	It("should not lose callbacks added while service gets registered", func() {
		var (
			wg        sync.WaitGroup
			delivered atomic.Int32
		)

		start := make(chan struct{})

		for range 100 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				<-start
				grape.Get(registry, func(NameService) { delivered.Add(1) })
			}()
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			<-start
			grape.MustRegister[NameService](registry, NameProvider("Bob"))
		}()

		close(start)
		wg.Wait()

		Expect(delivered.Load()).To(Equal(int32(100)))
		Expect(registry.Pending()).To(BeEmpty())
	})

	It("should resolve futures awaited from many goroutines", func() {
		var wg sync.WaitGroup

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		results := make([]*Hero, 50)
		hero := &Hero{name: "Bob"}

		for i := range results {
			wg.Add(1)

			go func() {
				defer GinkgoRecover()
				defer wg.Done()

				h, err := grape.Await[*Hero](registry).Wait(ctx)

				Expect(err).ShouldNot(HaveOccurred())

				results[i] = h
			}()
		}

		grape.MustRegister(registry, hero)
		wg.Wait()

		for _, h := range results {
			Expect(h).To(BeIdenticalTo(hero))
		}
	})

	It("should not race cancel with Register", func() {
		var (
			wg        sync.WaitGroup
			delivered atomic.Int32
			cancelled atomic.Int32
		)

		subs := make([]*grape.Subscription, 100)
		for i := range subs {
			subs[i] = grape.Get(registry, func(NameService) { delivered.Add(1) })
		}

		for _, sub := range subs {
			wg.Add(1)

			go func() {
				defer wg.Done()

				if sub.Cancel() {
					cancelled.Add(1)
				}
			}()
		}

		grape.MustRegister[NameService](registry, NameProvider("Bob"))
		wg.Wait()

		Expect(delivered.Load() + cancelled.Load()).To(Equal(int32(100)))
		Expect(registry.Pending()).To(BeEmpty())
	})

	It("should not leak goroutines", func() {
		ignoreRunning := goleak.IgnoreCurrent()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		for range 10 {
			registry := grape.New()
			future := grape.Await[NameService](registry)

			_, err := future.Wait(ctx)
			Expect(err).Should(HaveOccurred())

			future.Cancel()

			grape.Get(registry, func(*Hero) {})
			grape.MustRegister(registry, &Hero{name: "Bob"})
		}

		err := goleak.Find(
			goleak.
				IgnoreTopFunction(
					"github.com/onsi/ginkgo/v2/internal.(*Suite).runNode",
				),
			goleak.
				IgnoreTopFunction(
					"github.com/onsi/ginkgo/v2/internal/interrupt_handler.(*InterruptHandler).registerForInterrupts.func2",
				),
			goleak.
				IgnoreAnyFunction(
					"github.com/onsi/ginkgo/v2/internal.RegisterForProgressSignal.func1",
				),
			ignoreRunning,
		)

		Expect(err).ShouldNot(HaveOccurred())
	})
})
