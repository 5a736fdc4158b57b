package grape

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type noopService struct{}

var _ = Describe("isNil", func() {
	DescribeTable("should detect nil services",
		func(service any, expected bool) {
			Expect(isNil(service)).To(Equal(expected))
		},
		Entry("untyped nil", nil, true),
		Entry("nil pointer", (*noopService)(nil), true),
		Entry("nil map", map[string]int(nil), true),
		Entry("nil slice", []int(nil), true),
		Entry("nil chan", (chan int)(nil), true),
		Entry("nil func", (func())(nil), true),
		Entry("pointer", &noopService{}, false),
		Entry("struct", noopService{}, false),
		Entry("zero int", 0, false),
		Entry("empty string", "", false),
		Entry("empty slice", []int{}, false),
	)
})

var _ = Describe("SubscriptionState", func() {
	It("should have readable names", func() {
		Expect(SubscriptionPending.String()).To(Equal("Pending"))
		Expect(SubscriptionDelivered.String()).To(Equal("Delivered"))
		Expect(SubscriptionCancelled.String()).To(Equal("Cancelled"))
		Expect(SubscriptionState(42).String()).To(Equal("Unknown"))
	})
})

var _ = Describe("serviceKey", func() {
	It("should be equal for same type parameter only", func() {
		Expect(keyFor[noopService]()).To(Equal(keyFor[noopService]()))
		Expect(keyFor[noopService]()).NotTo(Equal(keyFor[*noopService]()))
		Expect(keyFor[any]()).NotTo(Equal(keyFor[error]()))
		Expect(keyFor[*noopService]().String()).To(Equal("*grape.noopService"))
	})
})
