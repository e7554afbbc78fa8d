package estimate_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tinkerly.io/api/internal/estimate"
)

var _ = Describe("DeriveCost", func() {
	DescribeTable("scales base hours by whole hundreds of requirement characters",
		func(tier estimate.Tier, length, hours, rate, total int) {
			got := estimate.DeriveCost(tier, length)
			Expect(got.Hours).To(Equal(hours))
			Expect(got.Rate).To(Equal(rate))
			Expect(got.TotalCost).To(Equal(total))
		},
		Entry("simple, empty", estimate.TierSimple, 0, 20, 80, 1600),
		Entry("simple, under one hundred", estimate.TierSimple, 99, 20, 80, 1600),
		Entry("simple, one hundred", estimate.TierSimple, 100, 24, 80, 1920),
		Entry("moderate, two hundred fifty", estimate.TierModerate, 250, 84, 100, 8400),
		Entry("complex, three hundred", estimate.TierComplex, 300, 224, 125, 28000),
		Entry("enterprise, capped", estimate.TierEnterprise, 5000, 480, 150, 72000),
	)

	It("always prices hours times rate", func() {
		for _, tier := range estimate.Tiers {
			for length := 0; length <= 1500; length += 37 {
				got := estimate.DeriveCost(tier, length)
				Expect(got.TotalCost).To(Equal(got.Hours * got.Rate))
			}
		}
	})
})

var _ = Describe("DeriveTimeline", func() {
	DescribeTable("rounds weeks up and pluralizes",
		func(hours int, standard, accelerated string) {
			got := estimate.DeriveTimeline(hours)
			Expect(got.IndustryStandard).To(Equal(standard))
			Expect(got.Accelerated).To(Equal(accelerated))
		},
		Entry("half a week", 20, "1 week", "1 week"),
		Entry("exactly a week", 40, "1 week", "1 week"),
		Entry("just over a week", 41, "2 weeks", "2 weeks"),
		Entry("84 hours", 84, "3 weeks", "2 weeks"),
		Entry("200 hours", 200, "5 weeks", "3 weeks"),
		Entry("480 hours", 480, "12 weeks", "8 weeks"),
	)
})
