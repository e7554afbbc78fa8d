package estimate_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tinkerly.io/api/internal/estimate"
)

var _ = Describe("Slugify", func() {
	DescribeTable("normalizes category names",
		func(in, out string) {
			Expect(estimate.Slugify(in)).To(Equal(out))
		},
		Entry("spaces", "Landing Page", "landing-page"),
		Entry("slash", "AI/ML Integration", "ai-ml-integration"),
		Entry("existing hyphen", "E-commerce Platform", "e-commerce-platform"),
		Entry("surrounding noise", "  --Blog / CMS--  ", "blog-cms"),
		Entry("empty", "", ""),
	)
})

var _ = Describe("LookupCategory", func() {
	It("finds every catalog entry by its display name", func() {
		for _, c := range estimate.Categories() {
			got, ok := estimate.LookupCategory(c.Name)
			Expect(ok).To(BeTrue(), c.Name)
			Expect(got.Slug).To(Equal(c.Slug))
		}
	})

	It("falls back to the default row", func() {
		got, ok := estimate.LookupCategory("Smart Fridge")
		Expect(ok).To(BeFalse())
		Expect(got.Stack.Database).To(Equal("PostgreSQL"))
		Expect(got.Features).NotTo(BeEmpty())
	})
})

var _ = Describe("TechStackFor", func() {
	It("looks up the category stack", func() {
		stack := estimate.TechStackFor("Mobile App")
		Expect(stack.Frontend).To(ContainElement("React Native"))
		Expect(stack.Deployment).To(Equal("App Store + Google Play"))
	})

	It("returns copies", func() {
		stack := estimate.TechStackFor("Mobile App")
		stack.Frontend[0] = "changed"
		Expect(estimate.TechStackFor("Mobile App").Frontend[0]).To(Equal("React Native"))
	})
})

var _ = Describe("KeyFeatures", func() {
	It("appends features triggered by the requirements", func() {
		features := estimate.KeyFeatures("Landing Page", "Needs a search box")
		Expect(features).To(HaveLen(5))
		Expect(features[4]).To(Equal("Advanced search and filtering"))
	})

	It("truncates to six entries keeping category features first", func() {
		features := estimate.KeyFeatures("Web Application",
			"real-time chat, a mobile companion, payment plans, social login and search")
		Expect(features).To(Equal([]string{
			"User authentication",
			"Role-based dashboards",
			"Data management workflows",
			"Email notifications",
			"Real-time updates",
			"Mobile-optimized experience",
		}))
	})

	It("never exceeds six features", func() {
		all := "real-time mobile payment social search"
		for _, c := range estimate.Categories() {
			Expect(len(estimate.KeyFeatures(c.Name, all))).To(BeNumerically("<=", estimate.MaxKeyFeatures))
		}
	})

	It("matches triggers case-insensitively", func() {
		Expect(estimate.KeyFeatures("Landing Page", strings.ToUpper("payment"))).
			To(ContainElement("Secure payment processing"))
	})
})

var _ = Describe("Risks", func() {
	It("ends with the scope creep risk when there is room", func() {
		risks := estimate.Risks("Landing Page", estimate.TierSimple)
		Expect(risks).To(HaveLen(2))
		Expect(risks[1].Risk).To(ContainSubstring("Scope creep"))
	})

	It("adds a complexity risk for complex projects", func() {
		risks := estimate.Risks("Web Application", estimate.TierComplex)
		Expect(risks).To(HaveLen(3))
		Expect(risks[1].Impact).To(Equal(estimate.ImpactHigh))
		Expect(risks[2].Risk).To(ContainSubstring("Scope creep"))
	})

	It("lets earlier risks crowd out the generic one", func() {
		risks := estimate.Risks("Enterprise Solution", estimate.TierEnterprise)
		Expect(risks).To(HaveLen(3))
		for _, r := range risks {
			Expect(r.Risk).NotTo(ContainSubstring("Scope creep"))
		}
	})

	It("never exceeds three risks", func() {
		for _, c := range estimate.Categories() {
			for _, t := range estimate.Tiers {
				Expect(len(estimate.Risks(c.Name, t))).To(BeNumerically("<=", estimate.MaxRisks))
			}
		}
	})
})
