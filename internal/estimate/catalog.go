package estimate

import (
	"slices"
	"strings"
	"unicode"
)

// Category is one entry of the project-type catalog.
type Category struct {
	Slug     string
	Name     string
	Weight   int
	Stack    TechStack
	Features []string
	Risks    []Risk
}

var defaultCategory = Category{
	Slug: "other",
	Name: "Other",
	Stack: TechStack{
		Frontend:   []string{"React", "TypeScript", "Tailwind CSS"},
		Backend:    []string{"Node.js", "REST API"},
		Database:   "PostgreSQL",
		Deployment: "Vercel",
	},
	Features: []string{
		"Responsive user interface",
		"Content management",
		"Contact and lead capture",
	},
	Risks: []Risk{
		{
			Risk:       "Unclear requirements for a custom project type",
			Mitigation: "Run a short discovery workshop before committing to the build",
			Impact:     ImpactMedium,
		},
	},
}

var catalog = []Category{
	{
		Slug:   "landing-page",
		Name:   "Landing Page",
		Weight: 1,
		Stack: TechStack{
			Frontend:   []string{"Next.js", "Tailwind CSS"},
			Backend:    []string{"Serverless functions"},
			Database:   "None (static content)",
			Deployment: "Vercel",
		},
		Features: []string{
			"Conversion-focused hero section",
			"Lead capture form",
			"SEO optimization",
			"Analytics tracking",
		},
		Risks: []Risk{
			{
				Risk:       "Copy and assets delivered late",
				Mitigation: "Agree a content checklist and placeholder policy at kickoff",
				Impact:     ImpactLow,
			},
		},
	},
	{
		Slug:   "portfolio-website",
		Name:   "Portfolio Website",
		Weight: 1,
		Stack: TechStack{
			Frontend:   []string{"Next.js", "Tailwind CSS"},
			Backend:    []string{"Headless CMS"},
			Database:   "CMS-hosted content",
			Deployment: "Vercel",
		},
		Features: []string{
			"Project gallery",
			"Case study pages",
			"Contact form",
		},
		Risks: []Risk{
			{
				Risk:       "Large media slowing page loads",
				Mitigation: "Use an image CDN with responsive formats",
				Impact:     ImpactLow,
			},
		},
	},
	{
		Slug:   "business-website",
		Name:   "Business Website",
		Weight: 2,
		Stack: TechStack{
			Frontend:   []string{"Next.js", "Tailwind CSS"},
			Backend:    []string{"Headless CMS", "Serverless functions"},
			Database:   "PostgreSQL",
			Deployment: "Vercel",
		},
		Features: []string{
			"Service and team pages",
			"CMS-managed content",
			"Contact and booking forms",
			"SEO optimization",
		},
		Risks: []Risk{
			{
				Risk:       "Stakeholder review cycles stretching the schedule",
				Mitigation: "Name a single approver and time-box each review round",
				Impact:     ImpactMedium,
			},
		},
	},
	{
		Slug:   "blog-cms",
		Name:   "Blog/CMS",
		Weight: 2,
		Stack: TechStack{
			Frontend:   []string{"Next.js", "MDX"},
			Backend:    []string{"Headless CMS API"},
			Database:   "PostgreSQL",
			Deployment: "Vercel",
		},
		Features: []string{
			"Rich text editor",
			"Categories and tags",
			"RSS feed",
			"SEO metadata",
		},
		Risks: []Risk{
			{
				Risk:       "Content migration from a legacy platform",
				Mitigation: "Script the migration and validate on a staging copy first",
				Impact:     ImpactMedium,
			},
		},
	},
	{
		Slug:   "web-application",
		Name:   "Web Application",
		Weight: 4,
		Stack: TechStack{
			Frontend:   []string{"React", "TypeScript", "Tailwind CSS"},
			Backend:    []string{"Node.js", "Express"},
			Database:   "PostgreSQL",
			Deployment: "Vercel + Railway",
		},
		Features: []string{
			"User authentication",
			"Role-based dashboards",
			"Data management workflows",
			"Email notifications",
		},
		Risks: []Risk{
			{
				Risk:       "Performance degradation as data grows",
				Mitigation: "Index hot queries and load test before launch",
				Impact:     ImpactMedium,
			},
		},
	},
	{
		Slug:   "api-development",
		Name:   "API Development",
		Weight: 4,
		Stack: TechStack{
			Frontend:   []string{"API documentation portal"},
			Backend:    []string{"Go", "OpenAPI"},
			Database:   "PostgreSQL",
			Deployment: "Docker + Fly.io",
		},
		Features: []string{
			"Versioned REST endpoints",
			"API key management",
			"Rate limiting",
			"Interactive API documentation",
		},
		Risks: []Risk{
			{
				Risk:       "Breaking changes for existing API consumers",
				Mitigation: "Version the API and publish a deprecation policy",
				Impact:     ImpactMedium,
			},
		},
	},
	{
		Slug:   "mobile-app",
		Name:   "Mobile App",
		Weight: 5,
		Stack: TechStack{
			Frontend:   []string{"React Native", "Expo"},
			Backend:    []string{"Node.js", "Supabase"},
			Database:   "PostgreSQL",
			Deployment: "App Store + Google Play",
		},
		Features: []string{
			"Native iOS and Android apps",
			"Push notifications",
			"Offline support",
			"In-app onboarding",
		},
		Risks: []Risk{
			{
				Risk:       "App store review rejections",
				Mitigation: "Review store guidelines early and submit a beta build first",
				Impact:     ImpactMedium,
			},
			{
				Risk:       "Device fragmentation bugs",
				Mitigation: "Test on a device matrix covering the main OS versions",
				Impact:     ImpactLow,
			},
		},
	},
	{
		Slug:   "e-commerce-platform",
		Name:   "E-commerce Platform",
		Weight: 5,
		Stack: TechStack{
			Frontend:   []string{"Next.js", "TypeScript", "Tailwind CSS"},
			Backend:    []string{"Node.js", "Stripe API"},
			Database:   "PostgreSQL",
			Deployment: "Vercel",
		},
		Features: []string{
			"Product catalog",
			"Shopping cart and checkout",
			"Order management",
			"Inventory tracking",
		},
		Risks: []Risk{
			{
				Risk:       "Payment integration and PCI compliance issues",
				Mitigation: "Use hosted checkout and keep card data off our servers",
				Impact:     ImpactHigh,
			},
			{
				Risk:       "Traffic spikes during promotions",
				Mitigation: "Cache catalog pages and load test checkout",
				Impact:     ImpactMedium,
			},
		},
	},
	{
		Slug:   "saas-platform",
		Name:   "SaaS Platform",
		Weight: 6,
		Stack: TechStack{
			Frontend:   []string{"Next.js", "TypeScript", "Tailwind CSS"},
			Backend:    []string{"Node.js", "Stripe Billing", "Supabase Auth"},
			Database:   "PostgreSQL",
			Deployment: "Vercel + Supabase",
		},
		Features: []string{
			"Multi-tenant workspaces",
			"Subscription billing",
			"Team invitations and roles",
			"Usage analytics dashboard",
		},
		Risks: []Risk{
			{
				Risk:       "Tenant data isolation gaps",
				Mitigation: "Enforce row-level security and test cross-tenant access",
				Impact:     ImpactHigh,
			},
			{
				Risk:       "Billing edge cases around upgrades and cancellations",
				Mitigation: "Drive subscription state from payment-provider webhooks",
				Impact:     ImpactMedium,
			},
		},
	},
	{
		Slug:   "ai-ml-integration",
		Name:   "AI/ML Integration",
		Weight: 7,
		Stack: TechStack{
			Frontend:   []string{"Next.js", "TypeScript"},
			Backend:    []string{"Python", "FastAPI", "OpenAI API"},
			Database:   "PostgreSQL + pgvector",
			Deployment: "AWS",
		},
		Features: []string{
			"AI-powered recommendations",
			"Natural language interface",
			"Model evaluation dashboard",
			"Human review workflow",
		},
		Risks: []Risk{
			{
				Risk:       "Model output quality below expectations",
				Mitigation: "Build an evaluation set and gate releases on it",
				Impact:     ImpactHigh,
			},
			{
				Risk:       "Inference costs growing with usage",
				Mitigation: "Cache responses and set per-user usage limits",
				Impact:     ImpactMedium,
			},
		},
	},
	{
		Slug:   "enterprise-solution",
		Name:   "Enterprise Solution",
		Weight: 9,
		Stack: TechStack{
			Frontend:   []string{"React", "TypeScript"},
			Backend:    []string{"Go microservices", "Kafka", "gRPC"},
			Database:   "PostgreSQL + Redis",
			Deployment: "Kubernetes on AWS",
		},
		Features: []string{
			"Single sign-on",
			"Audit logging",
			"Role-based access control",
			"Legacy system integration",
			"Reporting and exports",
		},
		Risks: []Risk{
			{
				Risk:       "Legacy system integration delays",
				Mitigation: "Prototype each integration in the discovery phase",
				Impact:     ImpactHigh,
			},
			{
				Risk:       "Security and compliance review findings",
				Mitigation: "Involve the security team from architecture sign-off onwards",
				Impact:     ImpactHigh,
			},
		},
	},
}

var catalogBySlug = indexCatalog(catalog)

func indexCatalog(cats []Category) map[string]Category {
	idx := make(map[string]Category, len(cats))
	for _, c := range cats {
		idx[c.Slug] = c
	}
	return idx
}

// Categories returns the known project categories in display order.
func Categories() []Category {
	return append([]Category(nil), catalog...)
}

// LookupCategory resolves a category by display name or slug. Unknown categories
// resolve to the default row with ok set to false.
func LookupCategory(name string) (Category, bool) {
	if c, ok := lookupCategory(name); ok {
		return c, true
	}
	return defaultCategory, false
}

func lookupCategory(name string) (Category, bool) {
	c, ok := catalogBySlug[Slugify(name)]
	return c, ok
}

// Slugify lowercases s and collapses every run of non-alphanumeric characters into
// a single hyphen, so "AI/ML Integration" and "ai-ml-integration" compare equal.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// TechStackFor returns the recommended stack for a category.
func TechStackFor(category string) TechStack {
	c, _ := LookupCategory(category)
	return TechStack{
		Frontend:   append([]string(nil), c.Stack.Frontend...),
		Backend:    append([]string(nil), c.Stack.Backend...),
		Database:   c.Stack.Database,
		Deployment: c.Stack.Deployment,
	}
}

type featureTrigger struct {
	word    string
	feature string
}

var featureTriggers = []featureTrigger{
	{word: "real-time", feature: "Real-time updates"},
	{word: "mobile", feature: "Mobile-optimized experience"},
	{word: "payment", feature: "Secure payment processing"},
	{word: "social", feature: "Social sharing and login"},
	{word: "search", feature: "Advanced search and filtering"},
}

// KeyFeatures lists the category's features followed by any feature triggered by
// the requirements text, capped at MaxKeyFeatures.
func KeyFeatures(category, requirements string) []string {
	c, _ := LookupCategory(category)
	features := append([]string(nil), c.Features...)

	lower := strings.ToLower(requirements)
	for _, t := range featureTriggers {
		if strings.Contains(lower, t.word) && !slices.Contains(features, t.feature) {
			features = append(features, t.feature)
		}
	}

	if len(features) > MaxKeyFeatures {
		features = features[:MaxKeyFeatures]
	}
	return features
}

var (
	complexityRisk = Risk{
		Risk:       "Technical complexity extending integration and testing",
		Mitigation: "Front-load architecture spikes and run integration tests from the first sprint",
		Impact:     ImpactHigh,
	}
	scopeCreepRisk = Risk{
		Risk:       "Scope creep from evolving requirements",
		Mitigation: "Fix scope per milestone and route changes through a change-request process",
		Impact:     ImpactMedium,
	}
)

// Risks collects category risks, a complexity risk for Complex and Enterprise tiers
// and the generic scope-creep risk, in that order, then keeps the first MaxRisks.
// The generic risk is dropped when the earlier sources already fill the list.
func Risks(category string, t Tier) []Risk {
	c, _ := LookupCategory(category)
	risks := append([]Risk(nil), c.Risks...)

	if t == TierComplex || t == TierEnterprise {
		risks = append(risks, complexityRisk)
	}
	risks = append(risks, scopeCreepRisk)

	if len(risks) > MaxRisks {
		risks = risks[:MaxRisks]
	}
	return risks
}
