package estimate

var simplePhases = []Phase{
	{
		Name:        "Discovery & Design",
		Duration:    "1 week",
		Description: "Confirm goals, content and layout, then produce a clickable design for sign-off.",
		Deliverables: []string{
			"Requirements summary",
			"Wireframes",
			"Visual design mockups",
		},
	},
	{
		Name:        "Build & Launch",
		Duration:    "1-2 weeks",
		Description: "Implement the approved design, test across devices and go live.",
		Deliverables: []string{
			"Production-ready build",
			"Cross-browser test report",
			"Live deployment",
		},
	},
}

var moderatePhases = []Phase{
	{
		Name:        "Planning & Design",
		Duration:    "1-2 weeks",
		Description: "Define user flows, data model and interface design before development starts.",
		Deliverables: []string{
			"Technical specification",
			"User flow diagrams",
			"UI design system",
		},
	},
	{
		Name:        "Core Development",
		Duration:    "2-4 weeks",
		Description: "Build the main features, integrations and admin tooling in short iterations.",
		Deliverables: []string{
			"Feature-complete application",
			"Third-party integrations",
			"Weekly demo builds",
		},
	},
	{
		Name:        "Testing & Deployment",
		Duration:    "1-2 weeks",
		Description: "Harden the application, fix defects and roll out to production.",
		Deliverables: []string{
			"QA test report",
			"Production deployment",
			"Handoff documentation",
		},
	},
}

var advancedPhases = []Phase{
	{
		Name:        "Discovery & Architecture",
		Duration:    "2-3 weeks",
		Description: "Map domains, integrations and non-functional requirements and settle the system architecture.",
		Deliverables: []string{
			"Architecture document",
			"Integration map",
			"Delivery roadmap",
		},
	},
	{
		Name:        "Core Platform Development",
		Duration:    "4-8 weeks",
		Description: "Build the foundational services, data layer and primary user journeys.",
		Deliverables: []string{
			"Core services",
			"Data layer and migrations",
			"Authenticated user journeys",
		},
	},
	{
		Name:        "Integration & Testing",
		Duration:    "3-4 weeks",
		Description: "Connect external systems and run functional, load and security testing.",
		Deliverables: []string{
			"Integrated system",
			"Load and security test results",
			"Resolved defect backlog",
		},
	},
	{
		Name:        "Deployment & Handoff",
		Duration:    "1-2 weeks",
		Description: "Roll out to production with monitoring, then train the team that will own it.",
		Deliverables: []string{
			"Production rollout",
			"Monitoring and alerting",
			"Runbooks and training",
		},
	},
}

// GeneratePhases returns the phase template for a tier. totalHours is part of the
// signature but does not change the template.
func GeneratePhases(t Tier, totalHours int) []Phase {
	switch t {
	case TierSimple:
		return clonePhases(simplePhases)
	case TierModerate:
		return clonePhases(moderatePhases)
	default:
		return clonePhases(advancedPhases)
	}
}

func clonePhases(src []Phase) []Phase {
	out := make([]Phase, len(src))
	for i, p := range src {
		p.Deliverables = append([]string(nil), p.Deliverables...)
		out[i] = p
	}
	return out
}

var (
	smallMilestones = []Milestone{
		{Title: "Project Kickoff & Design", Description: "Design approval and first working build.", Percentage: 60},
		{Title: "Final Delivery", Description: "Completed project deployed and handed over.", Percentage: 40},
	}
	mediumMilestones = []Milestone{
		{Title: "Design & Setup", Description: "Approved designs and project infrastructure in place.", Percentage: 25},
		{Title: "Core Features", Description: "Main features implemented and demoed.", Percentage: 50},
		{Title: "Launch", Description: "Tested release deployed to production.", Percentage: 25},
	}
	largeMilestones = []Milestone{
		{Title: "Architecture & Foundations", Description: "Architecture signed off and core infrastructure provisioned.", Percentage: 20},
		{Title: "Core Platform", Description: "Core services and primary user journeys working end to end.", Percentage: 30},
		{Title: "Integrations & Advanced Features", Description: "External integrations and advanced features complete.", Percentage: 30},
		{Title: "Launch & Handoff", Description: "Production launch, documentation and team handoff.", Percentage: 20},
	}
)

// GenerateMilestones splits a project into payment milestones by effort. The split is
// bucketed on hours, not on the classifier tier, and always sums to 100%.
func GenerateMilestones(totalCost, hours int) []Milestone {
	var tmpl []Milestone
	switch {
	case hours <= 80:
		tmpl = smallMilestones
	case hours <= 200:
		tmpl = mediumMilestones
	default:
		tmpl = largeMilestones
	}
	return append([]Milestone(nil), tmpl...)
}
