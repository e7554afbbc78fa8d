package service

import (
	"fmt"
	"strings"

	"tinkerly.io/api/internal/estimate"
)

func buildEstimatePrompt(d estimate.Descriptor) string {
	var sb strings.Builder

	writeSection := func(title, body string) {
		body = strings.TrimSpace(body)
		if body == "" {
			return
		}
		sb.WriteString("## ")
		sb.WriteString(title)
		sb.WriteString("\n")
		sb.WriteString(body)
		sb.WriteString("\n\n")
	}

	writeSection("Title", d.Title)
	writeSection("Category", d.Category)
	writeSection("Description", d.Description)
	writeSection("Requirements", d.Requirements)
	writeSection("Desired timeline", d.Timeline)
	if d.Complexity != "" {
		writeSection("Client's complexity guess", fmt.Sprintf("%s (a hint, not a constraint)", d.Complexity))
	}

	return strings.TrimRight(sb.String(), "\n")
}

const estimatorSystemPrompt = `You are a senior delivery lead at a software agency. You estimate software projects for clients.

Read the project brief and return a complete estimate.

## Complexity

Pick exactly one tier and a score inside its range:
- Simple: 1-3 (brochure sites, landing pages, small blogs)
- Moderate: 4-6 (web apps and APIs with auth and a handful of workflows)
- Complex: 7-8 (marketplaces, SaaS, real-time features, payments, integrations)
- Enterprise: 9-10 (multi-tenant platforms, compliance, AI/ML, many integrations)

## Numbers

- hourly_rate: 80 Simple, 100 Moderate, 125 Complex, 150 Enterprise
- estimated_hours: whole hours for the full build
- total_cost: exactly estimated_hours * hourly_rate
- timeline: "N weeks" for a standard team and for an accelerated team

## Plan

- phases: 2 to 5 ordered phases, each with deliverables
- milestones: 2 to 4 payment milestones whose percentages add up to exactly 100
- keyFeatures: at most 6
- risks: at most 3, impact is Low, Medium or High
- whyRecommended: one or two sentences explaining the recommended approach

Be realistic. Do not pad estimates.`
