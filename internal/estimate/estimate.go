// Package estimate is the deterministic project estimation engine.
//
// A Descriptor is classified into a complexity Tier, and every other part of the
// Result (cost, timeline, phases, milestones, tech stack, features, risks) is derived
// from the tier, the score and the raw descriptor fields. Nothing here performs I/O
// and every function is safe for concurrent use.
package estimate

// Tier is the coarse complexity classification that drives all derived fields.
type Tier string

const (
	TierSimple     Tier = "Simple"
	TierModerate   Tier = "Moderate"
	TierComplex    Tier = "Complex"
	TierEnterprise Tier = "Enterprise"
)

// Tiers lists every tier in ascending order.
var Tiers = []Tier{TierSimple, TierModerate, TierComplex, TierEnterprise}

func (t Tier) IsValid() bool {
	switch t {
	case TierSimple, TierModerate, TierComplex, TierEnterprise:
		return true
	}
	return false
}

// Impact rates how badly a risk hurts the project if it materializes.
type Impact string

const (
	ImpactLow    Impact = "Low"
	ImpactMedium Impact = "Medium"
	ImpactHigh   Impact = "High"
)

func (i Impact) IsValid() bool {
	return i == ImpactLow || i == ImpactMedium || i == ImpactHigh
}

// Descriptor is the caller-supplied description of a project.
// Timeline and Complexity are informational only; the engine computes its own.
type Descriptor struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Requirements string `json:"requirements"`
	Timeline     string `json:"timeline,omitempty"`
	Complexity   string `json:"complexity,omitempty"`
}

// ComplexityResult is the classifier output. Raw is the unbounded accumulator the
// tier was taken from; Score is the reported 1..10 value inside the tier's range.
type ComplexityResult struct {
	Tier  Tier
	Score int
	Raw   int
}

// Result is a complete estimate. JSON names are part of the public API contract.
type Result struct {
	Complexity      Tier        `json:"complexity" jsonschema:"enum=Simple,enum=Moderate,enum=Complex,enum=Enterprise"`
	ComplexityScore int         `json:"complexity_score" jsonschema:"minimum=1,maximum=10"`
	EstimatedHours  int         `json:"estimated_hours"`
	HourlyRate      int         `json:"hourly_rate"`
	TotalCost       int         `json:"total_cost"`
	Timeline        Timeline    `json:"timeline"`
	TechStack       TechStack   `json:"techStack"`
	Phases          []Phase     `json:"phases"`
	Milestones      []Milestone `json:"milestones"`
	KeyFeatures     []string    `json:"keyFeatures"`
	Risks           []Risk      `json:"risks"`
	WhyRecommended  string      `json:"whyRecommended"`
}

type Timeline struct {
	IndustryStandard string `json:"industry_standard"`
	Accelerated      string `json:"accelerated"`
}

type TechStack struct {
	Frontend   []string `json:"frontend"`
	Backend    []string `json:"backend"`
	Database   string   `json:"database"`
	Deployment string   `json:"deployment"`
}

type Phase struct {
	Name         string   `json:"name"`
	Duration     string   `json:"duration"`
	Description  string   `json:"description"`
	Deliverables []string `json:"deliverables"`
}

// Milestone is a payment checkpoint. Only the share of the total cost is fixed
// here; amounts and due dates are assigned when the estimate is persisted.
type Milestone struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Percentage  int    `json:"percentage"`
}

type Risk struct {
	Risk       string `json:"risk"`
	Mitigation string `json:"mitigation"`
	Impact     Impact `json:"impact" jsonschema:"enum=Low,enum=Medium,enum=High"`
}

const (
	MaxKeyFeatures = 6
	MaxRisks       = 3
)
