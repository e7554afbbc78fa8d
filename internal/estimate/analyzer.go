package estimate

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"unicode/utf8"
)

// Analyzer runs the estimation pipeline. The zero value is ready to use and fully
// deterministic.
type Analyzer struct {
	mu     sync.Mutex
	jitter *rand.Rand
}

type Option func(*Analyzer)

// WithScoreJitter reports a random score inside the tier's range instead of the
// clamped raw score. Tier and every derived field stay deterministic.
func WithScoreJitter(r *rand.Rand) Option {
	return func(a *Analyzer) {
		a.jitter = r
	}
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var defaultAnalyzer = NewAnalyzer()

// Analyze estimates a project with the deterministic analyzer.
func Analyze(d Descriptor) Result {
	return defaultAnalyzer.Analyze(d)
}

// Analyze classifies the descriptor and derives the full estimate from it.
// Input validation is the caller's job; any string input produces a result.
func (a *Analyzer) Analyze(d Descriptor) Result {
	c := Classify(d.Category, d.Requirements, d.Description)
	c.Score = a.reportedScore(c)

	cost := DeriveCost(c.Tier, utf8.RuneCountInString(d.Requirements))
	timeline := DeriveTimeline(cost.Hours)
	stack := TechStackFor(d.Category)

	return Result{
		Complexity:      c.Tier,
		ComplexityScore: c.Score,
		EstimatedHours:  cost.Hours,
		HourlyRate:      cost.Rate,
		TotalCost:       cost.TotalCost,
		Timeline:        timeline,
		TechStack:       stack,
		Phases:          GeneratePhases(c.Tier, cost.Hours),
		Milestones:      GenerateMilestones(cost.TotalCost, cost.Hours),
		KeyFeatures:     KeyFeatures(d.Category, d.Requirements),
		Risks:           Risks(d.Category, c.Tier),
		WhyRecommended:  whyRecommended(d.Category, c.Tier, stack, timeline),
	}
}

func (a *Analyzer) reportedScore(c ComplexityResult) int {
	if a.jitter == nil {
		return c.Score
	}

	lo, hi := ScoreRange(c.Tier)

	a.mu.Lock()
	defer a.mu.Unlock()
	return lo + a.jitter.IntN(hi-lo+1)
}

func whyRecommended(category string, t Tier, stack TechStack, timeline Timeline) string {
	c, _ := LookupCategory(category)

	return fmt.Sprintf(
		"A %s %s is best served by %s on the frontend and %s on the backend with %s, deployed on %s. "+
			"This stack keeps delivery within %s on an accelerated schedule (%s at a standard pace).",
		strings.ToLower(string(t)),
		strings.ToLower(c.Name),
		strings.Join(stack.Frontend, ", "),
		strings.Join(stack.Backend, ", "),
		stack.Database,
		stack.Deployment,
		timeline.Accelerated,
		timeline.IndustryStandard,
	)
}
