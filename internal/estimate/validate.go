package estimate

import (
	"errors"
	"fmt"
)

var ErrInvalidResult = errors.New("invalid estimation result")

// Validate checks a result produced outside the engine (e.g. by a language model)
// against the rules the engine itself guarantees.
func Validate(r Result) error {
	if !r.Complexity.IsValid() {
		return invalid("unknown complexity %q", r.Complexity)
	}
	if r.ComplexityScore < 1 || r.ComplexityScore > 10 {
		return invalid("complexity_score %d outside 1..10", r.ComplexityScore)
	}
	if r.EstimatedHours <= 0 || r.HourlyRate <= 0 {
		return invalid("non-positive hours or rate")
	}
	if r.TotalCost != r.EstimatedHours*r.HourlyRate {
		return invalid("total_cost %d != %d hours x %d rate", r.TotalCost, r.EstimatedHours, r.HourlyRate)
	}
	if r.Timeline.IndustryStandard == "" || r.Timeline.Accelerated == "" {
		return invalid("missing timeline")
	}
	if len(r.Phases) == 0 {
		return invalid("no phases")
	}
	if len(r.Milestones) == 0 {
		return invalid("no milestones")
	}

	sum := 0
	for _, m := range r.Milestones {
		if m.Percentage <= 0 {
			return invalid("milestone %q has non-positive percentage", m.Title)
		}
		sum += m.Percentage
	}
	if sum != 100 {
		return invalid("milestone percentages sum to %d", sum)
	}

	if len(r.KeyFeatures) > MaxKeyFeatures {
		return invalid("%d key features, max %d", len(r.KeyFeatures), MaxKeyFeatures)
	}
	if len(r.Risks) > MaxRisks {
		return invalid("%d risks, max %d", len(r.Risks), MaxRisks)
	}
	for _, risk := range r.Risks {
		if !risk.Impact.IsValid() {
			return invalid("risk %q has impact %q", risk.Risk, risk.Impact)
		}
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidResult, fmt.Sprintf(format, args...))
}
