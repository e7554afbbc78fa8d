package estimate

import (
	"fmt"
	"math"
)

type tierProfile struct {
	baseHours int
	rate      int
}

// Unknown tiers fall back to the Moderate profile.
var tierProfiles = map[Tier]tierProfile{
	TierSimple:     {baseHours: 20, rate: 80},
	TierModerate:   {baseHours: 60, rate: 100},
	TierComplex:    {baseHours: 140, rate: 125},
	TierEnterprise: {baseHours: 300, rate: 150},
}

func profileFor(t Tier) tierProfile {
	if p, ok := tierProfiles[t]; ok {
		return p
	}
	return tierProfiles[TierModerate]
}

// Cost is the effort and price of a project.
type Cost struct {
	Hours     int
	Rate      int
	TotalCost int
}

// DeriveCost scales the tier's base hours by the requirements length, counted in
// whole hundreds of characters and capped at three.
func DeriveCost(t Tier, requirementsLength int) Cost {
	p := profileFor(t)

	reqFactor := min(max(requirementsLength, 0)/100, 3)
	hours := int(math.Round(float64(p.baseHours) * (1 + float64(reqFactor)*0.2)))

	return Cost{
		Hours:     hours,
		Rate:      p.rate,
		TotalCost: hours * p.rate,
	}
}

// DeriveTimeline converts hours into a 40h-week schedule and an accelerated one at
// 60% of the weeks, both rounded up.
func DeriveTimeline(hours int) Timeline {
	weeks := max(ceilDiv(hours, 40), 1)
	accelerated := ceilDiv(weeks*6, 10)

	return Timeline{
		IndustryStandard: formatWeeks(weeks),
		Accelerated:      formatWeeks(accelerated),
	}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func formatWeeks(n int) string {
	if n == 1 {
		return "1 week"
	}
	return fmt.Sprintf("%d weeks", n)
}
