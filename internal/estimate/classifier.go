package estimate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	defaultCategoryWeight = 3
	maxKeywordBonus       = 5
)

// complexityKeywords each count once towards the score when they appear as a whole
// word or phrase (a trailing plural "s" is tolerated).
var complexityKeywords = []string{
	"real-time",
	"realtime",
	"ai",
	"machine learning",
	"ml",
	"payment",
	"subscription",
	"authentication",
	"microservice",
	"integration",
	"security",
	"compliance",
	"analytics",
	"dashboard",
	"notification",
	"chat",
	"video",
	"streaming",
	"blockchain",
	"multi-tenant",
	"api",
	"search",
	"mobile",
	"offline",
}

var keywordPatterns = compileKeywords(complexityKeywords)

func compileKeywords(keywords []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `s?\b`)
	}
	return patterns
}

// Classify maps raw project attributes to a complexity tier. The reported score is
// deterministic: the raw accumulator clamped into the tier's sub-range.
func Classify(category, requirements, description string) ComplexityResult {
	raw := CategoryWeight(category)
	raw += lengthBonus(utf8.RuneCountInString(requirements))
	raw += min(KeywordHits(requirements+" "+description), maxKeywordBonus)

	tier := TierForScore(raw)
	lo, hi := ScoreRange(tier)

	return ComplexityResult{
		Tier:  tier,
		Score: max(lo, min(raw, hi)),
		Raw:   raw,
	}
}

// CategoryWeight returns the classifier weight for a category, or the default
// weight for categories that are not in the catalog.
func CategoryWeight(category string) int {
	if c, ok := lookupCategory(category); ok {
		return c.Weight
	}
	return defaultCategoryWeight
}

// KeywordHits counts the distinct complexity keywords found in text.
func KeywordHits(text string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, p := range keywordPatterns {
		if p.MatchString(lower) {
			hits++
		}
	}
	return hits
}

func lengthBonus(n int) int {
	switch {
	case n > 1000:
		return 3
	case n > 500:
		return 2
	case n > 200:
		return 1
	default:
		return 0
	}
}

// TierForScore partitions the raw score into tiers.
func TierForScore(score int) Tier {
	switch {
	case score <= 3:
		return TierSimple
	case score <= 6:
		return TierModerate
	case score <= 9:
		return TierComplex
	default:
		return TierEnterprise
	}
}

// ScoreRange is the inclusive range the reported score of a tier falls into.
func ScoreRange(t Tier) (lo, hi int) {
	switch t {
	case TierSimple:
		return 1, 3
	case TierModerate:
		return 4, 6
	case TierComplex:
		return 7, 8
	default:
		return 9, 10
	}
}
