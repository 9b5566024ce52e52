package algo

import "github.com/huangsam/nestscore/schema"

// Tier boundaries, inclusive lower bounds.
const (
	excellentFloor = 80
	goodFloor      = 60
	fairFloor      = 40
)

// TierFor maps a score to its tier. It is defined for every integer.
func TierFor(score int) schema.Tier {
	switch {
	case score >= excellentFloor:
		return schema.TierExcellent
	case score >= goodFloor:
		return schema.TierGood
	case score >= fairFloor:
		return schema.TierFair
	default:
		return schema.TierPoor
	}
}

// Classify returns the tier and display label for a score.
func Classify(score int) schema.Classification {
	tier := TierFor(score)
	return schema.Classification{Tier: tier, Label: tier.String()}
}
