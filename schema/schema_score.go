package schema

// CategoryScore is the derived score of one category for one set of answers.
type CategoryScore struct {
	CategoryID    string `json:"categoryId"`
	Score         int    `json:"score"`
	AnsweredCount int    `json:"answeredCount"`
	TotalCount    int    `json:"totalCount"`
}

// PropertyScore is the derived overall and per-category score of a property.
// CategoryScores follow catalogue order.
type PropertyScore struct {
	PropertyID     int64           `json:"propertyId"`
	OverallScore   int             `json:"overallScore"`
	CategoryScores []CategoryScore `json:"categoryScores"`
}

// CategoryScore returns the score for a category id, if present.
func (p PropertyScore) CategoryScore(categoryID string) (CategoryScore, bool) {
	for _, cs := range p.CategoryScores {
		if cs.CategoryID == categoryID {
			return cs, true
		}
	}
	return CategoryScore{}, false
}

// ScoredProperty pairs a property with its computed score.
type ScoredProperty struct {
	Property   Property      `json:"property"`
	Score      PropertyScore `json:"score"`
	Completion int           `json:"completion"`
}

// GetOverallScore returns the overall score.
func (s ScoredProperty) GetOverallScore() int { return s.Score.OverallScore }

// GetCategoryScore returns the category score, or 0 when absent.
func (s ScoredProperty) GetCategoryScore(categoryID string) int {
	cs, _ := s.Score.CategoryScore(categoryID)
	return cs.Score
}

// Tier is a qualitative score band.
type Tier int

// All tiers, ordered from best to worst.
const (
	TierExcellent Tier = iota
	TierGood
	TierFair
	TierPoor
)

// String returns the display label of the tier.
func (t Tier) String() string {
	switch t {
	case TierExcellent:
		return "Excellent"
	case TierGood:
		return "Good"
	case TierFair:
		return "Fair"
	default:
		return "Poor"
	}
}

// Token returns a stable identifier a renderer can map to a palette.
func (t Tier) Token() string {
	switch t {
	case TierExcellent:
		return "score-excellent"
	case TierGood:
		return "score-good"
	case TierFair:
		return "score-fair"
	default:
		return "score-poor"
	}
}

// Classification is the tier and label for a score.
type Classification struct {
	Tier  Tier   `json:"tier"`
	Label string `json:"label"`
}
