// Package algo has the pure scoring, ranking and classification functions.
// Nothing here performs I/O or keeps state between calls.
package algo

import (
	"math"

	"github.com/huangsam/nestscore/schema"
)

// Catalogue is the read-only view of the question catalogue used for scoring.
type Catalogue interface {
	Categories() []schema.Category
	Category(id string) (schema.Category, bool)
	OptionScore(questionID, value string) (int, bool)
	TotalQuestions() int
}

// roundHalfUp rounds to the nearest integer with halves going up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// clamp limits v to [lo, hi]. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// numericContribution maps a value inside [min, max] to 100..0, lower being better.
func numericContribution(q schema.Question, answer schema.AnswerValue) float64 {
	v, ok := answer.Float()
	if !ok || math.IsNaN(v) {
		return 0
	}
	lo, hi := q.Range()
	if hi <= lo {
		return 0
	}
	return clamp(100-((v-lo)/(hi-lo))*100, 0, 100)
}

// questionContribution returns the 0-100 contribution of one answered question.
func questionContribution(cat Catalogue, q schema.Question, answer schema.AnswerValue) float64 {
	switch q.Type {
	case schema.BooleanQuestion:
		if answer.Bool() {
			return 100
		}
		return 0
	case schema.ChoiceQuestion:
		if answer.Kind() != schema.StringAnswerKind {
			return 0
		}
		score, ok := cat.OptionScore(q.ID, answer.String())
		if !ok {
			return 0 // stale value
		}
		return clamp(float64(score), 0, 100)
	case schema.NumericQuestion:
		return numericContribution(q, answer)
	default:
		return 0
	}
}

// scoreCategory averages the contributions of the answered questions only.
func scoreCategory(cat Catalogue, category schema.Category, answers schema.Answers) schema.CategoryScore {
	result := schema.CategoryScore{
		CategoryID: category.ID,
		TotalCount: len(category.Questions),
	}

	var total float64
	for _, q := range category.Questions {
		answer, ok := answers[q.ID]
		if !ok || !answer.IsAnswered() {
			continue
		}
		result.AnsweredCount++
		total += questionContribution(cat, q, answer)
	}

	if result.AnsweredCount > 0 {
		result.Score = roundHalfUp(clamp(total/float64(result.AnsweredCount), 0, 100))
	}
	return result
}

// ScoreCategory computes the score of a single category. An unknown category
// yields a zero score with zero counts.
func ScoreCategory(cat Catalogue, categoryID string, answers schema.Answers) schema.CategoryScore {
	category, ok := cat.Category(categoryID)
	if !ok {
		return schema.CategoryScore{CategoryID: categoryID}
	}
	return scoreCategory(cat, category, answers)
}

// EffectiveWeight returns the weight for a category, falling back to its default.
func EffectiveWeight(category schema.Category, weights schema.Weights) int {
	if w, ok := weights[category.ID]; ok {
		return w
	}
	return category.DefaultWeight
}

// ScoreOverall scores every category and combines them into a weighted overall
// score. A category takes part only when its weight is positive and at least one
// of its questions is answered. PropertyID is left for the caller to fill.
func ScoreOverall(cat Catalogue, answers schema.Answers, weights schema.Weights) schema.PropertyScore {
	categories := cat.Categories()
	result := schema.PropertyScore{
		CategoryScores: make([]schema.CategoryScore, 0, len(categories)),
	}

	var weightedSum, totalWeight float64
	for _, category := range categories {
		cs := scoreCategory(cat, category, answers)
		result.CategoryScores = append(result.CategoryScores, cs)

		w := EffectiveWeight(category, weights)
		if w <= 0 || cs.AnsweredCount == 0 {
			continue
		}
		weightedSum += float64(cs.Score) * float64(w)
		totalWeight += float64(w)
	}

	if totalWeight > 0 {
		result.OverallScore = roundHalfUp(clamp(weightedSum/totalWeight, 0, 100))
	}
	return result
}

// ScoreProperty scores a property's answers and stamps the property id.
func ScoreProperty(cat Catalogue, p schema.Property, weights schema.Weights) schema.PropertyScore {
	result := ScoreOverall(cat, p.Answers, weights)
	result.PropertyID = p.ID
	return result
}
