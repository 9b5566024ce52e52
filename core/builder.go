package core

import (
	"github.com/huangsam/nestscore/core/algo"
	"github.com/huangsam/nestscore/core/catalog"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// PropertyDetailBuilder builds the detail view of one property step by step.
type PropertyDetailBuilder struct {
	catalog *catalog.Catalog
	weights schema.Weights
	result  *schema.PropertyDetail

	// Internal data collected during the build process
	score schema.PropertyScore
}

// NewPropertyDetailBuilder is the starting point for building a property detail.
func NewPropertyDetailBuilder(c *catalog.Catalog, p schema.Property, weights schema.Weights) *PropertyDetailBuilder {
	return &PropertyDetailBuilder{
		catalog: c,
		weights: weights,
		result:  &schema.PropertyDetail{Property: p},
	}
}

// CalculateScore scores every category and the overall score.
func (b *PropertyDetailBuilder) CalculateScore() *PropertyDetailBuilder {
	b.score = algo.ScoreProperty(b.catalog, b.result.Property, b.weights)
	b.result.OverallScore = b.score.OverallScore
	b.result.OverallLabel = contract.GetPlainLabel(b.score.OverallScore)

	b.result.Categories = make([]schema.CategoryDetail, 0, len(b.score.CategoryScores))
	for _, cs := range b.score.CategoryScores {
		category, _ := b.catalog.Category(cs.CategoryID)
		b.result.Categories = append(b.result.Categories, schema.CategoryDetail{
			CategoryScore: cs,
			Name:          category.Name,
			Weight:        algo.EffectiveWeight(category, b.weights),
			Label:         contract.GetPlainLabel(cs.Score),
		})
	}
	return b
}

// CalculateCompletion fills the share of catalogue questions answered.
func (b *PropertyDetailBuilder) CalculateCompletion() *PropertyDetailBuilder {
	b.result.Completion = algo.CompletionPercentage(b.catalog, b.result.Property.Answers)
	return b
}

// CalculateDistance fills the distance to work when both ends have coordinates.
func (b *PropertyDetailBuilder) CalculateDistance(work *schema.Coordinates) *PropertyDetailBuilder {
	home := b.result.Property.Coordinates
	if home == nil || work == nil {
		return b
	}
	km := algo.GreatCircleDistanceKm(*home, *work)
	b.result.DistanceKm = &km
	b.result.DistanceLabel = algo.FormatDistance(km)
	return b
}

// Build returns the finished detail.
func (b *PropertyDetailBuilder) Build() schema.PropertyDetail {
	return *b.result
}

// Score returns the property score computed by CalculateScore.
func (b *PropertyDetailBuilder) Score() schema.PropertyScore {
	return b.score
}
