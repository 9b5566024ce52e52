package algo

import (
	"testing"

	"github.com/huangsam/nestscore/core/catalog"
	"github.com/huangsam/nestscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionPercentage(t *testing.T) {
	c := catalog.Default() // 43 questions

	tests := []struct {
		name    string
		answers schema.Answers
		want    int
	}{
		{"empty", schema.Answers{}, 0},
		{"one answer", schema.Answers{"gym": schema.BoolAnswer(false)}, 2},
		{"empty string ignored", schema.Answers{"gym": schema.StringAnswer("")}, 0},
		{"stale keys ignored", schema.Answers{"swimming_pool": schema.BoolAnswer(true)}, 0},
		{"zero-weight category counts", schema.Answers{"service_charge": schema.NumberAnswer(0), "ground_rent": schema.NumberAnswer(0)}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompletionPercentage(c, tt.answers))
		})
	}
}

func TestCompletionPercentageFull(t *testing.T) {
	c := catalog.Default()
	answers := schema.Answers{}
	for _, cat := range c.Categories() {
		for _, q := range cat.Questions {
			answers[q.ID] = schema.BoolAnswer(true)
		}
	}
	assert.Equal(t, 100, CompletionPercentage(c, answers))
}

func TestCompletionPercentageEmptyCatalogue(t *testing.T) {
	c, err := catalog.New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, CompletionPercentage(c, schema.Answers{"x": schema.BoolAnswer(true)}))
}

func TestCategoryCompletion(t *testing.T) {
	c := catalog.Default()
	answers := schema.Answers{
		"tube_distance": schema.StringAnswer("under_5"),
		"bus_access":    schema.BoolAnswer(false),
		"parking":       schema.StringAnswer(""),
	}

	answered, total := CategoryCompletion(c, "location", answers)
	assert.Equal(t, 2, answered)
	assert.Equal(t, 5, total)

	answered, total = CategoryCompletion(c, "garage", answers)
	assert.Zero(t, answered)
	assert.Zero(t, total)

	cs := ScoreCategory(c, "location", answers)
	assert.Equal(t, 2, cs.AnsweredCount, "matches the scorer's counts")
}
