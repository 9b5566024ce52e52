package algo

import (
	"math"
	"testing"

	"github.com/huangsam/nestscore/core/catalog"
	"github.com/huangsam/nestscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

// newTestCatalog builds a small catalogue with one category per question type.
func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]schema.Category{
		{
			ID: "pick", DefaultWeight: 10,
			Questions: []schema.Question{
				{ID: "colour", Type: schema.ChoiceQuestion, Options: []schema.QuestionOption{
					{Value: "red", Score: 100}, {Value: "blue", Score: 50}, {Value: "grey", Score: 0},
				}},
				{ID: "shade", Type: schema.ChoiceQuestion, Options: []schema.QuestionOption{
					{Value: "dark", Score: 25}, {Value: "light", Score: 75},
				}},
			},
		},
		{
			ID: "flags", DefaultWeight: 30,
			Questions: []schema.Question{
				{ID: "a", Type: schema.BooleanQuestion},
				{ID: "b", Type: schema.BooleanQuestion},
				{ID: "c", Type: schema.BooleanQuestion},
			},
		},
		{
			ID: "costs", DefaultWeight: 0,
			Questions: []schema.Question{
				{ID: "rent", Type: schema.NumericQuestion, Min: ptr(0), Max: ptr(5000)},
				{ID: "percent", Type: schema.NumericQuestion},
				{ID: "flat", Type: schema.NumericQuestion, Min: ptr(10), Max: ptr(10)},
				{ID: "upside_down", Type: schema.NumericQuestion, Min: ptr(100), Max: ptr(0)},
			},
		},
	})
	require.NoError(t, err)
	return c
}

func TestScoreCategoryUnknown(t *testing.T) {
	got := ScoreCategory(catalog.Default(), "garage", schema.Answers{"tube_distance": schema.StringAnswer("under_5")})
	assert.Equal(t, schema.CategoryScore{CategoryID: "garage"}, got)
}

func TestScoreCategoryBoolean(t *testing.T) {
	c := catalog.Default()

	tests := []struct {
		name     string
		answers  schema.Answers
		score    int
		answered int
	}{
		{"true contributes 100", schema.Answers{"bus_access": schema.BoolAnswer(true)}, 100, 1},
		{"false contributes 0", schema.Answers{"bus_access": schema.BoolAnswer(false)}, 0, 1},
		{"mixed averages", schema.Answers{"bus_access": schema.BoolAnswer(true), "train_access": schema.BoolAnswer(false)}, 50, 2},
		{"string yes is not true", schema.Answers{"bus_access": schema.StringAnswer("yes")}, 0, 1},
		{"empty string is unanswered", schema.Answers{"bus_access": schema.StringAnswer("")}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreCategory(c, "location", tt.answers)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.answered, got.AnsweredCount)
			assert.Equal(t, 5, got.TotalCount)
		})
	}
}

func TestScoreCategoryChoice(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		name     string
		answers  schema.Answers
		score    int
		answered int
	}{
		{"single option", schema.Answers{"colour": schema.StringAnswer("blue")}, 50, 1},
		{"average of two", schema.Answers{"colour": schema.StringAnswer("red"), "shade": schema.StringAnswer("dark")}, 63, 2},
		{"stale value counts with zero", schema.Answers{"colour": schema.StringAnswer("purple"), "shade": schema.StringAnswer("light")}, 38, 2},
		{"wrong kind counts with zero", schema.Answers{"colour": schema.BoolAnswer(true)}, 0, 1},
		{"unknown keys ignored", schema.Answers{"ghost": schema.StringAnswer("red")}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreCategory(c, "pick", tt.answers)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.answered, got.AnsweredCount)
			assert.Equal(t, 2, got.TotalCount)
		})
	}
}

func TestScoreCategoryNumeric(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		name     string
		question string
		answer   schema.AnswerValue
		score    int
	}{
		{"minimum is best", "rent", schema.NumberAnswer(0), 100},
		{"maximum is worst", "rent", schema.NumberAnswer(5000), 0},
		{"midpoint", "rent", schema.NumberAnswer(2500), 50},
		{"below range clamps", "rent", schema.NumberAnswer(-100), 100},
		{"above range clamps", "rent", schema.NumberAnswer(9000), 0},
		{"numeric string is parsed", "rent", schema.StringAnswer("1250"), 75},
		{"unparseable string", "rent", schema.StringAnswer("cheap"), 0},
		{"default range", "percent", schema.NumberAnswer(30), 70},
		{"NaN", "percent", schema.NumberAnswer(math.NaN()), 0},
		{"infinity", "percent", schema.NumberAnswer(math.Inf(-1)), 100},
		{"equal bounds guarded", "flat", schema.NumberAnswer(10), 0},
		{"inverted bounds guarded", "upside_down", schema.NumberAnswer(50), 0},
		{"bool on numeric", "rent", schema.BoolAnswer(true), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreCategory(c, "costs", schema.Answers{tt.question: tt.answer})
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, 1, got.AnsweredCount)
			assert.Equal(t, 4, got.TotalCount)
		})
	}
}

func TestScoreCategoryNoPenaltyForIncomplete(t *testing.T) {
	got := ScoreCategory(catalog.Default(), "location", schema.Answers{"tube_distance": schema.StringAnswer("under_5")})
	assert.Equal(t, 100, got.Score, "unanswered questions do not lower the average")
	assert.Equal(t, 1, got.AnsweredCount)
	assert.Equal(t, 5, got.TotalCount)
}

func TestScoreCategoryRoundsHalfUp(t *testing.T) {
	c := newTestCatalog(t)
	// (100 + 25) / 2 = 62.5
	got := ScoreCategory(c, "pick", schema.Answers{"colour": schema.StringAnswer("red"), "shade": schema.StringAnswer("dark")})
	assert.Equal(t, 63, got.Score)
}

// The critical flag is presentation metadata. Whether it was meant to boost a
// question's weight is unresolved, so this pins the current behaviour: a
// critical answer counts the same as any other.
func TestScoreCategoryCriticalHasNoEffect(t *testing.T) {
	c := catalog.Default()
	q, _, ok := c.Question("tube_distance")
	require.True(t, ok)
	require.True(t, q.Critical)

	got := ScoreCategory(c, "location", schema.Answers{
		"tube_distance": schema.StringAnswer("over_20"), // critical, 20
		"bus_access":    schema.BoolAnswer(true),        // 100
	})
	assert.Equal(t, 60, got.Score)
}

func TestScoreOverall(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		name    string
		answers schema.Answers
		weights schema.Weights
		overall int
	}{
		{
			name:    "all unanswered",
			answers: schema.Answers{},
			weights: nil,
			overall: 0,
		},
		{
			name:    "defaults weight both categories",
			answers: schema.Answers{"colour": schema.StringAnswer("red"), "a": schema.BoolAnswer(false)},
			// (100*10 + 0*30) / 40
			overall: 25,
		},
		{
			name:    "override replaces default",
			answers: schema.Answers{"colour": schema.StringAnswer("red"), "a": schema.BoolAnswer(false)},
			weights: schema.Weights{"pick": 30, "flags": 10},
			overall: 75,
		},
		{
			name:    "zero weight excluded",
			answers: schema.Answers{"colour": schema.StringAnswer("blue"), "rent": schema.NumberAnswer(0)},
			overall: 50,
		},
		{
			name:    "zero weight override excludes",
			answers: schema.Answers{"colour": schema.StringAnswer("blue"), "a": schema.BoolAnswer(true)},
			weights: schema.Weights{"flags": 0},
			overall: 50,
		},
		{
			name:    "negative weight excluded",
			answers: schema.Answers{"colour": schema.StringAnswer("blue"), "a": schema.BoolAnswer(true)},
			weights: schema.Weights{"flags": -5},
			overall: 50,
		},
		{
			name:    "weighted zero-weight category counts when re-weighted",
			answers: schema.Answers{"rent": schema.NumberAnswer(0)},
			weights: schema.Weights{"costs": 5},
			overall: 100,
		},
		{
			name:    "only weight-zero answers",
			answers: schema.Answers{"rent": schema.NumberAnswer(0)},
			overall: 0,
		},
		{
			name:    "unknown weight keys ignored",
			answers: schema.Answers{"a": schema.BoolAnswer(true)},
			weights: schema.Weights{"ghost": 50},
			overall: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreOverall(c, tt.answers, tt.weights)
			assert.Equal(t, tt.overall, got.OverallScore)
			require.Len(t, got.CategoryScores, 3)
			assert.Equal(t, []string{"pick", "flags", "costs"}, []string{
				got.CategoryScores[0].CategoryID, got.CategoryScores[1].CategoryID, got.CategoryScores[2].CategoryID,
			})
		})
	}
}

func TestScoreOverallAllUnanswered(t *testing.T) {
	c := catalog.Default()
	got := ScoreOverall(c, schema.Answers{}, c.DefaultWeights())

	assert.Equal(t, 0, got.OverallScore)
	require.Len(t, got.CategoryScores, 10)
	for _, cs := range got.CategoryScores {
		assert.Equal(t, 0, cs.Score, cs.CategoryID)
		assert.Equal(t, 0, cs.AnsweredCount, cs.CategoryID)
		assert.Positive(t, cs.TotalCount, cs.CategoryID)
	}
}

func TestScoreOverallZeroAnswerExclusion(t *testing.T) {
	c := catalog.Default()
	base := schema.Answers{"area_safety": schema.StringAnswer("safe")}

	alone := ScoreOverall(c, base, nil)
	assert.Equal(t, 75, alone.OverallScore, "heavily weighted but unanswered categories do not pull it down")

	withLegal := base.Clone()
	withLegal["service_charge"] = schema.NumberAnswer(5000)
	assert.Equal(t, alone.OverallScore, ScoreOverall(c, withLegal, nil).OverallScore, "legal is weighted zero by default")
}

func TestScoreOverallEndToEnd(t *testing.T) {
	full := catalog.Default()
	location, _ := full.Category("location")
	safety, _ := full.Category("safety")
	c, err := catalog.New([]schema.Category{location, safety})
	require.NoError(t, err)

	got := ScoreOverall(c, schema.Answers{"tube_distance": schema.StringAnswer("5_10")}, nil)

	require.Len(t, got.CategoryScores, 2)
	assert.Equal(t, schema.CategoryScore{CategoryID: "location", Score: 80, AnsweredCount: 1, TotalCount: 5}, got.CategoryScores[0])
	assert.Equal(t, schema.CategoryScore{CategoryID: "safety", Score: 0, AnsweredCount: 0, TotalCount: 5}, got.CategoryScores[1])
	assert.Equal(t, 80, got.OverallScore)
}

func TestScoreOverallIdempotent(t *testing.T) {
	c := catalog.Default()
	answers := schema.Answers{
		"tube_distance":   schema.StringAnswer("10_15"),
		"bus_access":      schema.BoolAnswer(true),
		"area_safety":     schema.StringAnswer("mixed"),
		"service_charge":  schema.NumberAnswer(1800),
		"broadband_speed": schema.StringAnswer("gigabit"),
	}
	weights := schema.Weights{"legal": 10, "internet": 25}
	before := answers.Clone()

	first := ScoreOverall(c, answers, weights)
	second := ScoreOverall(c, answers, weights)

	assert.Equal(t, first, second)
	assert.Equal(t, before, answers, "inputs are not mutated")
}

func TestScoreProperty(t *testing.T) {
	c := catalog.Default()
	p := schema.Property{ID: 42, Answers: schema.Answers{"gym": schema.BoolAnswer(true)}}

	got := ScoreProperty(c, p, nil)
	assert.Equal(t, int64(42), got.PropertyID)
	assert.Equal(t, 100, got.OverallScore)

	cs, ok := got.CategoryScore("amenities")
	require.True(t, ok)
	assert.Equal(t, 1, cs.AnsweredCount)
}

func TestEffectiveWeight(t *testing.T) {
	cat := schema.Category{ID: "x", DefaultWeight: 15}
	assert.Equal(t, 15, EffectiveWeight(cat, nil))
	assert.Equal(t, 15, EffectiveWeight(cat, schema.Weights{"y": 3}))
	assert.Equal(t, 0, EffectiveWeight(cat, schema.Weights{"x": 0}))
	assert.Equal(t, 40, EffectiveWeight(cat, schema.Weights{"x": 40}))
}
