package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/nestscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	assert.Same(t, c, Default(), "default catalogue is built once")

	ids := make([]string, 0, c.Len())
	for _, cat := range c.Categories() {
		ids = append(ids, cat.ID)
	}
	assert.Equal(t, []string{
		"location", "amenities", "safety", "building", "utilities",
		"internet", "energy", "interior", "outdoor", "legal",
	}, ids)

	total := 0
	for _, w := range c.DefaultWeights() {
		total += w
	}
	assert.Equal(t, 100, total)
	assert.Equal(t, 0, c.DefaultWeights()["legal"])
	assert.Equal(t, 43, c.TotalQuestions())
	assert.Len(t, c.ScoredCategories(), 9)
}

func TestLookups(t *testing.T) {
	c := Default()

	cat, ok := c.Category("location")
	require.True(t, ok)
	assert.Equal(t, 20, cat.DefaultWeight)
	assert.Len(t, cat.Questions, 5)

	_, ok = c.Category("garage")
	assert.False(t, ok)

	q, catID, ok := c.Question("service_charge")
	require.True(t, ok)
	assert.Equal(t, "legal", catID)
	assert.Equal(t, schema.NumericQuestion, q.Type)
	lo, hi := q.Range()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 5000.0, hi)

	score, ok := c.OptionScore("tube_distance", "5_10")
	assert.True(t, ok)
	assert.Equal(t, 80, score)

	_, ok = c.OptionScore("tube_distance", "teleport")
	assert.False(t, ok)
	_, ok = c.OptionScore("bus_access", "yes")
	assert.False(t, ok)
}

func TestCriticalFlagIsMetadataOnly(t *testing.T) {
	q, _, ok := Default().Question("tube_distance")
	require.True(t, ok)
	assert.True(t, q.Critical)
}

func TestCategoriesReturnsCopy(t *testing.T) {
	c := Default()
	cats := c.Categories()
	cats[0].ID = "mutated"
	cats[0].DefaultWeight = 99

	first := c.Categories()[0]
	assert.Equal(t, "location", first.ID)
	assert.Equal(t, 20, first.DefaultWeight)
}

func TestNewCopiesInput(t *testing.T) {
	in := []schema.Category{{
		ID: "a", Name: "A", DefaultWeight: 10,
		Questions: []schema.Question{{
			ID: "q1", Type: schema.ChoiceQuestion,
			Options: []schema.QuestionOption{{Value: "x", Label: "X", Score: 40}},
		}},
	}}
	c, err := New(in)
	require.NoError(t, err)

	in[0].Questions[0].Options[0].Score = 90
	score, ok := c.OptionScore("q1", "x")
	require.True(t, ok)
	assert.Equal(t, 40, score)

	q, _, _ := c.Question("q1")
	assert.Equal(t, 40, q.Options[0].Score)
}

func TestNewValidation(t *testing.T) {
	choice := func(id string, opts ...schema.QuestionOption) schema.Question {
		return schema.Question{ID: id, Type: schema.ChoiceQuestion, Options: opts}
	}
	opt := func(v string, s int) schema.QuestionOption { return schema.QuestionOption{Value: v, Score: s} }

	tests := []struct {
		name       string
		categories []schema.Category
		wantErr    string
	}{
		{
			name:       "missing category id",
			categories: []schema.Category{{Name: "x"}},
			wantErr:    "has no id",
		},
		{
			name:       "duplicate category",
			categories: []schema.Category{{ID: "a"}, {ID: "a"}},
			wantErr:    "duplicate category id",
		},
		{
			name:       "negative default weight",
			categories: []schema.Category{{ID: "a", DefaultWeight: -1}},
			wantErr:    "negative default weight",
		},
		{
			name: "duplicate question across categories",
			categories: []schema.Category{
				{ID: "a", Questions: []schema.Question{{ID: "q", Type: schema.BooleanQuestion}}},
				{ID: "b", Questions: []schema.Question{{ID: "q", Type: schema.BooleanQuestion}}},
			},
			wantErr: "duplicate question id",
		},
		{
			name:       "unknown question type",
			categories: []schema.Category{{ID: "a", Questions: []schema.Question{{ID: "q", Type: "slider"}}}},
			wantErr:    "invalid type",
		},
		{
			name:       "choice without options",
			categories: []schema.Category{{ID: "a", Questions: []schema.Question{choice("q")}}},
			wantErr:    "has no options",
		},
		{
			name:       "duplicate option value",
			categories: []schema.Category{{ID: "a", Questions: []schema.Question{choice("q", opt("x", 1), opt("x", 2))}}},
			wantErr:    "duplicate option value",
		},
		{
			name:       "option score out of range",
			categories: []schema.Category{{ID: "a", Questions: []schema.Question{choice("q", opt("x", 101))}}},
			wantErr:    "outside [0, 100]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.categories)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.yaml")
		data := []byte(`categories:
  - id: garden
    name: Garden
    defaultWeight: 10
    questions:
      - id: lawn
        text: Has a lawn
        type: boolean
      - id: size
        text: Garden size
        type: numeric
        min: 0
        max: 200
`)
		require.NoError(t, os.WriteFile(path, data, 0o644))

		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2, c.TotalQuestions())
		q, _, ok := c.Question("size")
		require.True(t, ok)
		_, hi := q.Range()
		assert.Equal(t, 200.0, hi)
	})

	t.Run("unknown field", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories:\n  - id: a\n    colour: red\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("empty catalogue", func(t *testing.T) {
		_, err := Parse([]byte("categories: []\n"))
		assert.ErrorContains(t, err, "no categories")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
	})
}
