// Package catalog holds the immutable question catalogue that drives scoring.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/nestscore/schema"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
)

// questionRef locates a question inside the category slice.
type questionRef struct {
	category int
	question int
}

// Catalog is an ordered, indexed set of categories. It is never mutated after
// construction, so a single instance can be shared by concurrent scorers.
type Catalog struct {
	categories []schema.Category
	byID       map[string]int
	questions  map[string]questionRef
	options    map[string]map[string]int // question id -> option value -> score
	total      int
}

// file is the on-disk catalogue layout.
type file struct {
	Categories []schema.Category `yaml:"categories"`
}

// New validates the categories and builds the lookup indexes. The input is
// deep-copied so later changes by the caller are not observed.
func New(categories []schema.Category) (*Catalog, error) {
	c := &Catalog{
		categories: make([]schema.Category, len(categories)),
		byID:       make(map[string]int, len(categories)),
		questions:  make(map[string]questionRef),
		options:    make(map[string]map[string]int),
	}

	for i, cat := range categories {
		if cat.ID == "" {
			return nil, fmt.Errorf("category at position %d has no id", i)
		}
		if _, dup := c.byID[cat.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %q", cat.ID)
		}
		if cat.DefaultWeight < 0 {
			return nil, fmt.Errorf("category %q has negative default weight %d", cat.ID, cat.DefaultWeight)
		}
		c.byID[cat.ID] = i

		copied := cat
		copied.Questions = make([]schema.Question, len(cat.Questions))
		for j, q := range cat.Questions {
			if err := validateQuestion(q); err != nil {
				return nil, fmt.Errorf("category %q: %w", cat.ID, err)
			}
			if _, dup := c.questions[q.ID]; dup {
				return nil, fmt.Errorf("duplicate question id %q", q.ID)
			}
			c.questions[q.ID] = questionRef{category: i, question: j}
			copied.Questions[j] = cloneQuestion(q)

			if q.Type == schema.ChoiceQuestion {
				scores := make(map[string]int, len(q.Options))
				for _, o := range q.Options {
					scores[o.Value] = o.Score
				}
				c.options[q.ID] = scores
			}
		}
		c.total += len(cat.Questions)
		c.categories[i] = copied
	}

	return c, nil
}

// validateQuestion checks a single question definition.
func validateQuestion(q schema.Question) error {
	if q.ID == "" {
		return errors.New("question has no id")
	}
	if _, ok := schema.ValidQuestionTypes[q.Type]; !ok {
		return fmt.Errorf("question %q has invalid type %q", q.ID, q.Type)
	}
	if q.Type != schema.ChoiceQuestion {
		return nil
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("choice question %q has no options", q.ID)
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if _, dup := seen[o.Value]; dup {
			return fmt.Errorf("question %q has duplicate option value %q", q.ID, o.Value)
		}
		seen[o.Value] = struct{}{}
		if o.Score < 0 || o.Score > 100 {
			return fmt.Errorf("question %q option %q has score %d outside [0, 100]", q.ID, o.Value, o.Score)
		}
	}
	return nil
}

func cloneQuestion(q schema.Question) schema.Question {
	clone := q
	if q.Options != nil {
		clone.Options = append([]schema.QuestionOption(nil), q.Options...)
	}
	for _, p := range []**float64{&clone.Min, &clone.Max, &clone.Step} {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	return clone
}

// Parse reads a catalogue from YAML.
func Parse(data []byte) (*Catalog, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode catalogue: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, errors.New("catalogue has no categories")
	}
	return New(f.Categories)
}

// Load reads a catalogue from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the built-in catalogue of ten categories.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalogue is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Categories returns the categories in catalogue order. The returned slice is
// a copy; the nested questions must be treated as read-only.
func (c *Catalog) Categories() []schema.Category {
	return append([]schema.Category(nil), c.categories...)
}

// Len returns the number of categories.
func (c *Catalog) Len() int { return len(c.categories) }

// Category looks up a category by id.
func (c *Catalog) Category(id string) (schema.Category, bool) {
	i, ok := c.byID[id]
	if !ok {
		return schema.Category{}, false
	}
	return c.categories[i], true
}

// Question looks up a question by id and returns the id of its category.
func (c *Catalog) Question(id string) (schema.Question, string, bool) {
	ref, ok := c.questions[id]
	if !ok {
		return schema.Question{}, "", false
	}
	cat := c.categories[ref.category]
	return cat.Questions[ref.question], cat.ID, true
}

// OptionScore returns the score of a choice option.
func (c *Catalog) OptionScore(questionID, value string) (int, bool) {
	score, ok := c.options[questionID][value]
	return score, ok
}

// TotalQuestions returns the number of questions across all categories.
func (c *Catalog) TotalQuestions() int { return c.total }

// DefaultWeights returns the default weight of every category.
func (c *Catalog) DefaultWeights() schema.Weights {
	w := make(schema.Weights, len(c.categories))
	for _, cat := range c.categories {
		w[cat.ID] = cat.DefaultWeight
	}
	return w
}

// ScoredCategories returns the categories with a non-zero default weight, which
// are the ones shown in comparison and export views.
func (c *Catalog) ScoredCategories() []schema.Category {
	out := make([]schema.Category, 0, len(c.categories))
	for _, cat := range c.categories {
		if cat.DefaultWeight > 0 {
			out = append(out, cat)
		}
	}
	return out
}
