package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/nestscore/core/catalog"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// ParseAnswer converts a raw command-line value into an answer for a question.
// An empty value returns ok=false, meaning the answer should be cleared.
func ParseAnswer(q schema.Question, raw string) (answer schema.AnswerValue, ok bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return schema.AnswerValue{}, false, nil
	}

	switch q.Type {
	case schema.BooleanQuestion:
		b, err := contract.ParseBoolString(raw)
		if err != nil {
			return schema.AnswerValue{}, false, fmt.Errorf("question %s: %w", q.ID, err)
		}
		return schema.BoolAnswer(b), true, nil
	case schema.NumericQuestion:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return schema.AnswerValue{}, false, fmt.Errorf("question %s expects a number (received %q)", q.ID, raw)
		}
		return schema.NumberAnswer(v), true, nil
	default:
		if _, found := q.Option(raw); !found {
			values := make([]string, len(q.Options))
			for i, o := range q.Options {
				values[i] = o.Value
			}
			return schema.AnswerValue{}, false, fmt.Errorf("invalid choice %q for question %s, must be one of: %s",
				raw, q.ID, strings.Join(values, ", "))
		}
		return schema.StringAnswer(raw), true, nil
	}
}

// ParseAnswerArgs parses "question=value" pairs against the catalogue.
// Unknown question ids are rejected. A pair with an empty value maps to an
// empty string answer, which clears the stored answer.
func ParseAnswerArgs(c *catalog.Catalog, args []string) (schema.Answers, error) {
	answers := make(schema.Answers, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return nil, fmt.Errorf("invalid answer '%s', expected 'question=value'", arg)
		}
		key = strings.TrimSpace(key)
		q, _, known := c.Question(key)
		if !known {
			return nil, fmt.Errorf("unknown question '%s'", key)
		}
		answer, ok, err := ParseAnswer(q, value)
		if err != nil {
			return nil, err
		}
		if !ok {
			answer = schema.StringAnswer("")
		}
		answers[key] = answer
	}
	return answers, nil
}

// ApplyAnswers merges parsed answers into existing ones. Unanswered values
// remove the key. The input map is not modified.
func ApplyAnswers(existing, updates schema.Answers) schema.Answers {
	merged := existing.Clone()
	if merged == nil {
		merged = make(schema.Answers, len(updates))
	}
	for id, a := range updates {
		if a.IsAnswered() {
			merged[id] = a
		} else {
			delete(merged, id)
		}
	}
	return merged
}
