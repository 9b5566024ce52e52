package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

// AnswerKind tags the concrete type held by an AnswerValue.
type AnswerKind int

// All answer kinds supported.
const (
	NoAnswer AnswerKind = iota
	StringAnswerKind
	BoolAnswerKind
	NumberAnswerKind
)

// AnswerValue holds a string, boolean or number answer.
// The zero value is an absent answer.
type AnswerValue struct {
	kind AnswerKind
	str  string
	b    bool
	num  float64
}

// StringAnswer wraps a choice value or free-form numeric text.
func StringAnswer(s string) AnswerValue { return AnswerValue{kind: StringAnswerKind, str: s} }

// BoolAnswer wraps a boolean answer.
func BoolAnswer(b bool) AnswerValue { return AnswerValue{kind: BoolAnswerKind, b: b} }

// NumberAnswer wraps a numeric answer.
func NumberAnswer(n float64) AnswerValue { return AnswerValue{kind: NumberAnswerKind, num: n} }

// Kind returns the concrete type of the answer.
func (a AnswerValue) Kind() AnswerKind { return a.kind }

// IsAnswered reports whether the value counts as an answer. Absent values and
// empty strings do not.
func (a AnswerValue) IsAnswered() bool {
	switch a.kind {
	case NoAnswer:
		return false
	case StringAnswerKind:
		return a.str != ""
	default:
		return true
	}
}

// String returns the string payload, or "" for other kinds.
func (a AnswerValue) String() string {
	if a.kind != StringAnswerKind {
		return ""
	}
	return a.str
}

// Bool returns the boolean payload. Only a stored true returns true.
func (a AnswerValue) Bool() bool {
	return a.kind == BoolAnswerKind && a.b
}

// Float returns the numeric payload. String payloads are parsed; the second
// result is false when no number can be read.
func (a AnswerValue) Float() (float64, bool) {
	switch a.kind {
	case NumberAnswerKind:
		return a.num, true
	case StringAnswerKind:
		f, err := strconv.ParseFloat(a.str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Display renders the answer for tables and CSV cells.
func (a AnswerValue) Display() string {
	switch a.kind {
	case StringAnswerKind:
		return a.str
	case BoolAnswerKind:
		if a.b {
			return "yes"
		}
		return "no"
	case NumberAnswerKind:
		return strconv.FormatFloat(a.num, 'f', -1, 64)
	default:
		return ""
	}
}

// MarshalJSON encodes the answer as a bare JSON string, boolean or number.
func (a AnswerValue) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case StringAnswerKind:
		return json.Marshal(a.str)
	case BoolAnswerKind:
		return json.Marshal(a.b)
	case NumberAnswerKind:
		return json.Marshal(a.num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a bare JSON string, boolean, number or null.
func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = AnswerValue{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = StringAnswer(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*a = BoolAnswer(b)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unsupported answer value %s: %w", data, err)
		}
		*a = NumberAnswer(n)
	}
	return nil
}

// Answers maps question ids to answer values.
type Answers map[string]AnswerValue

// Clone returns a copy of the answers.
func (a Answers) Clone() Answers {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// Weights maps category ids to non-negative integer weights.
type Weights map[string]int

// Clone returns a copy of the weights.
func (w Weights) Clone() Weights {
	if w == nil {
		return nil
	}
	return maps.Clone(w)
}
