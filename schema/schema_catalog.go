package schema

// QuestionOption is one selectable value of a choice question.
type QuestionOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
	Score int    `json:"score" yaml:"score"` // 0-100
}

// Question is a single catalogue entry. Options apply to choice questions,
// while Min, Max, Step and Unit apply to numeric questions.
//
// Critical only drives presentation (an asterisk next to the text). It does not
// change how the question is weighted in a category average.
type Question struct {
	ID       string           `json:"id" yaml:"id"`
	Text     string           `json:"text" yaml:"text"`
	Type     QuestionType     `json:"type" yaml:"type"`
	Options  []QuestionOption `json:"options,omitempty" yaml:"options,omitempty"`
	Min      *float64         `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *float64         `json:"max,omitempty" yaml:"max,omitempty"`
	Step     *float64         `json:"step,omitempty" yaml:"step,omitempty"`
	Unit     string           `json:"unit,omitempty" yaml:"unit,omitempty"`
	Critical bool             `json:"critical,omitempty" yaml:"critical,omitempty"`
}

// Range returns the numeric bounds of the question, defaulting to 0 and 100.
func (q Question) Range() (lo, hi float64) {
	lo, hi = 0, 100
	if q.Min != nil {
		lo = *q.Min
	}
	if q.Max != nil {
		hi = *q.Max
	}
	return lo, hi
}

// Option returns the option whose value matches, if any.
func (q Question) Option(value string) (QuestionOption, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return QuestionOption{}, false
}

// Category groups questions under a single weight.
type Category struct {
	ID            string     `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	Icon          string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	DefaultWeight int        `json:"defaultWeight" yaml:"defaultWeight"`
	Questions     []Question `json:"questions" yaml:"questions"`
}
