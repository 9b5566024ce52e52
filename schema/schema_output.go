package schema

// EnrichedProperty adds presentation data to a ScoredProperty.
type EnrichedProperty struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ScoredProperty
}

// CatalogSummary is the flattened view of one catalogue question used by outputs.
type CatalogSummary struct {
	CategoryID   string       `json:"categoryId"`
	CategoryName string       `json:"categoryName"`
	Weight       int          `json:"weight"`
	QuestionID   string       `json:"questionId"`
	Text         string       `json:"text"`
	Type         QuestionType `json:"type"`
	Choices      string       `json:"choices"`
	Critical     bool         `json:"critical"`
}

// WeightSource tells where an effective weight came from.
type WeightSource string

// All weight sources, from lowest to highest precedence.
const (
	DefaultWeightSource  WeightSource = "default"
	SettingsWeightSource WeightSource = "settings"
	OverrideWeightSource WeightSource = "override"
)

// EffectiveWeight is the resolved weight of a single category.
type EffectiveWeight struct {
	CategoryID    string       `json:"categoryId"`
	CategoryName  string       `json:"categoryName"`
	DefaultWeight int          `json:"defaultWeight"`
	Weight        int          `json:"weight"`
	Source        WeightSource `json:"source"`
}

// CategoryDetail is one row of the property detail view.
type CategoryDetail struct {
	CategoryScore
	Name   string `json:"name"`
	Weight int    `json:"weight"`
	Label  string `json:"label"`
}

// PropertyDetail is the full detail view of a scored property.
type PropertyDetail struct {
	Property      Property         `json:"property"`
	OverallScore  int              `json:"overallScore"`
	OverallLabel  string           `json:"overallLabel"`
	Completion    int              `json:"completion"`
	Categories    []CategoryDetail `json:"categories"`
	DistanceKm    *float64         `json:"distanceKm,omitempty"`
	DistanceLabel string           `json:"distanceLabel,omitempty"`
}
