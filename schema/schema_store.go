package schema

import "time"

// ScoreRunRecord represents a row from the nestscore_score_runs table.
type ScoreRunRecord struct {
	RunID           int64
	RunToken        string
	StartTime       time.Time
	EndTime         *time.Time
	RunDurationMs   *int32
	TotalProperties int32
	ConfigParams    *string
}

// PropertyScoreRecord represents a row from the nestscore_property_scores table.
// CategoryScores is keyed by category id.
type PropertyScoreRecord struct {
	RunID          int64
	PropertyID     int64
	PropertyName   string
	ScoredAt       time.Time
	OverallScore   int32
	Label          string
	Completion     int32
	CategoryScores map[string]int32
}

// NewPropertyScoreRecord flattens a scored property into a history row.
func NewPropertyScoreRecord(runID int64, sp ScoredProperty, label string, scoredAt time.Time) PropertyScoreRecord {
	categories := make(map[string]int32, len(sp.Score.CategoryScores))
	for _, cs := range sp.Score.CategoryScores {
		categories[cs.CategoryID] = int32(cs.Score)
	}
	return PropertyScoreRecord{
		RunID:          runID,
		PropertyID:     sp.Property.ID,
		PropertyName:   sp.Property.Name,
		ScoredAt:       scoredAt,
		OverallScore:   int32(sp.Score.OverallScore),
		Label:          label,
		Completion:     int32(sp.Completion),
		CategoryScores: categories,
	}
}
