package schema

import "time"

// RecordStatus represents the status of the property record store.
type RecordStatus struct {
	Backend          string    `json:"backend"`
	Connected        bool      `json:"connected"`
	TotalProperties  int       `json:"total_properties"`
	NewestCreatedAt  time.Time `json:"newest_created_at"`
	OldestCreatedAt  time.Time `json:"oldest_created_at"`
	SettingsModified bool      `json:"settings_modified"`
}

// HistoryStatus represents the status of the score history store.
type HistoryStatus struct {
	Backend               string           `json:"backend"`
	Connected             bool             `json:"connected"`
	TotalRuns             int              `json:"total_runs"`
	LastRunID             int64            `json:"last_run_id"`
	LastRunTime           time.Time        `json:"last_run_time"`
	OldestRunTime         time.Time        `json:"oldest_run_time"`
	TotalPropertiesScored int              `json:"total_properties_scored"`
	TableSizes            map[string]int64 `json:"table_sizes"`
}
