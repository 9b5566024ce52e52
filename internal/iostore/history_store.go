package iostore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// Table names for score history.
const (
	scoreRunsTable      = "nestscore_score_runs"
	propertyScoresTable = "nestscore_property_scores"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return nil, fmt.Errorf("unsupported history backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	db, err := openDatabase(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the score history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{scoreRunsTable, getCreateScoreRunsQuery(backend)},
		{propertyScoresTable, getCreatePropertyScoresQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateScoreRunsQuery returns the CREATE TABLE query for nestscore_score_runs.
func getCreateScoreRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(scoreRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_token CHAR(36) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_properties INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_token TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_properties INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_token TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_properties INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreatePropertyScoresQuery returns the CREATE TABLE query for nestscore_property_scores.
func getCreatePropertyScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(propertyScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				property_id BIGINT NOT NULL,
				property_name VARCHAR(255) NOT NULL,
				scored_at DATETIME(6) NOT NULL,
				overall_score INT NOT NULL,
				score_label VARCHAR(50) NOT NULL,
				completion INT NOT NULL,
				category_scores TEXT NOT NULL,
				PRIMARY KEY (run_id, property_id)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				property_id BIGINT NOT NULL,
				property_name TEXT NOT NULL,
				scored_at TIMESTAMPTZ NOT NULL,
				overall_score INT NOT NULL,
				score_label TEXT NOT NULL,
				completion INT NOT NULL,
				category_scores TEXT NOT NULL,
				PRIMARY KEY (run_id, property_id)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				property_id INTEGER NOT NULL,
				property_name TEXT NOT NULL,
				scored_at TEXT NOT NULL,
				overall_score INTEGER NOT NULL,
				score_label TEXT NOT NULL,
				completion INTEGER NOT NULL,
				category_scores TEXT NOT NULL,
				PRIMARY KEY (run_id, property_id)
			);
		`, quotedTableName)
	}
}

// disabled reports whether the store is the no-op backend.
func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginRun creates a new run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (run_token, start_time, config_params) VALUES (?, ?, ?)`,
		quoteTableName(scoreRunsTable, hs.backend))
	args := []any{uuid.NewString(), formatTime(startTime, hs.backend), string(configJSON)}

	var runID int64
	if hs.backend == schema.PostgreSQLBackend {
		err = hs.db.QueryRow(rebind(hs.backend, query)+" RETURNING run_id", args...).Scan(&runID)
	} else {
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert score run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalProperties int) error {
	if hs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(scoreRunsTable, hs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quotedTableName)
	var startTime timeColumn
	if err := hs.db.QueryRow(rebind(hs.backend, query), runID).Scan(&startTime); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime.Time).Milliseconds()
	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_properties = ? WHERE run_id = ?`, quotedTableName)
	if _, err := hs.db.Exec(rebind(hs.backend, updateQuery), formatTime(endTime, hs.backend), durationMs, totalProperties, runID); err != nil {
		return fmt.Errorf("failed to update score run: %w", err)
	}
	return nil
}

// RecordPropertyScore stores one scored property for a run.
func (hs *HistoryStoreImpl) RecordPropertyScore(record schema.PropertyScoreRecord) error {
	if hs.disabled() {
		return nil
	}

	categories := record.CategoryScores
	if categories == nil {
		categories = map[string]int32{}
	}
	categoriesJSON, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal category scores: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, property_id, property_name, scored_at, overall_score,
		                score_label, completion, category_scores)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, quoteTableName(propertyScoresTable, hs.backend))

	_, err = hs.db.Exec(rebind(hs.backend, query),
		record.RunID, record.PropertyID, record.PropertyName, formatTime(record.ScoredAt, hs.backend),
		record.OverallScore, record.Label, record.Completion, string(categoriesJSON))
	if err != nil {
		return fmt.Errorf("failed to insert property score: %w", err)
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.disabled() {
		return status, nil
	}

	runsTable := quoteTableName(scoreRunsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var lastRunTime, oldestRunTime timeColumn
		row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable))
		if err := row.Scan(&status.LastRunID, &lastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunTime = lastRunTime.Time

		row = hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable))
		if err := row.Scan(&oldestRunTime); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime.Time

		row = hs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_properties), 0) FROM %s", runsTable))
		if err := row.Scan(&status.TotalPropertiesScored); err != nil {
			return status, fmt.Errorf("failed to get total properties scored: %w", err)
		}
	}

	for _, table := range []string{scoreRunsTable, propertyScoresTable} {
		var count int64
		row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all score runs, oldest first.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.ScoreRunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, run_token, start_time, end_time, run_duration_ms, total_properties, config_params
		FROM %s ORDER BY run_id`, quoteTableName(scoreRunsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query score runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ScoreRunRecord
	for rows.Next() {
		var (
			record             schema.ScoreRunRecord
			startTime, endTime timeColumn
		)
		if err := rows.Scan(&record.RunID, &record.RunToken, &startTime, &endTime,
			&record.RunDurationMs, &record.TotalProperties, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan score run: %w", err)
		}
		record.StartTime = startTime.Time
		record.EndTime = endTime.ptr()
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating score runs: %w", err)
	}
	return results, nil
}

// GetAllPropertyScores retrieves every recorded property score.
func (hs *HistoryStoreImpl) GetAllPropertyScores() ([]schema.PropertyScoreRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, property_id, property_name, scored_at, overall_score,
		score_label, completion, category_scores
		FROM %s ORDER BY run_id, property_id`, quoteTableName(propertyScoresTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query property scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PropertyScoreRecord
	for rows.Next() {
		var (
			record         schema.PropertyScoreRecord
			scoredAt       timeColumn
			categoriesJSON string
		)
		if err := rows.Scan(&record.RunID, &record.PropertyID, &record.PropertyName, &scoredAt,
			&record.OverallScore, &record.Label, &record.Completion, &categoriesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan property score: %w", err)
		}
		if err := json.Unmarshal([]byte(categoriesJSON), &record.CategoryScores); err != nil {
			return nil, fmt.Errorf("failed to decode category scores: %w", err)
		}
		record.ScoredAt = scoredAt.Time
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property scores: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}
