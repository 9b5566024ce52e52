package iostore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// Table names for property records.
const (
	propertiesTable = "nestscore_properties"
	settingsTable   = "nestscore_settings"
)

// RecordStoreImpl keeps properties and settings in a SQL database.
type RecordStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RecordStore = &RecordStoreImpl{} // Compile-time check

// NewRecordStore initializes a record store for the backend. The memory
// backend returns an in-process store.
func NewRecordStore(backend schema.DatabaseBackend, connStr string) (contract.RecordStore, error) {
	if backend == schema.MemoryBackend {
		return NewMemoryStore(), nil
	}
	if _, ok := schema.ValidRecordBackends[backend]; !ok {
		return nil, fmt.Errorf("unsupported record backend: %s. Must be sqlite, mysql, postgresql, or memory", backend)
	}

	db, err := openDatabase(backend, connStr, GetRecordDBFilePath())
	if err != nil {
		return nil, err
	}

	for _, table := range []struct {
		name  string
		query string
	}{
		{propertiesTable, getCreatePropertiesQuery(backend)},
		{settingsTable, getCreateSettingsQuery(backend)},
	} {
		if _, err := db.Exec(table.query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return &RecordStoreImpl{db: db, backend: backend}, nil
}

// getCreatePropertiesQuery returns the CREATE TABLE query for nestscore_properties.
func getCreatePropertiesQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(propertiesTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				address TEXT NOT NULL,
				postcode VARCHAR(16) NOT NULL,
				price BIGINT NOT NULL,
				agent VARCHAR(255) NOT NULL DEFAULT '',
				viewing_date VARCHAR(32) NOT NULL DEFAULT '',
				listing_url TEXT NOT NULL,
				answers TEXT NOT NULL,
				notes TEXT NOT NULL,
				latitude DOUBLE,
				longitude DOUBLE,
				created_at DATETIME(6) NOT NULL,
				updated_at DATETIME(6) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				address TEXT NOT NULL,
				postcode TEXT NOT NULL,
				price BIGINT NOT NULL,
				agent TEXT NOT NULL DEFAULT '',
				viewing_date TEXT NOT NULL DEFAULT '',
				listing_url TEXT NOT NULL DEFAULT '',
				answers TEXT NOT NULL,
				notes TEXT NOT NULL DEFAULT '',
				latitude DOUBLE PRECISION,
				longitude DOUBLE PRECISION,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				address TEXT NOT NULL,
				postcode TEXT NOT NULL,
				price INTEGER NOT NULL,
				agent TEXT NOT NULL DEFAULT '',
				viewing_date TEXT NOT NULL DEFAULT '',
				listing_url TEXT NOT NULL DEFAULT '',
				answers TEXT NOT NULL,
				notes TEXT NOT NULL DEFAULT '',
				latitude REAL,
				longitude REAL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// getCreateSettingsQuery returns the CREATE TABLE query for nestscore_settings.
func getCreateSettingsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(settingsTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id VARCHAR(64) PRIMARY KEY,
				weights TEXT NOT NULL,
				work_postcode VARCHAR(16) NOT NULL DEFAULT '',
				work_latitude DOUBLE,
				work_longitude DOUBLE,
				theme VARCHAR(16) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				weights TEXT NOT NULL,
				work_postcode TEXT NOT NULL DEFAULT '',
				work_latitude DOUBLE PRECISION,
				work_longitude DOUBLE PRECISION,
				theme TEXT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				weights TEXT NOT NULL,
				work_postcode TEXT NOT NULL DEFAULT '',
				work_latitude REAL,
				work_longitude REAL,
				theme TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

const propertyColumns = `id, name, address, postcode, price, agent, viewing_date, listing_url,
	answers, notes, latitude, longitude, created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProperty reads one row selected with propertyColumns.
func scanProperty(row rowScanner) (schema.Property, error) {
	var (
		p                  schema.Property
		answersJSON        string
		lat, lng           sql.NullFloat64
		createdAt, updated timeColumn
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Address, &p.Postcode, &p.Price, &p.Agent, &p.ViewingDate,
		&p.ListingURL, &answersJSON, &p.Notes, &lat, &lng, &createdAt, &updated); err != nil {
		return schema.Property{}, err
	}
	if err := json.Unmarshal([]byte(answersJSON), &p.Answers); err != nil {
		return schema.Property{}, fmt.Errorf("failed to decode answers for property %d: %w", p.ID, err)
	}
	if p.Answers == nil {
		p.Answers = schema.Answers{}
	}
	if lat.Valid && lng.Valid {
		p.Coordinates = &schema.Coordinates{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updated.Time
	return p, nil
}

// coordinateArgs splits optional coordinates into nullable column values.
func coordinateArgs(c *schema.Coordinates) (any, any) {
	if c == nil {
		return nil, nil
	}
	return c.Latitude, c.Longitude
}

// marshalAnswers stores a nil map as an empty object.
func marshalAnswers(answers schema.Answers) (string, error) {
	if answers == nil {
		answers = schema.Answers{}
	}
	data, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("failed to encode answers: %w", err)
	}
	return string(data), nil
}

// CreateProperty inserts a property and returns its new id.
func (rs *RecordStoreImpl) CreateProperty(p schema.Property) (int64, error) {
	answersJSON, err := marshalAnswers(p.Answers)
	if err != nil {
		return 0, err
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	lat, lng := coordinateArgs(p.Coordinates)
	args := []any{
		p.Name, p.Address, p.Postcode, p.Price, p.Agent, p.ViewingDate, p.ListingURL,
		answersJSON, p.Notes, lat, lng, formatTime(p.CreatedAt, rs.backend), formatTime(p.UpdatedAt, rs.backend),
	}

	query := fmt.Sprintf(`INSERT INTO %s (name, address, postcode, price, agent, viewing_date, listing_url,
		answers, notes, latitude, longitude, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, quoteTableName(propertiesTable, rs.backend))

	var id int64
	if rs.backend == schema.PostgreSQLBackend {
		err = rs.db.QueryRow(rebind(rs.backend, query)+" RETURNING id", args...).Scan(&id)
	} else {
		var result sql.Result
		result, err = rs.db.Exec(query, args...)
		if err == nil {
			id, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert property: %w", err)
	}
	return id, nil
}

// GetProperty returns ErrPropertyNotFound for unknown ids.
func (rs *RecordStoreImpl) GetProperty(id int64) (schema.Property, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", propertyColumns, quoteTableName(propertiesTable, rs.backend))
	p, err := scanProperty(rs.db.QueryRow(rebind(rs.backend, query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return schema.Property{}, fmt.Errorf("property %d: %w", id, contract.ErrPropertyNotFound)
	}
	if err != nil {
		return schema.Property{}, fmt.Errorf("failed to get property %d: %w", id, err)
	}
	return p, nil
}

// UpdateProperty replaces every editable column and bumps updated_at.
func (rs *RecordStoreImpl) UpdateProperty(p schema.Property) error {
	answersJSON, err := marshalAnswers(p.Answers)
	if err != nil {
		return err
	}
	lat, lng := coordinateArgs(p.Coordinates)
	query := fmt.Sprintf(`UPDATE %s SET name = ?, address = ?, postcode = ?, price = ?, agent = ?,
		viewing_date = ?, listing_url = ?, answers = ?, notes = ?, latitude = ?, longitude = ?, updated_at = ?
		WHERE id = ?`, quoteTableName(propertiesTable, rs.backend))

	result, err := rs.db.Exec(rebind(rs.backend, query),
		p.Name, p.Address, p.Postcode, p.Price, p.Agent, p.ViewingDate, p.ListingURL,
		answersJSON, p.Notes, lat, lng, formatTime(time.Now(), rs.backend), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update property %d: %w", p.ID, err)
	}
	return requireAffected(result, p.ID)
}

// DeleteProperty removes a property by id.
func (rs *RecordStoreImpl) DeleteProperty(id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", quoteTableName(propertiesTable, rs.backend))
	result, err := rs.db.Exec(rebind(rs.backend, query), id)
	if err != nil {
		return fmt.Errorf("failed to delete property %d: %w", id, err)
	}
	return requireAffected(result, id)
}

// requireAffected maps a zero-row write to ErrPropertyNotFound.
func requireAffected(result sql.Result, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("property %d: %w", id, contract.ErrPropertyNotFound)
	}
	return nil
}

// ListProperties returns all properties, newest first.
func (rs *RecordStoreImpl) ListProperties() ([]schema.Property, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at DESC, id DESC", propertyColumns, quoteTableName(propertiesTable, rs.backend))
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating properties: %w", err)
	}
	return results, nil
}

// GetSettings returns the stored settings and whether a record exists.
func (rs *RecordStoreImpl) GetSettings() (schema.Settings, bool, error) {
	query := fmt.Sprintf("SELECT id, weights, work_postcode, work_latitude, work_longitude, theme FROM %s WHERE id = ?",
		quoteTableName(settingsTable, rs.backend))

	var (
		s           schema.Settings
		weightsJSON string
		lat, lng    sql.NullFloat64
		theme       string
	)
	err := rs.db.QueryRow(rebind(rs.backend, query), schema.SettingsID).Scan(&s.ID, &weightsJSON, &s.WorkPostcode, &lat, &lng, &theme)
	if errors.Is(err, sql.ErrNoRows) {
		return schema.Settings{}, false, nil
	}
	if err != nil {
		return schema.Settings{}, false, fmt.Errorf("failed to get settings: %w", err)
	}
	if err := json.Unmarshal([]byte(weightsJSON), &s.Weights); err != nil {
		return schema.Settings{}, false, fmt.Errorf("failed to decode weights: %w", err)
	}
	if lat.Valid && lng.Valid {
		s.WorkCoordinates = &schema.Coordinates{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	s.Theme = schema.Theme(theme)
	return s, true, nil
}

// SaveSettings upserts the settings record.
func (rs *RecordStoreImpl) SaveSettings(s schema.Settings) error {
	weights := s.Weights
	if weights == nil {
		weights = schema.Weights{}
	}
	weightsJSON, err := json.Marshal(weights)
	if err != nil {
		return fmt.Errorf("failed to encode weights: %w", err)
	}
	theme := s.Theme
	if theme == "" {
		theme = schema.SystemTheme
	}
	lat, lng := coordinateArgs(s.WorkCoordinates)

	quotedTableName := quoteTableName(settingsTable, rs.backend)
	var query string
	switch rs.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (id, weights, work_postcode, work_latitude, work_longitude, theme) VALUES (?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE weights = new.weights, work_postcode = new.work_postcode,
			work_latitude = new.work_latitude, work_longitude = new.work_longitude, theme = new.theme`, quotedTableName)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (id, weights, work_postcode, work_latitude, work_longitude, theme) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET weights = EXCLUDED.weights, work_postcode = EXCLUDED.work_postcode,
			work_latitude = EXCLUDED.work_latitude, work_longitude = EXCLUDED.work_longitude, theme = EXCLUDED.theme`, quotedTableName)
	default: // SQLite
		query = fmt.Sprintf(`INSERT OR REPLACE INTO %s (id, weights, work_postcode, work_latitude, work_longitude, theme) VALUES (?, ?, ?, ?, ?, ?)`, quotedTableName)
	}

	if _, err := rs.db.Exec(query, schema.SettingsID, string(weightsJSON), s.WorkPostcode, lat, lng, string(theme)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetStatus returns status information about the record store.
func (rs *RecordStoreImpl) GetStatus() (schema.RecordStatus, error) {
	status := schema.RecordStatus{
		Backend:   string(rs.backend),
		Connected: rs.db != nil,
	}

	quotedTableName := quoteTableName(propertiesTable, rs.backend)
	row := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName))
	if err := row.Scan(&status.TotalProperties); err != nil {
		return status, fmt.Errorf("failed to get total properties: %w", err)
	}

	if status.TotalProperties > 0 {
		var newest, oldest timeColumn
		row = rs.db.QueryRow(fmt.Sprintf("SELECT MAX(created_at), MIN(created_at) FROM %s", quotedTableName))
		if err := row.Scan(&newest, &oldest); err != nil {
			return status, fmt.Errorf("failed to get created_at range: %w", err)
		}
		status.NewestCreatedAt = newest.Time
		status.OldestCreatedAt = oldest.Time
	}

	row = rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(settingsTable, rs.backend)))
	var settingsRows int
	if err := row.Scan(&settingsRows); err != nil {
		return status, fmt.Errorf("failed to get settings count: %w", err)
	}
	status.SettingsModified = settingsRows > 0

	return status, nil
}

// Close closes the underlying DB connection.
func (rs *RecordStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}
