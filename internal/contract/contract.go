// Package contract provides interfaces and shared utilities for nestscore's internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/nestscore/schema"
)

// ErrPropertyNotFound is returned when a property id does not exist.
var ErrPropertyNotFound = errors.New("property not found")

// ErrPostcodeNotFound is returned when a postcode cannot be resolved.
var ErrPostcodeNotFound = errors.New("postcode not found")

// StoreManager defines the interface for managing the record and history stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetRecordStore() RecordStore
	GetHistoryStore() HistoryStore
}

// RecordStore keeps properties and the user settings record.
type RecordStore interface {
	// CreateProperty inserts a property and returns its new id. CreatedAt and
	// UpdatedAt are set by the store when zero.
	CreateProperty(p schema.Property) (int64, error)

	// GetProperty returns ErrPropertyNotFound for unknown ids.
	GetProperty(id int64) (schema.Property, error)

	// UpdateProperty replaces a property and bumps UpdatedAt.
	UpdateProperty(p schema.Property) error

	// DeleteProperty removes a property by id.
	DeleteProperty(id int64) error

	// ListProperties returns all properties, newest first.
	ListProperties() ([]schema.Property, error)

	// GetSettings returns the stored settings and whether a record exists.
	GetSettings() (schema.Settings, bool, error)

	// SaveSettings upserts the settings record.
	SaveSettings(s schema.Settings) error

	// GetStatus returns status information about the record store.
	GetStatus() (schema.RecordStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// HistoryStore tracks scoring runs and the scores produced in each run.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalProperties int) error

	// RecordPropertyScore stores one scored property for a run
	RecordPropertyScore(record schema.PropertyScoreRecord) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every run, oldest first
	GetAllRuns() ([]schema.ScoreRunRecord, error)

	// GetAllPropertyScores returns every recorded property score
	GetAllPropertyScores() ([]schema.PropertyScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}

// Geocoder resolves postcodes to coordinates.
type Geocoder interface {
	// Lookup returns ErrPostcodeNotFound when the postcode is unknown.
	Lookup(ctx context.Context, postcode string) (schema.Coordinates, error)

	// Validate reports whether the postcode exists.
	Validate(ctx context.Context, postcode string) (bool, error)

	// Autocomplete suggests postcodes for a partial input.
	Autocomplete(ctx context.Context, partial string) ([]string, error)
}
