package iostore

import (
	"time"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetRecordStore implements the StoreManager interface.
func (m *MockStoreManager) GetRecordStore() contract.RecordStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RecordStore)
	return store
}

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockRecordStore is a mock implementation of RecordStore for testing.
type MockRecordStore struct {
	mock.Mock
}

var _ contract.RecordStore = &MockRecordStore{} // Compile-time check

// CreateProperty implements the RecordStore interface.
func (m *MockRecordStore) CreateProperty(p schema.Property) (int64, error) {
	args := m.Called(p)
	return args.Get(0).(int64), args.Error(1)
}

// GetProperty implements the RecordStore interface.
func (m *MockRecordStore) GetProperty(id int64) (schema.Property, error) {
	args := m.Called(id)
	return args.Get(0).(schema.Property), args.Error(1)
}

// UpdateProperty implements the RecordStore interface.
func (m *MockRecordStore) UpdateProperty(p schema.Property) error {
	args := m.Called(p)
	return args.Error(0)
}

// DeleteProperty implements the RecordStore interface.
func (m *MockRecordStore) DeleteProperty(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

// ListProperties implements the RecordStore interface.
func (m *MockRecordStore) ListProperties() ([]schema.Property, error) {
	args := m.Called()
	props, _ := args.Get(0).([]schema.Property)
	return props, args.Error(1)
}

// GetSettings implements the RecordStore interface.
func (m *MockRecordStore) GetSettings() (schema.Settings, bool, error) {
	args := m.Called()
	return args.Get(0).(schema.Settings), args.Bool(1), args.Error(2)
}

// SaveSettings implements the RecordStore interface.
func (m *MockRecordStore) SaveSettings(s schema.Settings) error {
	args := m.Called(s)
	return args.Error(0)
}

// GetStatus implements the RecordStore interface.
func (m *MockRecordStore) GetStatus() (schema.RecordStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RecordStatus), args.Error(1)
}

// Close implements the RecordStore interface.
func (m *MockRecordStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, totalProperties int) error {
	args := m.Called(runID, endTime, totalProperties)
	return args.Error(0)
}

// RecordPropertyScore implements the HistoryStore interface.
func (m *MockHistoryStore) RecordPropertyScore(record schema.PropertyScoreRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.ScoreRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.ScoreRunRecord)
	return runs, args.Error(1)
}

// GetAllPropertyScores implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllPropertyScores() ([]schema.PropertyScoreRecord, error) {
	args := m.Called()
	scores, _ := args.Get(0).([]schema.PropertyScoreRecord)
	return scores, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
