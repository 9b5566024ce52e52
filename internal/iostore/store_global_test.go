package iostore

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/nestscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobals lets a test run InitStores again.
func resetGlobals(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &StoreManagerImpl{}
	t.Cleanup(func() {
		CloseStores()
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
		Manager = &StoreManagerImpl{}
	})
}

func TestInitStores(t *testing.T) {
	t.Run("sqlite records with history", func(t *testing.T) {
		resetGlobals(t)
		dir := t.TempDir()
		recordPath := filepath.Join(dir, "records.db")
		historyPath := filepath.Join(dir, "history.db")

		require.NoError(t, InitStores(schema.SQLiteBackend, recordPath, schema.SQLiteBackend, historyPath))
		require.NotNil(t, Manager.GetRecordStore())
		require.NotNil(t, Manager.GetHistoryStore())

		_, err := os.Stat(recordPath)
		assert.NoError(t, err)
		_, err = os.Stat(historyPath)
		assert.NoError(t, err)
	})

	t.Run("history disabled", func(t *testing.T) {
		resetGlobals(t)
		require.NoError(t, InitStores(schema.MemoryBackend, "", "", ""))
		assert.NotNil(t, Manager.GetRecordStore())
		assert.Nil(t, Manager.GetHistoryStore())
	})

	t.Run("idempotent", func(t *testing.T) {
		resetGlobals(t)
		require.NoError(t, InitStores(schema.MemoryBackend, "", schema.NoneBackend, ""))
		first := Manager.GetRecordStore()
		require.NoError(t, InitStores(schema.SQLiteBackend, "", schema.NoneBackend, ""))
		assert.Same(t, first, Manager.GetRecordStore())
	})

	t.Run("bad history backend", func(t *testing.T) {
		resetGlobals(t)
		err := InitStores(schema.MemoryBackend, "", schema.MemoryBackend, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize history store")
		assert.Nil(t, Manager.GetRecordStore())
	})
}

func TestClearRecords(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "records.db")
	store, err := NewRecordStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.CreateProperty(schema.Property{Name: "to be cleared"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearRecords(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing a missing file is fine
	assert.NoError(t, ClearRecords(schema.SQLiteBackend, dbPath, ""))
	assert.NoError(t, ClearRecords(schema.MemoryBackend, "", ""))
	assert.Error(t, ClearRecords(schema.SQLiteBackend, "", ""))
	assert.Error(t, ClearRecords(schema.DatabaseBackend("oracle"), "", ""))
}

func TestClearHistory(t *testing.T) {
	assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))

	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintRecordStatus(&buf, schema.RecordStatus{Backend: "memory", Connected: true, TotalProperties: 0})
	assert.Contains(t, buf.String(), "Record Backend: memory")
	assert.Contains(t, buf.String(), "Total Properties: 0")
	assert.NotContains(t, buf.String(), "Newest Property")

	buf.Reset()
	PrintHistoryStatus(&buf, schema.HistoryStatus{Backend: "none"})
	assert.Equal(t, "History Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	PrintHistoryStatus(&buf, schema.HistoryStatus{
		Backend:               "sqlite",
		Connected:             true,
		TotalRuns:             2,
		LastRunID:             2,
		LastRunTime:           time.Now(),
		OldestRunTime:         time.Now(),
		TotalPropertiesScored: 7,
		TableSizes:            map[string]int64{propertyScoresTable: 7, scoreRunsTable: 2},
	})
	out := buf.String()
	assert.Contains(t, out, "Total Properties Scored: 7")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(propertyScoresTable)), bytes.Index(buf.Bytes(), []byte(scoreRunsTable)))
}
