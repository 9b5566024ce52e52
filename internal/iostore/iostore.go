// Package iostore persists property records and score history.
package iostore

import (
	"sync"

	"github.com/huangsam/nestscore/internal/contract"
)

// StoreManagerImpl holds the record and history stores.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	records      contract.RecordStore
	history      contract.HistoryStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// NewStoreManager wraps already opened stores. Either may be nil.
func NewStoreManager(records contract.RecordStore, history contract.HistoryStore) *StoreManagerImpl {
	return &StoreManagerImpl{records: records, history: history}
}

// GetRecordStore returns the property record store.
func (mgr *StoreManagerImpl) GetRecordStore() contract.RecordStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.records
}

// GetHistoryStore returns the score history store.
func (mgr *StoreManagerImpl) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
