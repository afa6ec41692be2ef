// Package runstore records alignment runs in a SQL backend.
package runstore

import (
	"sync"

	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
)

// RunStoreManager manages the process-wide RunStore instance.
type RunStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	runs         contract.RunStore
}

var _ contract.RunManager = (*RunStoreManager)(nil) // Compile-time check

// GetRunStore returns the run store.
func (mgr *RunStoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}

// setRunStore swaps in a new run store.
func (mgr *RunStoreManager) setRunStore(store contract.RunStore) {
	mgr.Lock()
	defer mgr.Unlock()
	mgr.runs = store
}
