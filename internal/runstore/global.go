package runstore

import (
	"fmt"

	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// manager is the process-wide run store manager.
var manager = &RunStoreManager{}

// GetManager returns the process-wide run store manager.
func GetManager() contract.RunManager {
	return manager
}

// InitStores initializes the run store with the given backend. Must be called
// before any alignment command runs.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	store, err := NewRunStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize run store: %w", err)
	}
	manager.setRunStore(store)
	return nil
}

// CloseStores closes the run store if one was initialized.
func CloseStores() {
	if store := manager.GetRunStore(); store != nil {
		_ = store.Close()
	}
}
