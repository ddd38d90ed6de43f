package types

import "errors"

// Store persists a Directory. Callers attach to a backend, load the
// directory, mutate it in memory, save it back, and detach when done.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Load and Save return ErrStoreDetached.
	Detach() error

	// Load returns the persisted directory. Records come back in the order
	// they were saved.
	Load() (*Directory, error)

	// Save replaces the persisted contents with d.
	Save(d *Directory) error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
