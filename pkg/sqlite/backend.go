// Package sqlite exposes the SQLite addressbook store while keeping the
// implementation internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/addressbook/internal/sqlite"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// NewStore creates a SQLite store. A nil logger discards log output.
// The store is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewStore(nil)
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".addressbook-db",
//	})
//	defer store.Detach()
//	book, err := store.Load()
func NewStore(log *slog.Logger) types.Store {
	return sqlite.NewBackend(sqlite.WithLogger(log))
}
