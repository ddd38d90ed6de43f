// Package sqlite implements the SQLite storage backend for the addressbook.
// contacts.jsonl in the data directory is the source of truth; SQLite is the
// query engine, rebuilt from the JSONL file on every Attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/addressbook/internal/logging"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// dbFileName is the SQLite file inside the data directory.
const dbFileName = "contacts.db"

// Backend implements types.Store using SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	log      *slog.Logger

	// ids maps contact names to their persisted contact_id so that IDs stay
	// stable across Load/Save cycles.
	ids map[string]string
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(b *Backend) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		log: logging.Discard(),
		ids: make(map[string]string),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ types.Store = (*Backend)(nil)

// Attach initializes the backend with the given configuration.
// Creates DataDir and an empty contacts.jsonl if needed, builds a fresh
// SQLite schema, and loads the JSONL contents into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := ensureJSONL(dataDir); err != nil {
		return err
	}

	// The database is a cache of the JSONL file; start from scratch.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps PRAGMA foreign_keys in effect for every query.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("create schema: %w", err)
		}
	}

	n, err := loadJSONL(db, dataDir, b.log)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	config.DataDir = dataDir
	b.db = db
	b.config = config
	b.ids = make(map[string]string)
	b.attached = true

	b.log.Debug("store attached", "data_dir", dataDir, "contacts", n)
	return nil
}

// Detach releases all resources held by the backend. After Detach, Load and
// Save return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	b.log.Debug("store detached", "data_dir", b.config.DataDir)
	return nil
}

// Load reads every contact from the database and returns them as a
// Directory in their saved order.
func (b *Backend) Load() (*types.Directory, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query("SELECT contact_id, name FROM contacts ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	type contact struct {
		id  string
		rec *types.Record
	}
	var contacts []contact
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		rec, err := types.NewRecord(name)
		if err != nil {
			return nil, fmt.Errorf("contact %s: %w", id, err)
		}
		contacts = append(contacts, contact{id: id, rec: rec})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	rows.Close()

	dir := types.NewDirectory(nil, nil)
	b.ids = make(map[string]string, len(contacts))
	for _, c := range contacts {
		if err := b.loadPhones(c.id, c.rec); err != nil {
			return nil, err
		}
		dir.AddRecord(c.rec)
		b.ids[c.rec.Name().Value()] = c.id
	}
	return dir, nil
}

// loadPhones appends the stored phones of contact id to rec in order.
func (b *Backend) loadPhones(id string, rec *types.Record) error {
	rows, err := b.db.Query("SELECT number FROM phones WHERE contact_id = ? ORDER BY position", id)
	if err != nil {
		return fmt.Errorf("query phones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return fmt.Errorf("scan phone: %w", err)
		}
		if err := rec.AddPhone(number); err != nil {
			return fmt.Errorf("contact %s: %w", id, err)
		}
	}
	return rows.Err()
}

// Save replaces the stored contacts with the contents of d and rewrites
// contacts.jsonl. Contacts keep the contact_id they were loaded with; new
// names get a fresh UUID v7.
func (b *Backend) Save(d *types.Directory) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	records := d.Records()
	ids := make(map[string]string, len(records))
	lines := make([]contactLine, 0, len(records))
	for _, rec := range records {
		name := rec.Name().Value()
		id, ok := b.ids[name]
		if !ok {
			id = generateUUID()
		}
		ids[name] = id

		phones := make([]string, 0, len(rec.Phones()))
		for _, p := range rec.Phones() {
			phones = append(phones, p.Value())
		}
		lines = append(lines, contactLine{ContactID: id, Name: name, Phones: phones})
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM phones"); err != nil {
		return fmt.Errorf("clear phones: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM contacts"); err != nil {
		return fmt.Errorf("clear contacts: %w", err)
	}
	for i, rec := range records {
		if err := insertRecord(tx, ids[rec.Name().Value()], i, rec); err != nil {
			return err
		}
	}

	encoded, err := encodeContacts(lines)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	// The database is a cache rebuilt from the JSONL file on Attach, so a
	// failed write here leaves the file authoritative.
	if err := writeJSONL(filepath.Join(b.config.DataDir, contactsJSONL), encoded); err != nil {
		return fmt.Errorf("persist %s: %w", contactsJSONL, err)
	}

	b.ids = ids
	b.log.Debug("directory saved", "contacts", len(records))
	return nil
}

// LookupPhone returns the names of every contact holding number, in
// directory order. number must be a valid phone.
func (b *Backend) LookupPhone(number string) ([]string, error) {
	if _, err := types.NewPhone(number); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query(`SELECT c.name FROM phones p
JOIN contacts c ON c.contact_id = p.contact_id
WHERE p.number = ?
ORDER BY c.position`, number)
	if err != nil {
		return nil, fmt.Errorf("query phone: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ContactID returns the persisted ID of the named contact, as of the last
// Load or Save.
func (b *Backend) ContactID(name string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	id, ok := b.ids[name]
	return id, ok
}

// generateUUID generates a new UUID v7 for contact IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
