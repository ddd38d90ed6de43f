package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// loadJSONL reads contacts.jsonl from dataDir and inserts every valid contact
// into the database in one transaction. Lines that are malformed JSON, carry
// an invalid name or phone, or repeat an earlier name are skipped with a
// warning; the first contact under a name wins, matching
// Directory.AddRecord. Unknown fields are ignored.
func loadJSONL(db *sql.DB, dataDir string, log *slog.Logger) (loaded int, err error) {
	records, err := readJSONL(filepath.Join(dataDir, contactsJSONL))
	if err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	seen := make(map[string]bool, len(records))
	usedIDs := make(map[string]bool, len(records))
	for lineNo, raw := range records {
		var line contactLine
		if err := json.Unmarshal(raw, &line); err != nil {
			log.Warn("skipping malformed contact", "line", lineNo+1, "err", err)
			continue
		}
		rec, err := recordFromLine(line)
		if err != nil {
			log.Warn("skipping invalid contact", "line", lineNo+1, "name", line.Name, "err", err)
			continue
		}
		name := rec.Name().Value()
		if seen[name] {
			log.Warn("skipping duplicate contact", "line", lineNo+1, "name", name)
			continue
		}
		seen[name] = true

		id := line.ContactID
		if id == "" || usedIDs[id] {
			id = generateUUID()
		}
		usedIDs[id] = true
		if err := insertRecord(tx, id, loaded, rec); err != nil {
			return 0, fmt.Errorf("loading contact %q: %w", name, err)
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}

// recordFromLine validates a JSONL line by building a Record from it.
// Repeated phones collapse to one, as they do through Record.AddPhone.
func recordFromLine(line contactLine) (*types.Record, error) {
	rec, err := types.NewRecord(line.Name)
	if err != nil {
		return nil, err
	}
	for _, p := range line.Phones {
		if err := rec.AddPhone(p); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// insertRecord writes one contact row and its phone rows.
func insertRecord(tx *sql.Tx, id string, position int, rec *types.Record) error {
	if _, err := tx.Exec(
		"INSERT INTO contacts (contact_id, name, position) VALUES (?, ?, ?)",
		id, rec.Name().Value(), position,
	); err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}
	for i, p := range rec.Phones() {
		if _, err := tx.Exec(
			"INSERT INTO phones (contact_id, position, number) VALUES (?, ?, ?)",
			id, i, p.Value(),
		); err != nil {
			return fmt.Errorf("inserting phone %s: %w", p, err)
		}
	}
	return nil
}
