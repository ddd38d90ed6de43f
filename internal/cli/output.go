package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/addressbook/internal/sqlite"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// contactJSON is the --json representation of a record.
type contactJSON struct {
	ContactID string   `json:"contact_id,omitempty"`
	Name      string   `json:"name"`
	Phones    []string `json:"phones"`
}

func toContactJSON(b *sqlite.Backend, rec *types.Record) contactJSON {
	c := contactJSON{Name: rec.Name().Value(), Phones: []string{}}
	c.ContactID, _ = b.ContactID(c.Name)
	for _, p := range rec.Phones() {
		c.Phones = append(c.Phones, p.Value())
	}
	return c
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
