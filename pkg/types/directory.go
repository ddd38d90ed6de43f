package types

import (
	"sort"
	"strings"
)

// Directory maps contact names to their Records. Names are unique: the first
// Record added under a name wins and later adds are ignored. Records are kept
// in insertion order for rendering and iteration.
//
// A Directory is not safe for concurrent use.
type Directory struct {
	entries    map[string]*Record
	order      []string
	annotation any
}

// NewDirectory creates a Directory seeded from entries, which may be nil.
// Records are taken by reference in sorted key order and stored under their
// own names, so a key that disagrees with its record's name does not survive.
// Nil records are skipped. annotation is carried as-is and never inspected.
func NewDirectory(entries map[string]*Record, annotation any) *Directory {
	d := &Directory{
		entries:    make(map[string]*Record, len(entries)),
		annotation: annotation,
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if rec := entries[k]; rec != nil {
			d.AddRecord(rec)
		}
	}
	return d
}

// Annotation returns the opaque value passed to NewDirectory.
func (d *Directory) Annotation() any { return d.annotation }

// AddRecord inserts rec under its name. If a record with that name already
// exists the call is a no-op; the existing record is neither replaced nor
// merged. A nil rec is ignored.
func (d *Directory) AddRecord(rec *Record) {
	if rec == nil {
		return
	}
	key := rec.name.value
	if _, ok := d.entries[key]; ok {
		return
	}
	d.entries[key] = rec
	d.order = append(d.order, key)
}

// Find returns the record stored under exactly name. No case folding or
// normalization is applied.
func (d *Directory) Find(name string) (*Record, bool) {
	rec, ok := d.entries[name]
	return rec, ok
}

// Delete removes the record stored under name.
// Returns ErrRecordNotFound if there is none.
func (d *Directory) Delete(name string) error {
	if _, ok := d.entries[name]; !ok {
		return ErrRecordNotFound
	}
	delete(d.entries, name)
	for i, k := range d.order {
		if k == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of records.
func (d *Directory) Len() int { return len(d.entries) }

// Records returns the records in insertion order.
func (d *Directory) Records() []*Record {
	out := make([]*Record, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, d.entries[k])
	}
	return out
}

// String renders one block per record:
//
//	Contact [John] has phones:
//	 => 1234567890
//
// or "Contact [John] has no phones." for a record without phones.
func (d *Directory) String() string {
	var b strings.Builder
	for _, rec := range d.Records() {
		b.WriteString("Contact [")
		b.WriteString(rec.name.value)
		b.WriteString("] has ")
		if len(rec.phones) == 0 {
			b.WriteString("no phones.\n")
			continue
		}
		b.WriteString("phones:\n")
		for _, p := range rec.phones {
			b.WriteString(" => ")
			b.WriteString(p.value)
			b.WriteString("\n")
		}
	}
	return b.String()
}
