package types

import "strings"

// Record is a single contact: a validated name and an ordered list of unique
// phone numbers. Phones keep their insertion order for rendering.
type Record struct {
	name   Name
	phones []Phone
}

// NewRecord creates a Record with no phones.
// Returns ErrEmptyName if name is empty.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n, phones: []Phone{}}, nil
}

// Name returns the record's name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the record's phones in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// AddPhone validates text and appends it to the record.
// Adding a phone the record already holds is a no-op.
func (r *Record) AddPhone(text string) error {
	p, err := NewPhone(text)
	if err != nil {
		return err
	}
	if _, ok := r.FindPhone(text); ok {
		return nil
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes every phone equal to text. Removing a phone the record
// does not hold is a no-op; unlike Directory.Delete it never fails.
func (r *Record) RemovePhone(text string) {
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p.value != text {
			kept = append(kept, p)
		}
	}
	r.phones = kept
}

// EditPhone replaces oldText with newText in place, keeping its position.
// newText is validated before the lookup, so a malformed replacement fails
// with ErrValidation even when oldText is absent. Returns ErrPhoneNotFound if
// no phone equals oldText. Every match is updated, but the result never holds
// duplicates: if newText is already present, or oldText occurred more than
// once, the equal phones collapse to one at the earliest position.
func (r *Record) EditPhone(oldText, newText string) error {
	p, err := NewPhone(newText)
	if err != nil {
		return err
	}
	found := false
	for i := range r.phones {
		if r.phones[i].value == oldText {
			r.phones[i] = p
			found = true
		}
	}
	if !found {
		return ErrPhoneNotFound
	}
	r.dedupe()
	return nil
}

// dedupe drops repeated phones, keeping the first occurrence of each. An edit
// can rename a phone onto a value the record already holds.
func (r *Record) dedupe() {
	seen := make(map[Phone]bool, len(r.phones))
	kept := r.phones[:0]
	for _, p := range r.phones {
		if !seen[p] {
			seen[p] = true
			kept = append(kept, p)
		}
	}
	r.phones = kept
}

// FindPhone returns the first phone equal to text.
func (r *Record) FindPhone(text string) (Phone, bool) {
	for _, p := range r.phones {
		if p.value == text {
			return p, true
		}
	}
	return Phone{}, false
}

// String renders the record as "Contact name: {name}, phones: {p1; p2}",
// with "[]" in place of the list when the record has no phones.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString("Contact name: ")
	b.WriteString(r.name.value)
	b.WriteString(", phones: ")
	if len(r.phones) == 0 {
		b.WriteString("[]")
		return b.String()
	}
	for i, p := range r.phones {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(p.value)
	}
	return b.String()
}
