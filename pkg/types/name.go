package types

// Name is the validated name of a contact. The zero value is not valid;
// construct with NewName.
type Name struct {
	value string
}

// NewName validates text and returns it as a Name.
// Returns ErrEmptyName if text is empty.
func NewName(text string) (Name, error) {
	if text == "" {
		return Name{}, ErrEmptyName
	}
	return Name{value: text}, nil
}

// Value returns the underlying text.
func (n Name) Value() string { return n.value }

func (n Name) String() string { return n.value }
