package types

import (
	"unicode"
	"unicode/utf8"
)

// PhoneLength is the exact number of digits in a phone number.
const PhoneLength = 10

// Phone is a validated phone number: exactly PhoneLength characters, each a
// Unicode decimal digit.
// Phones compare equal when their text is equal, so they can be used as map
// keys.
type Phone struct {
	value string
}

// NewPhone validates text and returns it as a Phone.
// Returns ErrEmptyPhone for empty text and ErrPhoneFormat when text is not
// exactly PhoneLength decimal digits. Length counts characters, not bytes.
func NewPhone(text string) (Phone, error) {
	if err := validatePhone(text); err != nil {
		return Phone{}, err
	}
	return Phone{value: text}, nil
}

// validatePhone checks text against the phone format without allocating a
// Phone.
func validatePhone(text string) error {
	if text == "" {
		return ErrEmptyPhone
	}
	if utf8.RuneCountInString(text) != PhoneLength {
		return ErrPhoneFormat
	}
	for _, r := range text {
		if !unicode.IsDigit(r) {
			return ErrPhoneFormat
		}
	}
	return nil
}

// Value returns the underlying digits.
func (p Phone) Value() string { return p.value }

func (p Phone) String() string { return p.value }
