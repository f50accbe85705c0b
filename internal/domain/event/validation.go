package event

import "strings"

// ValidateID rejects blank identifiers.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return nil
}

// ValidateTitle rejects blank titles. The store accepts them; forms do not.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrInvalidInput
	}
	return nil
}
