// Package tickets derives a participant's ticket breakdown from the member's
// roles and names, validates registration names, and renders the draw list.
//
// This file centralizes the registration validation errors so that command
// handlers can map them to user-facing replies.
package tickets

import "errors"

// Name validation errors.
var (
	// ErrFirstNameRequired is returned when the first name is blank.
	ErrFirstNameRequired = errors.New("first name is required")

	// ErrLastNameRequired is returned when the last name is blank.
	ErrLastNameRequired = errors.New("last name is required")

	// ErrFirstNameTooShort is returned when the first name has fewer than
	// MinNameRunes characters.
	ErrFirstNameTooShort = errors.New("first name too short")

	// ErrLastNameTooShort is returned when the last name has fewer than
	// MinNameRunes characters.
	ErrLastNameTooShort = errors.New("last name too short")
)
