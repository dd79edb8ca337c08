package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSubmissionInFlight is returned when a submit is triggered while a
// delivery for the same session is still outstanding.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// ErrUnknownField is returned when a field ID is not part of the schema.
var ErrUnknownField = errors.New("unknown field")

// ErrUnknownOption is returned when an option value is not part of a choice field.
var ErrUnknownOption = errors.New("unknown option")

// ErrInvalidTransition is returned for a notice transition the state machine forbids.
var ErrInvalidTransition = errors.New("invalid notice transition")
