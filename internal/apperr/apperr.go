// Package apperr defines the error categories the assessment services report.
// Services wrap these sentinels with fmt.Errorf("...: %w", ...) so controllers
// can map any failure onto a response code with errors.Is.
package apperr

import "errors"

var (
	// ErrInvalidInput marks requests missing required identifiers. Never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks lookups with no matching session, candidate or MCQ set.
	ErrNotFound = errors.New("not found")

	// ErrExpired marks a session whose clock ran out. The stored row is untouched.
	ErrExpired = errors.New("session expired")

	// ErrConflict marks an operation attempted from an incompatible session state.
	ErrConflict = errors.New("conflict")

	// ErrUpstream marks a failure of an external collaborator (question
	// generator, speech synthesizer, journey propagation).
	ErrUpstream = errors.New("upstream failure")

	// ErrPersistence marks a store write that failed or a transaction that
	// aborted. No partial state remains committed.
	ErrPersistence = errors.New("persistence failure")
)
