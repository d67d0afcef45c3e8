// Package errors provides the typed error taxonomy shared by all QuranHub
// components. Component functions return these values; the HTTP layer is
// the only place they are translated into response envelopes.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error kinds callers branch on.
var (
	// ErrEditionNotFound indicates an edition identifier did not resolve.
	ErrEditionNotFound = errors.New("edition not found")
	// ErrAyahNotFound indicates a verse coordinate is absent under the
	// text-lookup edition.
	ErrAyahNotFound = errors.New("ayah not found")
	// ErrInvalidCoordinate indicates an out-of-range structural index or a
	// malformed surah:ayah reference.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidNarrationEdition indicates an edition was passed where
	// narration semantics are required but its type is not "narration".
	ErrInvalidNarrationEdition = errors.New("edition is not a narration")
	// ErrNotFound indicates a non-verse resource (word, font, layout) was
	// not found.
	ErrNotFound = errors.New("not found")
	// ErrInternal indicates a storage failure or unexpected condition.
	ErrInternal = errors.New("internal error")
)

// EditionNotFoundError carries the identifier that failed to resolve.
type EditionNotFoundError struct {
	Identifier string
}

func (e *EditionNotFoundError) Error() string {
	return fmt.Sprintf("edition not found: %s", e.Identifier)
}

func (e *EditionNotFoundError) Unwrap() error { return ErrEditionNotFound }

// AyahNotFoundError carries the coordinate that had no match.
type AyahNotFoundError struct {
	Edition string
	Surah   int
	Ayah    int // ayah-in-surah when Surah > 0, else global number
}

func (e *AyahNotFoundError) Error() string {
	if e.Surah > 0 {
		return fmt.Sprintf("ayah %d:%d not found in edition %s", e.Surah, e.Ayah, e.Edition)
	}
	return fmt.Sprintf("ayah %d not found in edition %s", e.Ayah, e.Edition)
}

func (e *AyahNotFoundError) Unwrap() error { return ErrAyahNotFound }

// CoordinateError describes a malformed or out-of-range coordinate.
type CoordinateError struct {
	Field   string // e.g. "page", "juz", "reference"
	Value   string
	Message string
}

func (e *CoordinateError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid coordinate %q: %s", e.Value, e.Message)
}

func (e *CoordinateError) Unwrap() error { return ErrInvalidCoordinate }

// NarrationEditionError reports an edition used where a narration is required.
type NarrationEditionError struct {
	Identifier string
	Type       string
}

func (e *NarrationEditionError) Error() string {
	return fmt.Sprintf("edition %s has type %q, narration required", e.Identifier, e.Type)
}

func (e *NarrationEditionError) Unwrap() error { return ErrInvalidNarrationEdition }

// NotFoundError reports a missing non-verse resource.
type NotFoundError struct {
	Resource string // e.g. "word", "font", "mushaf layout"
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InternalError wraps a storage or other unexpected failure. The wrapped
// error is for logs only and never reaches a response body.
type InternalError struct {
	Op  string // operation being performed, e.g. "store.AyahByNumber"
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return ErrInternal }

// Internal wraps err as an InternalError, passing typed taxonomy errors
// through unchanged so not-found conditions keep their kind.
func Internal(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsKind(err) {
		return err
	}
	return &InternalError{Op: op, Err: err}
}

// IsKind reports whether err already belongs to the taxonomy.
func IsKind(err error) bool {
	return errors.Is(err, ErrEditionNotFound) ||
		errors.Is(err, ErrAyahNotFound) ||
		errors.Is(err, ErrInvalidCoordinate) ||
		errors.Is(err, ErrInvalidNarrationEdition) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInternal)
}

// Is, As and New re-export the standard library helpers so callers need a
// single errors import.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }

func New(text string) error { return errors.New(text) }
