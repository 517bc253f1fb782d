package parse

import (
	"errors"
	"fmt"
)

// Error classes. Match with errors.Is.
var (
	ErrIO           = errors.New("document unreadable")
	ErrSyntax       = errors.New("malformed JSON")
	ErrFieldMissing = errors.New("field missing")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrMissingData  = errors.New("missing data")
)

// FieldError locates a failure inside one document.
type FieldError struct {
	Doc   string // document path
	Field string // dotted field path, e.g. info.xtlist[1].answer
	Err   error  // one of the error classes
	Want  string // expected JSON kind, set for type mismatches
}

func (e *FieldError) Error() string {
	if e.Want != "" {
		return fmt.Sprintf("%s: %s: %v (want %s)", e.Doc, e.Field, e.Err, e.Want)
	}
	return fmt.Sprintf("%s: %s: %v", e.Doc, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
