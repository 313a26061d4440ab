package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Load errors. They are fatal when building a Form and are also returned by
// queries naming a field the Form does not know.
var (
	ErrIO                    = errors.New("i/o error")
	ErrDictionaryKeyNotFound = errors.New("dictionary key not found")
	ErrNoSuchReference       = errors.New("no such reference")
	ErrNotAReference         = errors.New("not a reference")
	ErrUnexpectedType        = errors.New("unexpected type")
)

// Value errors returned by the Set* mutations. A rejected mutation leaves
// the field untouched.
var (
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrTooManySelected  = errors.New("too many selected")
)

// LoadError describes a structural problem met while locating fields.
type LoadError struct {
	Err   error              // one of the load sentinels
	Key   string             // dictionary key or field name involved, if any
	Ref   *types.IndirectRef // object involved, if any
	Cause error              // underlying error, if any
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Key != "" {
		fmt.Fprintf(&b, " %q", e.Key)
	}
	if e.Ref != nil {
		fmt.Fprintf(&b, " (object %d %d)", e.Ref.ObjectNumber.Value(), e.Ref.GenerationNumber.Value())
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() []error {
	errs := []error{e.Err}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func keyNotFound(key string) *LoadError {
	return &LoadError{Err: ErrDictionaryKeyNotFound, Key: key}
}

func unexpectedType(key string) *LoadError {
	return &LoadError{Err: ErrUnexpectedType, Key: key}
}

func noSuchReference(ref types.IndirectRef, cause error) *LoadError {
	return &LoadError{Err: ErrNoSuchReference, Ref: &ref, Cause: cause}
}

// FieldError attributes a failed bulk fill to the field and input value that
// caused it.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q (value %q): %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
