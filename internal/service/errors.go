package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a directory failure.  Every error returned by Directory
// is an *Error with one of these kinds.
type Kind int

const (
	// KindValidation means the submitted input was missing or malformed.
	KindValidation Kind = iota + 1
	// KindNotFound means the referenced record does not exist.
	KindNotFound
	// KindPersistence means the store failed; the transaction was rolled back.
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by Directory operations.
type Error struct {
	Kind   Kind
	Op     string            // operation name, e.g. "createVenue"
	Fields map[string]string // field -> message, validation only
	Err    error             // underlying cause, may be nil
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Op, e.Kind)
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			sep := ", "
			if i == 0 {
				sep = ": "
			}
			fmt.Fprintf(&b, "%s%s %s", sep, k, e.Fields[k])
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func kindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { k, ok := kindOf(err); return ok && k == KindValidation }

// IsNotFound reports whether err reports a missing record.
func IsNotFound(err error) bool { k, ok := kindOf(err); return ok && k == KindNotFound }

// IsPersistence reports whether err is a storage failure.
func IsPersistence(err error) bool { k, ok := kindOf(err); return ok && k == KindPersistence }

// FieldErrors returns the per-field messages of a validation failure, or
// nil for any other error.
func FieldErrors(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindValidation {
		return e.Fields
	}
	return nil
}

func invalid(op string, fields map[string]string) error {
	return &Error{Kind: KindValidation, Op: op, Fields: fields}
}

func notFound(op string, err error) error {
	return &Error{Kind: KindNotFound, Op: op, Err: err}
}

func persistence(op string, err error) error {
	return &Error{Kind: KindPersistence, Op: op, Err: err}
}
