package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for every failure class of the mapping engine. All of them
// are local and synchronous; none is worth retrying.
var (
	ErrSchemaMismatch      = errors.New("schema mismatch")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrDependencyMismatch  = errors.New("dependency mismatch")
	ErrInvalidReference    = errors.New("invalid reference")
	ErrInvalidSchema       = errors.New("invalid schema")
	ErrNotFound            = errors.New("not found")
	ErrNoData              = errors.New("no data")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrOutOfRange          = errors.New("out of range")
)

// Error carries the table/column context of a failure. It unwraps to one of
// the sentinel errors above, so callers match it with errors.Is.
type Error struct {
	Kind    error
	Table   string
	Column  string
	Message string
}

func (e *Error) Error() string {
	switch {
	case e.Table != "" && e.Column != "":
		return fmt.Sprintf("%v in table %q column %q: %s", e.Kind, e.Table, e.Column, e.Message)
	case e.Table != "":
		return fmt.Sprintf("%v in table %q: %s", e.Kind, e.Table, e.Message)
	case e.Column != "":
		return fmt.Sprintf("%v in column %q: %s", e.Kind, e.Column, e.Message)
	default:
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, table, column, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Table:   table,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

// withTable fills in the table name of a column-level error raised below a Schema.
func withTable(err error, table string) error {
	var e *Error
	if errors.As(err, &e) && e.Table == "" {
		cp := *e
		cp.Table = table
		return &cp
	}
	return err
}

// DependencyMismatch builds the error returned by FromData implementations when
// a foreign key disagrees with an already-resolved dependency.
func DependencyMismatch(table, column, format string, args ...any) error {
	return newError(ErrDependencyMismatch, table, column, format, args...)
}

// SchemaMismatch builds the error returned when a filled schema does not have the
// shape of the expected blueprint.
func SchemaMismatch(table, format string, args ...any) error {
	return newError(ErrSchemaMismatch, table, "", format, args...)
}
