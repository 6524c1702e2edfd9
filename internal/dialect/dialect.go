// Package dialect provides a unified interface for the SQL dialects the
// timetable schema is rendered for. A dialect knows how to check generated
// statements against its grammar and how to read a CREATE TABLE statement
// back into a core.Schema, so a live database can be compared with the
// blueprints.
package dialect

import (
	"errors"
	"fmt"
	"sort"

	"timetable/internal/core"
)

type Type string

const (
	MySQL Type = "mysql"
)

// Linter checks that statements are accepted by the dialect's grammar.
type Linter interface {
	Lint(sql string) error
}

// Reader parses a single CREATE TABLE statement into an empty schema.
type Reader interface {
	ReadSchema(ddl string) (*core.Schema, error)
}

// Analysis describes the effect of one statement on the database.
type Analysis struct {
	Statement      string
	Destructive    bool
	ImplicitCommit bool
	Reason         string
}

// Analyzer classifies a statement before it is executed.
type Analyzer interface {
	Analyze(sql string) (Analysis, error)
}

// Dialect interface creates a way to interact with a specific SQL dialect.
type Dialect interface {
	Name() Type
	Linter() Linter
	Reader() Reader
	Analyzer() Analyzer
}

var registry = map[Type]func() Dialect{}

// RegisterDialect creates a new registry entry for the specified dialect.
func RegisterDialect(d Type, ctor func() Dialect) {
	registry[d] = ctor
}

// GetDialect returns the dialect for the specified type from the registry.
// Unknown types fall back to MySQL when it is registered.
func GetDialect(d Type) Dialect {
	if ctor, ok := registry[d]; ok {
		return ctor()
	}
	if ctor, ok := registry[MySQL]; ok {
		return ctor()
	}
	return nil
}

// Registered lists the registered dialect types in name order.
func Registered() []Type {
	out := make([]Type, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Statements returns every statement generated for s: CREATE, SELECT and DROP,
// plus INSERT when s holds enough data to render one.
func Statements(s *core.Schema) []string {
	out := []string{s.CreateQuery(), s.SelectQuery(), s.DropQuery()}
	if q, err := s.InsertQuery(); err == nil {
		out = append(out, q)
	}
	return out
}

// LintSchema runs every statement generated for s through l and joins the failures.
func LintSchema(l Linter, s *core.Schema) error {
	var errs []error
	for _, q := range Statements(s) {
		if err := l.Lint(q); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
