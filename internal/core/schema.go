// Package core is the schema/column mapping engine. It describes relational
// tables in memory, type-checks the data placed into them, compares schemas
// structurally and by value, and renders MySQL-flavored SQL text.
//
// A Schema built by an entity's blueprint function is a fresh object graph on
// every call; a "filled" schema is such a copy after SetColumnData calls and is
// meant to be consumed by a single query-generation or FromData call.
package core

import (
	"fmt"
)

// Schema is a named, ordered set of columns plus foreign-key links.
type Schema struct {
	name    string
	columns []*Column
	links   []ReferenceLink
}

// NewSchema validates and assembles a schema. Every link must start at one of
// the given columns, and column names must be unique.
func NewSchema(name string, columns []*Column, links ...ReferenceLink) (*Schema, error) {
	if name == "" {
		return nil, newError(ErrInvalidSchema, "", "", "table name is empty")
	}
	seen := make(map[string]bool, len(columns))
	for i, c := range columns {
		if c == nil {
			return nil, newError(ErrInvalidSchema, name, "", "column at index %d is nil", i)
		}
		if c.name == "" {
			return nil, newError(ErrInvalidSchema, name, "", "column at index %d has no name", i)
		}
		if seen[c.name] {
			return nil, newError(ErrInvalidSchema, name, c.name, "duplicate column name")
		}
		seen[c.name] = true
	}
	for _, l := range links {
		if !seen[l.column] {
			return nil, newError(ErrInvalidSchema, name, l.column, "reference %s starts at an undeclared column", l)
		}
	}

	s := &Schema{
		name:    name,
		columns: make([]*Column, len(columns)),
		links:   make([]ReferenceLink, len(links)),
	}
	copy(s.columns, columns)
	copy(s.links, links)
	return s, nil
}

// MustSchema panics if err is non-nil. It is meant for blueprint functions whose
// declarations are fixed at compile time.
func MustSchema(s *Schema, err error) *Schema {
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string { return s.name }

// Columns returns the columns in declaration order.
func (s *Schema) Columns() []*Column {
	out := make([]*Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// ColumnNames returns the column names in declaration order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.name
	}
	return names
}

// Links returns the reference links in declaration order.
func (s *Schema) Links() []ReferenceLink {
	out := make([]ReferenceLink, len(s.links))
	copy(out, s.links)
	return out
}

// LinkFor returns the reference link starting at column, if any.
func (s *Schema) LinkFor(column string) (ReferenceLink, bool) {
	for _, l := range s.links {
		if l.column == column {
			return l, true
		}
	}
	return ReferenceLink{}, false
}

func (s *Schema) find(name string) *Column {
	for _, c := range s.columns {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (s *Schema) HasColumn(name string) bool { return s.find(name) != nil }

// Column returns the named column or ErrNotFound.
func (s *Schema) Column(name string) (*Column, error) {
	c := s.find(name)
	if c == nil {
		return nil, newError(ErrNotFound, s.name, name, "no such column")
	}
	return c, nil
}

// HasData reports whether the named column exists and holds a value.
func (s *Schema) HasData(name string) bool {
	c := s.find(name)
	return c != nil && c.hasValue
}

// Data returns the value stored in the named column.
func (s *Schema) Data(name string) (Value, error) {
	c, err := s.Column(name)
	if err != nil {
		return Value{}, err
	}
	v, err := c.Data()
	if err != nil {
		return Value{}, withTable(err, s.name)
	}
	return v, nil
}

func (s *Schema) typedColumn(name string, kind Kind) (*Column, error) {
	c, err := s.Column(name)
	if err != nil {
		return nil, err
	}
	if c.kind != kind {
		return nil, newError(ErrTypeMismatch, s.name, name, "%s accessor used on %s column", kind, c.kind)
	}
	return c, nil
}

// Int reads an integer column.
func (s *Schema) Int(name string) (int64, error) {
	c, err := s.typedColumn(name, KindInt)
	if err != nil {
		return 0, err
	}
	if !c.hasValue {
		return 0, newError(ErrNoData, s.name, name, "column holds no value")
	}
	v, _ := c.value.Int()
	return v, nil
}

// Text reads a text column.
func (s *Schema) Text(name string) (string, error) {
	c, err := s.typedColumn(name, KindText)
	if err != nil {
		return "", err
	}
	if !c.hasValue {
		return "", newError(ErrNoData, s.name, name, "column holds no value")
	}
	v, _ := c.value.Text()
	return v, nil
}

// OptionalInt reads a nullable integer column; ok is false when it is empty.
func (s *Schema) OptionalInt(name string) (v int64, ok bool, err error) {
	c, err := s.typedColumn(name, KindInt)
	if err != nil || !c.hasValue {
		return 0, false, err
	}
	v, _ = c.value.Int()
	return v, true, nil
}

// OptionalText reads a nullable text column; ok is false when it is empty.
func (s *Schema) OptionalText(name string) (v string, ok bool, err error) {
	c, err := s.typedColumn(name, KindText)
	if err != nil || !c.hasValue {
		return "", false, err
	}
	v, _ = c.value.Text()
	return v, true, nil
}

// SetColumnData stores v in the named column.
func (s *Schema) SetColumnData(name string, v Value) error {
	c, err := s.Column(name)
	if err != nil {
		return err
	}
	if err := c.SetData(v); err != nil {
		return withTable(err, s.name)
	}
	return nil
}

func (s *Schema) SetInt(name string, v int64) error   { return s.SetColumnData(name, IntValue(v)) }
func (s *Schema) SetText(name string, v string) error { return s.SetColumnData(name, TextValue(v)) }

// ClearColumnData empties the named column.
func (s *Schema) ClearColumnData(name string) error {
	c, err := s.Column(name)
	if err != nil {
		return err
	}
	c.ClearData()
	return nil
}

// Clone returns a deep copy, values included.
func (s *Schema) Clone() *Schema {
	cp := &Schema{
		name:    s.name,
		columns: make([]*Column, len(s.columns)),
		links:   make([]ReferenceLink, len(s.links)),
	}
	for i, c := range s.columns {
		cp.columns[i] = c.clone()
	}
	copy(cp.links, s.links)
	return cp
}

// String returns a short description of the schema.
func (s *Schema) String() string {
	return fmt.Sprintf("Table: %s (%d cols, %d references)", s.name, len(s.columns), len(s.links))
}
