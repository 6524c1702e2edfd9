package core

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultTextLength is the VARCHAR length used when a text column is declared
// without an explicit bound.
const DefaultTextLength = 255

// Attr is a bitmask of column-level constraints set at construction time.
type Attr uint8

// NotNull is the empty attribute set: a plain NOT NULL column.
const NotNull Attr = 0

const (
	// Nullable drops the NOT NULL clause; an empty nullable column is stored as NULL.
	Nullable   Attr = 1 << iota
	PrimaryKey      // PRIMARY KEY
)

// Column is a single named, typed and constrained storage cell.
type Column struct {
	name          string
	kind          Kind
	maxLength     int
	nullable      bool
	primaryKey    bool
	autoIncrement bool
	value         Value
	hasValue      bool
}

// NewIntColumn declares an INT column.
func NewIntColumn(name string, attrs Attr) *Column {
	return &Column{
		name:       name,
		kind:       KindInt,
		nullable:   attrs&Nullable != 0,
		primaryKey: attrs&PrimaryKey != 0,
	}
}

// NewTextColumn declares a VARCHAR(maxLength) column. A non-positive maxLength
// falls back to DefaultTextLength.
func NewTextColumn(name string, maxLength int, attrs Attr) *Column {
	if maxLength <= 0 {
		maxLength = DefaultTextLength
	}
	return &Column{
		name:       name,
		kind:       KindText,
		maxLength:  maxLength,
		nullable:   attrs&Nullable != 0,
		primaryKey: attrs&PrimaryKey != 0,
	}
}

// NewSerialColumn declares the usual surrogate key: INT NOT NULL PRIMARY KEY AUTO_INCREMENT.
func NewSerialColumn(name string) *Column {
	c := NewIntColumn(name, PrimaryKey)
	c.autoIncrement = true
	return c
}

func (c *Column) Name() string        { return c.name }
func (c *Column) Kind() Kind          { return c.kind }
func (c *Column) MaxLength() int      { return c.maxLength }
func (c *Column) Nullable() bool      { return c.nullable }
func (c *Column) PrimaryKey() bool    { return c.primaryKey }
func (c *Column) AutoIncrement() bool { return c.autoIncrement }

// SupportsAutoIncrement reports whether the column kind can be AUTO_INCREMENT.
func (c *Column) SupportsAutoIncrement() bool { return c.kind == KindInt }

// SetAutoIncrement toggles AUTO_INCREMENT. Only integer columns accept it.
func (c *Column) SetAutoIncrement(on bool) error {
	if on && !c.SupportsAutoIncrement() {
		return newError(ErrConstraintViolation, "", c.name, "%s column cannot be AUTO_INCREMENT", c.kind)
	}
	c.autoIncrement = on
	return nil
}

// SetData stores v after checking it against the declared kind.
func (c *Column) SetData(v Value) error {
	if v.Kind() != c.kind {
		return newError(ErrTypeMismatch, "", c.name, "cannot store %s value in %s column", v.Kind(), c.kind)
	}
	if s, ok := v.Text(); ok {
		if n := utf8.RuneCountInString(s); n > c.maxLength {
			return newError(ErrConstraintViolation, "", c.name, "text of %d characters exceeds VARCHAR(%d)", n, c.maxLength)
		}
	}
	c.value = v
	c.hasValue = true
	return nil
}

func (c *Column) SetInt(v int64) error   { return c.SetData(IntValue(v)) }
func (c *Column) SetText(v string) error { return c.SetData(TextValue(v)) }

// ClearData forgets the stored value; the column reads as NULL afterwards.
func (c *Column) ClearData() {
	c.value = Value{}
	c.hasValue = false
}

func (c *Column) HasData() bool { return c.hasValue }

// Data returns the stored value, failing with ErrNoData on an empty column.
func (c *Column) Data() (Value, error) {
	if !c.hasValue {
		return Value{}, newError(ErrNoData, "", c.name, "column holds no value")
	}
	return c.value, nil
}

// SQLType renders the MySQL type of the column.
func (c *Column) SQLType() string {
	if c.kind == KindText {
		return "VARCHAR(" + strconv.Itoa(c.maxLength) + ")"
	}
	return "INT"
}

// Definition renders the column clause of a CREATE TABLE statement.
func (c *Column) Definition() string {
	parts := []string{QuoteIdentifier(c.name), c.SQLType()}
	if !c.nullable {
		parts = append(parts, "NOT NULL")
	}
	if c.primaryKey {
		parts = append(parts, "PRIMARY KEY")
	}
	if c.autoIncrement {
		parts = append(parts, "AUTO_INCREMENT")
	}
	return strings.Join(parts, " ")
}

// SameShapeAs reports whether both columns declare the same kind and
// constraints, ignoring names and values.
func (c *Column) SameShapeAs(o *Column) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.kind != o.kind || c.nullable != o.nullable || c.primaryKey != o.primaryKey || c.autoIncrement != o.autoIncrement {
		return false
	}
	return c.kind != KindText || c.maxLength == o.maxLength
}

// SameAs is SameShapeAs plus equal stored values. Two empty columns hold equal values.
func (c *Column) SameAs(o *Column) bool {
	if c == nil || o == nil || !c.SameShapeAs(o) {
		return c == o
	}
	if c.hasValue != o.hasValue {
		return false
	}
	return !c.hasValue || c.value.Equal(o.value)
}

func (c *Column) clone() *Column {
	cp := *c
	return &cp
}
