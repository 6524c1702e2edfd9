package store

import (
	"database/sql"
	"fmt"

	"timetable/internal/core"
)

// Cursor walks the rows of one or more result sets and exposes the current
// row by column name. It implements core.RowReader.
type Cursor struct {
	rows    *sql.Rows
	columns map[string]int
	values  []any
	err     error
}

var _ core.RowReader = (*Cursor)(nil)

// NewCursor takes ownership of rows; Close releases them.
func NewCursor(rows *sql.Rows) (*Cursor, error) {
	c := &Cursor{rows: rows}
	if err := c.readColumns(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cursor) readColumns() error {
	names, err := c.rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read result columns: %w", err)
	}
	c.columns = make(map[string]int, len(names))
	for i, name := range names {
		c.columns[name] = i
	}
	c.values = make([]any, len(names))
	return nil
}

// HasNext moves to the next row of the current result set and reports
// whether there was one.
func (c *Cursor) HasNext() bool {
	if c.err != nil || !c.rows.Next() {
		return false
	}
	dest := make([]any, len(c.values))
	for i := range c.values {
		c.values[i] = nil
		dest[i] = &c.values[i]
	}
	if err := c.rows.Scan(dest...); err != nil {
		c.err = fmt.Errorf("failed to scan row: %w", err)
		return false
	}
	return true
}

// IsNull reports whether column is SQL NULL in the current row. Unknown
// columns are not NULL; Value reports them.
func (c *Cursor) IsNull(column string) bool {
	i, ok := c.columns[column]
	return ok && c.values[i] == nil
}

// Value returns the driver value of column in the current row.
func (c *Cursor) Value(column string) (any, error) {
	i, ok := c.columns[column]
	if !ok {
		return nil, &core.Error{Kind: core.ErrNotFound, Column: column, Message: "not in result set"}
	}
	return c.values[i], nil
}

// AdvanceResultSet moves to the next result set of a multi-statement query.
func (c *Cursor) AdvanceResultSet() bool {
	if c.err != nil || !c.rows.NextResultSet() {
		return false
	}
	if err := c.readColumns(); err != nil {
		c.err = err
		return false
	}
	return true
}

// Err returns the first error met while iterating.
func (c *Cursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *Cursor) Close() error {
	return c.rows.Close()
}
