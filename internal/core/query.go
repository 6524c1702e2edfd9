package core

import (
	"fmt"
	"strings"
)

// CreateQuery renders CREATE TABLE IF NOT EXISTS with the column definitions
// followed by the foreign keys, both in declaration order.
func (s *Schema) CreateQuery() string {
	defs := make([]string, 0, len(s.columns)+len(s.links))
	for _, c := range s.columns {
		defs = append(defs, c.Definition())
	}
	for _, l := range s.links {
		defs = append(defs, l.Definition())
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s);", QuoteIdentifier(s.name), strings.Join(defs, ", "))
}

// DropQuery renders DROP TABLE.
func (s *Schema) DropQuery() string {
	return fmt.Sprintf("DROP TABLE %s;", QuoteIdentifier(s.name))
}

// SelectQuery renders a SELECT of every column in declaration order.
func (s *Schema) SelectQuery() string {
	cols := make([]string, len(s.columns))
	for i, c := range s.columns {
		cols[i] = QuoteIdentifier(c.name)
	}
	return fmt.Sprintf("SELECT %s FROM %s;", strings.Join(cols, ", "), QuoteIdentifier(s.name))
}

// InsertQuery renders an upsert of every column that holds a value.
//
// An empty nullable column is left out and becomes NULL. Any other empty
// column, AUTO_INCREMENT included, makes the query fail with
// ErrConstraintViolation before any text is produced.
func (s *Schema) InsertQuery() (string, error) {
	return s.insertQuery(false)
}

// InsertNewQuery renders the upsert of a row that has no key yet. It differs
// from InsertQuery only in leaving out empty AUTO_INCREMENT columns, so the
// server assigns them.
func (s *Schema) InsertNewQuery() (string, error) {
	return s.insertQuery(true)
}

func (s *Schema) insertQuery(serverKeys bool) (string, error) {
	var cols, vals, updates []string
	for _, c := range s.columns {
		if !c.hasValue {
			if c.nullable || (serverKeys && c.autoIncrement) {
				continue
			}
			return "", newError(ErrConstraintViolation, s.name, c.name, "NOT NULL column has no value")
		}
		q := QuoteIdentifier(c.name)
		cols = append(cols, q)
		vals = append(vals, QuoteValue(c.value))
		updates = append(updates, fmt.Sprintf("%s = VALUES(%s)", q, q))
	}
	if len(cols) == 0 {
		return "", newError(ErrConstraintViolation, s.name, "", "no column holds a value")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON DUPLICATE KEY UPDATE %s;",
		QuoteIdentifier(s.name),
		strings.Join(cols, ", "),
		strings.Join(vals, ", "),
		strings.Join(updates, ", "),
	), nil
}
