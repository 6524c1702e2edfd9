package core

import "fmt"

// ReferenceLink is a foreign key from a column of the owning schema to a
// column of another table.
type ReferenceLink struct {
	column       string
	targetTable  string
	targetColumn string
}

// NewReferenceLink builds a link without checking the target table.
func NewReferenceLink(column, targetTable, targetColumn string) ReferenceLink {
	return ReferenceLink{column: column, targetTable: targetTable, targetColumn: targetColumn}
}

// LinkTo builds a link to target, failing with ErrInvalidReference if target
// has no column named targetColumn.
func LinkTo(column string, target *Schema, targetColumn string) (ReferenceLink, error) {
	if target == nil {
		return ReferenceLink{}, newError(ErrInvalidReference, "", column, "target schema is nil")
	}
	if !target.HasColumn(targetColumn) {
		return ReferenceLink{}, newError(ErrInvalidReference, target.Name(), targetColumn,
			"referenced by %q but not declared", column)
	}
	return NewReferenceLink(column, target.Name(), targetColumn), nil
}

// MustLinkTo is LinkTo for statically declared blueprints; it panics on error.
func MustLinkTo(column string, target *Schema, targetColumn string) ReferenceLink {
	l, err := LinkTo(column, target, targetColumn)
	if err != nil {
		panic(err)
	}
	return l
}

func (l ReferenceLink) Column() string       { return l.column }
func (l ReferenceLink) TargetTable() string  { return l.targetTable }
func (l ReferenceLink) TargetColumn() string { return l.targetColumn }

// Definition renders the FOREIGN KEY clause of a CREATE TABLE statement.
func (l ReferenceLink) Definition() string {
	return fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
		QuoteIdentifier(l.column), QuoteIdentifier(l.targetTable), QuoteIdentifier(l.targetColumn))
}

func (l ReferenceLink) String() string {
	return fmt.Sprintf("%s -> %s.%s", l.column, l.targetTable, l.targetColumn)
}

// SameAs compares the source column, target table and target column.
func (l ReferenceLink) SameAs(o ReferenceLink) bool {
	return l == o
}
