package mysql

import (
	"fmt"

	"github.com/pingcap/tidb/pkg/parser/ast"
	tidbmysql "github.com/pingcap/tidb/pkg/parser/mysql"

	"timetable/internal/core"
)

// columnDef collects the attributes of a column across column options and
// table-level constraints before the core column is built.
type columnDef struct {
	name          string
	kind          core.Kind
	length        int
	nullable      bool
	primaryKey    bool
	autoIncrement bool
}

// ReadSchema converts a single CREATE TABLE statement into an empty schema.
// Only INT and VARCHAR columns are understood. Defaults, collations, plain
// indexes and table options are ignored.
func (p *Parser) ReadSchema(ddl string) (*core.Schema, error) {
	stmtNodes, err := p.parse(ddl)
	if err != nil {
		return nil, err
	}

	var create *ast.CreateTableStmt
	for _, stmtNode := range stmtNodes {
		createStmt, ok := stmtNode.(*ast.CreateTableStmt)
		if !ok {
			continue
		}
		if create != nil {
			return nil, &core.Error{Kind: core.ErrInvalidSchema, Message: "more than one CREATE TABLE statement"}
		}
		create = createStmt
	}
	if create == nil {
		return nil, &core.Error{Kind: core.ErrInvalidSchema, Message: "no CREATE TABLE statement"}
	}
	return convertCreateTable(create)
}

func convertCreateTable(stmt *ast.CreateTableStmt) (*core.Schema, error) {
	table := stmt.Table.Name.O
	defs := make([]*columnDef, 0, len(stmt.Cols))
	byName := make(map[string]*columnDef, len(stmt.Cols))
	var links []core.ReferenceLink

	for _, colDef := range stmt.Cols {
		def, err := newColumnDef(table, colDef)
		if err != nil {
			return nil, err
		}
		for _, opt := range colDef.Options {
			if opt == nil {
				continue
			}
			if opt.Tp == ast.ColumnOptionReference {
				l, err := referenceLink(table, []string{def.name}, opt.Refer)
				if err != nil {
					return nil, err
				}
				links = append(links, l)
				continue
			}
			def.applyOption(opt)
		}
		defs = append(defs, def)
		byName[def.name] = def
	}

	for _, constraint := range stmt.Constraints {
		if constraint == nil {
			continue
		}
		switch constraint.Tp {
		case ast.ConstraintPrimaryKey:
			for _, name := range constraintColumns(constraint) {
				if def, ok := byName[name]; ok {
					def.primaryKey = true
					def.nullable = false
				}
			}
		case ast.ConstraintForeignKey:
			l, err := referenceLink(table, constraintColumns(constraint), constraint.Refer)
			if err != nil {
				return nil, err
			}
			links = append(links, l)
		default:
		}
	}

	cols := make([]*core.Column, 0, len(defs))
	for _, def := range defs {
		col, err := def.build()
		if err != nil {
			return nil, &core.Error{Kind: core.ErrInvalidSchema, Table: table, Column: def.name, Message: err.Error()}
		}
		cols = append(cols, col)
	}
	return core.NewSchema(table, cols, links...)
}

func newColumnDef(table string, colDef *ast.ColumnDef) (*columnDef, error) {
	def := &columnDef{name: colDef.Name.Name.O, nullable: true}
	switch colDef.Tp.GetType() {
	case tidbmysql.TypeLong:
		def.kind = core.KindInt
	case tidbmysql.TypeVarchar:
		def.kind = core.KindText
		def.length = colDef.Tp.GetFlen()
	default:
		return nil, &core.Error{
			Kind:    core.ErrTypeMismatch,
			Table:   table,
			Column:  def.name,
			Message: fmt.Sprintf("unsupported column type %s", colDef.Tp.String()),
		}
	}
	return def, nil
}

func (d *columnDef) applyOption(opt *ast.ColumnOption) {
	switch opt.Tp {
	case ast.ColumnOptionNotNull:
		d.nullable = false
	case ast.ColumnOptionNull:
		d.nullable = true
	case ast.ColumnOptionPrimaryKey:
		d.primaryKey = true
		d.nullable = false
	case ast.ColumnOptionAutoIncrement:
		d.autoIncrement = true
	default:
	}
}

func (d *columnDef) build() (*core.Column, error) {
	attrs := core.NotNull
	if d.nullable {
		attrs |= core.Nullable
	}
	if d.primaryKey {
		attrs |= core.PrimaryKey
	}

	var col *core.Column
	if d.kind == core.KindText {
		col = core.NewTextColumn(d.name, d.length, attrs)
	} else {
		col = core.NewIntColumn(d.name, attrs)
	}
	if d.autoIncrement {
		if err := col.SetAutoIncrement(true); err != nil {
			return nil, err
		}
	}
	return col, nil
}

func constraintColumns(constraint *ast.Constraint) []string {
	columns := make([]string, 0, len(constraint.Keys))
	for _, key := range constraint.Keys {
		if key.Column != nil {
			columns = append(columns, key.Column.Name.O)
		}
	}
	return columns
}

// referenceLink accepts single-column foreign keys only, the only kind a
// ReferenceLink can describe.
func referenceLink(table string, columns []string, refer *ast.ReferenceDef) (core.ReferenceLink, error) {
	if refer == nil {
		return core.ReferenceLink{}, &core.Error{Kind: core.ErrInvalidReference, Table: table, Message: "foreign key without REFERENCES clause"}
	}
	var targets []string
	for _, spec := range refer.IndexPartSpecifications {
		if spec.Column != nil {
			targets = append(targets, spec.Column.Name.O)
		}
	}
	if len(columns) != 1 || len(targets) != 1 {
		return core.ReferenceLink{}, &core.Error{
			Kind:    core.ErrInvalidReference,
			Table:   table,
			Message: fmt.Sprintf("composite foreign key %v -> %s%v is not supported", columns, refer.Table.Name.O, targets),
		}
	}
	return core.NewReferenceLink(columns[0], refer.Table.Name.O, targets[0]), nil
}
