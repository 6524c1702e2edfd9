// Package mysql provides MySQL dialect support on top of the TiDB parser
// running in ANSI_QUOTES mode, so double-quoted identifiers are accepted. It
// lints statements, classifies them before execution and reads CREATE TABLE
// statements back into schemas.
package mysql

import (
	"fmt"
	"sync"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	tidbmysql "github.com/pingcap/tidb/pkg/parser/mysql"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"

	"timetable/internal/dialect"
)

// MySQL rejects longer table and column names.
const mysqlMaxIdentLen = 64

func init() {
	dialect.RegisterDialect(dialect.MySQL, func() dialect.Dialect {
		return NewMySQLDialect()
	})
}

// Dialect represents the MySQL dialect: a single parser serves as linter,
// reader and analyzer.
type Dialect struct {
	parser *Parser
}

// NewMySQLDialect initializes a new MySQL dialect instance.
func NewMySQLDialect() *Dialect {
	return &Dialect{parser: NewParser()}
}

// Name returns the name of the MySQL dialect.
func (d *Dialect) Name() dialect.Type {
	return dialect.MySQL
}

// Linter returns the statement linter for the MySQL dialect.
func (d *Dialect) Linter() dialect.Linter {
	return d.parser
}

// Reader returns the CREATE TABLE reader for the MySQL dialect.
func (d *Dialect) Reader() dialect.Reader {
	return d.parser
}

// Analyzer returns the statement analyzer for the MySQL dialect.
func (d *Dialect) Analyzer() dialect.Analyzer {
	return d.parser
}

// Parser wraps a TiDB parser. The underlying parser is not safe for
// concurrent use, so calls are serialized.
type Parser struct {
	mu sync.Mutex
	p  *parser.Parser
}

// NewParser creates a parser that reads "name" as an identifier.
func NewParser() *Parser {
	p := parser.New()
	p.SetSQLMode(tidbmysql.ModeANSIQuotes)
	return &Parser{p: p}
}

func (p *Parser) parse(sql string) ([]ast.StmtNode, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	stmtNodes, _, err := p.p.Parse(sql, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to parse MySQL statement: %w", err)
	}
	if len(stmtNodes) == 0 {
		return nil, fmt.Errorf("no statement in %q", sql)
	}
	return stmtNodes, nil
}

// Lint parses sql and checks the identifier lengths of CREATE TABLE statements.
func (p *Parser) Lint(sql string) error {
	stmtNodes, err := p.parse(sql)
	if err != nil {
		return err
	}
	for _, stmtNode := range stmtNodes {
		createStmt, ok := stmtNode.(*ast.CreateTableStmt)
		if !ok {
			continue
		}
		if err := checkIdentLen("table", createStmt.Table.Name.O); err != nil {
			return err
		}
		for _, colDef := range createStmt.Cols {
			if err := checkIdentLen("column", colDef.Name.Name.O); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkIdentLen(kind, name string) error {
	if len(name) > mysqlMaxIdentLen {
		return fmt.Errorf("%s name %q exceeds %d characters", kind, name, mysqlMaxIdentLen)
	}
	return nil
}
