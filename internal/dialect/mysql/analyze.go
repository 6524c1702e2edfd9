package mysql

import (
	"strings"

	"github.com/pingcap/tidb/pkg/parser/ast"

	"timetable/internal/dialect"
)

var alterTableDestructive = map[ast.AlterTableType]string{
	ast.AlterTableDropColumn:     "DROP COLUMN will permanently delete the column and its data",
	ast.AlterTableDropPrimaryKey: "DROP PRIMARY KEY rebuilds the table",
	ast.AlterTableDropForeignKey: "DROP FOREIGN KEY removes a reference check",
}

// Analyze parses sql and reports whether it deletes data and whether MySQL
// commits the open transaction before running it. Several statements are
// merged into one analysis.
func (p *Parser) Analyze(sql string) (dialect.Analysis, error) {
	stmtNodes, err := p.parse(sql)
	if err != nil {
		return dialect.Analysis{}, err
	}

	var merged dialect.Analysis
	var names, reasons []string
	for _, node := range stmtNodes {
		a := analyzeNode(node)
		names = append(names, a.Statement)
		if a.Reason != "" {
			reasons = append(reasons, a.Reason)
		}
		merged.Destructive = merged.Destructive || a.Destructive
		merged.ImplicitCommit = merged.ImplicitCommit || a.ImplicitCommit
	}
	merged.Statement = strings.Join(names, "; ")
	merged.Reason = strings.Join(reasons, "; ")
	return merged, nil
}

func analyzeNode(node ast.StmtNode) dialect.Analysis {
	switch stmt := node.(type) {
	case *ast.CreateTableStmt:
		return dialect.Analysis{Statement: "CREATE TABLE", ImplicitCommit: true}
	case *ast.DropTableStmt:
		return dialect.Analysis{
			Statement:      "DROP TABLE",
			Destructive:    true,
			ImplicitCommit: true,
			Reason:         "DROP TABLE will permanently delete the table and all its data",
		}
	case *ast.DropDatabaseStmt:
		return dialect.Analysis{
			Statement:      "DROP DATABASE",
			Destructive:    true,
			ImplicitCommit: true,
			Reason:         "DROP DATABASE will permanently delete the entire database",
		}
	case *ast.TruncateTableStmt:
		return dialect.Analysis{
			Statement:      "TRUNCATE TABLE",
			Destructive:    true,
			ImplicitCommit: true,
			Reason:         "TRUNCATE TABLE deletes every row",
		}
	case *ast.AlterTableStmt:
		a := dialect.Analysis{Statement: "ALTER TABLE", ImplicitCommit: true}
		for _, spec := range stmt.Specs {
			if reason, ok := alterTableDestructive[spec.Tp]; ok {
				a.Destructive = true
				a.Reason = reason
			}
		}
		return a
	case *ast.DeleteStmt:
		a := dialect.Analysis{Statement: "DELETE"}
		if stmt.Where == nil {
			a.Destructive = true
			a.Reason = "DELETE without WHERE deletes every row"
		}
		return a
	case *ast.UpdateStmt:
		a := dialect.Analysis{Statement: "UPDATE"}
		if stmt.Where == nil {
			a.Destructive = true
			a.Reason = "UPDATE without WHERE rewrites every row"
		}
		return a
	case *ast.InsertStmt:
		return dialect.Analysis{Statement: "INSERT"}
	case *ast.SelectStmt:
		return dialect.Analysis{Statement: "SELECT"}
	case *ast.ShowStmt:
		return dialect.Analysis{Statement: "SHOW"}
	case *ast.SetStmt:
		return dialect.Analysis{Statement: "SET"}
	case ast.DDLNode:
		return dialect.Analysis{Statement: "DDL", ImplicitCommit: true}
	default:
		return dialect.Analysis{Statement: "OTHER"}
	}
}
