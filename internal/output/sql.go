package output

import (
	"strings"

	"timetable/internal/core"
	"timetable/internal/entity"
	"timetable/internal/store"
)

type sqlFormatter struct{}

// FormatSchema formats the blueprints as a runnable script.
func (sqlFormatter) FormatSchema(blueprints []*core.Schema, drop bool) (string, error) {
	var sb strings.Builder
	sb.WriteString("-- timetable schema\n")
	sb.WriteString("-- Requires sql_mode ANSI_QUOTES.\n")

	stmts := schemaStatements(blueprints, drop)
	if len(stmts) == 0 {
		sb.WriteString("\n-- No tables.\n")
		return sb.String(), nil
	}

	sb.WriteString("\n")
	if !drop {
		sb.WriteString("SET SESSION sql_mode = CONCAT(@@sql_mode, ',ANSI_QUOTES');\n")
	}
	writeStatements(&sb, stmts)
	return sb.String(), nil
}

// FormatReport formats a verification report as SQL comments.
func (sqlFormatter) FormatReport(r *store.Report) (string, error) {
	var sb strings.Builder
	sb.WriteString("-- timetable verify\n")
	if r == nil {
		return sb.String(), nil
	}
	for _, t := range r.Tables {
		switch {
		case t.Missing:
			sb.WriteString("-- " + t.Table + ": missing\n")
		case len(t.Mismatches) > 0:
			sb.WriteString("-- " + t.Table + ": differs\n")
			writeCommentSection(&sb, t.Mismatches)
		default:
			sb.WriteString("-- " + t.Table + ": ok\n")
		}
	}
	return sb.String(), nil
}

// FormatCatalog formats every loaded entity as an upsert, ready to be replayed.
func (sqlFormatter) FormatCatalog(c *entity.Catalog) (string, error) {
	var sb strings.Builder
	sb.WriteString("-- timetable dump\n")
	if c == nil {
		return sb.String(), nil
	}
	stmts, err := catalogStatements(c)
	if err != nil {
		return "", err
	}
	if len(stmts) == 0 {
		sb.WriteString("\n-- No rows.\n")
		return sb.String(), nil
	}
	sb.WriteString("\n")
	writeStatements(&sb, stmts)
	return sb.String(), nil
}

func writeStatements(sb *strings.Builder, stmts []string) {
	for _, stmt := range stmts {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		sb.WriteString(stmt)
		if !strings.HasSuffix(stmt, ";") {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
}

func writeCommentSection(sb *strings.Builder, items []string) {
	for _, item := range items {
		for _, line := range splitCommentLines(item) {
			if line == "" {
				continue
			}
			sb.WriteString("--   - " + line + "\n")
		}
	}
}

func splitCommentLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}
