// Package output provides a set of formatters for blueprints, verification
// reports and loaded catalogs. It provides three formats: SQL, JSON and a
// human-readable summary.
package output

import (
	"fmt"
	"strings"

	"timetable/internal/core"
	"timetable/internal/entity"
	"timetable/internal/store"
)

// Format is an enum type representing the available output formats.
type Format string

const (
	FormatSQL     Format = "sql"
	FormatJSON    Format = "json"
	FormatSummary Format = "summary"
)

// Formatter formats everything the command line prints.
type Formatter interface {
	// FormatSchema renders the blueprints, as CREATE statements or, with drop
	// set, as DROP statements in reverse order.
	FormatSchema(blueprints []*core.Schema, drop bool) (string, error)
	FormatReport(*store.Report) (string, error)
	FormatCatalog(*entity.Catalog) (string, error)
}

// ParseFormat validates a format name. "human" is accepted for the summary
// format. If no format is specified, defaults to SQL format.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case "", FormatSQL:
		return FormatSQL, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatSummary, "human":
		return FormatSummary, nil
	default:
		return "", fmt.Errorf("unsupported format: %s; use 'sql', 'json', or 'summary'", name)
	}
}

// NewFormatter creates a new Formatter instance based on the given name.
func NewFormatter(name string) (Formatter, error) {
	format, err := ParseFormat(name)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		return jsonFormatter{}, nil
	case FormatSummary:
		return summaryFormatter{}, nil
	default:
		return sqlFormatter{}, nil
	}
}

// schemaStatements returns CREATE statements in order or DROP statements in
// reverse order.
func schemaStatements(blueprints []*core.Schema, drop bool) []string {
	out := make([]string, 0, len(blueprints))
	if !drop {
		for _, bp := range blueprints {
			out = append(out, bp.CreateQuery())
		}
		return out
	}
	for i := len(blueprints) - 1; i >= 0; i-- {
		out = append(out, blueprints[i].DropQuery())
	}
	return out
}

// catalogStatements renders an upsert for every entity in dependency order.
func catalogStatements(c *entity.Catalog) ([]string, error) {
	var out []string
	for _, e := range c.Schemables() {
		q, err := entity.UpsertQuery(e)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}
