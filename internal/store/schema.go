package store

import (
	"context"
	"fmt"
	"slices"

	"timetable/internal/core"
	"timetable/internal/entity"
)

// Migrate creates every table that does not exist yet, in dependency order.
func (s *Session) Migrate(ctx context.Context) error {
	for _, bp := range entity.Blueprints() {
		if _, err := s.exec(ctx, s.db, bp.CreateQuery()); err != nil {
			return fmt.Errorf("migrate %s: %w", bp.Name(), err)
		}
		s.logger.Info("table ready", "table", bp.Name())
	}
	return nil
}

// Drop removes the timetable tables that exist, referencing tables first.
func (s *Session) Drop(ctx context.Context) error {
	existing, err := s.ExistingTables(ctx)
	if err != nil {
		return err
	}
	bps := entity.Blueprints()
	slices.Reverse(bps)
	for _, bp := range bps {
		if !slices.Contains(existing, bp.Name()) {
			continue
		}
		if _, err := s.exec(ctx, s.db, bp.DropQuery()); err != nil {
			return fmt.Errorf("drop %s: %w", bp.Name(), err)
		}
		s.logger.Info("table dropped", "table", bp.Name())
	}
	return nil
}

// ExistingTables lists the base tables of the current database.
func (s *Session) ExistingTables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// TableReport is the verification result of one table.
type TableReport struct {
	Table      string   `json:"table"`
	Missing    bool     `json:"missing,omitempty"`
	Mismatches []string `json:"mismatches,omitempty"`
}

func (r TableReport) OK() bool { return !r.Missing && len(r.Mismatches) == 0 }

// Report is the result of Verify, one entry per blueprint in dependency order.
type Report struct {
	Tables []TableReport `json:"tables"`
}

// OK reports whether every table matches its blueprint.
func (r *Report) OK() bool {
	for _, t := range r.Tables {
		if !t.OK() {
			return false
		}
	}
	return true
}

// Failed returns the tables that are missing or differ.
func (r *Report) Failed() []TableReport {
	var out []TableReport
	for _, t := range r.Tables {
		if !t.OK() {
			out = append(out, t)
		}
	}
	return out
}

// Verify reads the live definition of every table with SHOW CREATE TABLE and
// compares its shape with the blueprint.
func (s *Session) Verify(ctx context.Context) (*Report, error) {
	existing, err := s.ExistingTables(ctx)
	if err != nil {
		return nil, err
	}
	report := &Report{}
	for _, bp := range entity.Blueprints() {
		tr := TableReport{Table: bp.Name()}
		if !slices.Contains(existing, bp.Name()) {
			tr.Missing = true
			report.Tables = append(report.Tables, tr)
			continue
		}
		live, err := s.readTable(ctx, bp.Name())
		if err != nil {
			return nil, err
		}
		tr.Mismatches = live.Mismatches(bp)
		if !tr.OK() {
			s.logger.Warn("table differs from blueprint", "table", bp.Name(), "mismatches", len(tr.Mismatches))
		}
		report.Tables = append(report.Tables, tr)
	}
	return report, nil
}

func (s *Session) readTable(ctx context.Context, table string) (*core.Schema, error) {
	var name, ddl string
	q := "SHOW CREATE TABLE " + core.QuoteIdentifier(table)
	if err := s.db.QueryRowContext(ctx, q).Scan(&name, &ddl); err != nil {
		return nil, fmt.Errorf("failed to read definition of %s: %w", table, err)
	}
	live, err := s.dialect.Reader().ReadSchema(ddl)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition of %s: %w", table, err)
	}
	return live, nil
}
