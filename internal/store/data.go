package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"timetable/internal/core"
	"timetable/internal/entity"
)

// Save upserts one entity and returns its id: the entity's own id when it is
// stored, the AUTO_INCREMENT value assigned by the server otherwise.
func (s *Session) Save(ctx context.Context, e entity.Schemable) (int64, error) {
	return s.save(ctx, s.db, e)
}

func (s *Session) save(ctx context.Context, ex execer, e entity.Schemable) (int64, error) {
	q, err := entity.UpsertQuery(e)
	if err != nil {
		return 0, fmt.Errorf("save %s: %w", e.Table(), err)
	}
	res, err := s.exec(ctx, ex, q)
	if err != nil {
		return 0, fmt.Errorf("save %s: %w", e.Table(), err)
	}
	if e.ID() > 0 {
		return e.ID(), nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save %s: failed to read assigned id: %w", e.Table(), err)
	}
	return id, nil
}

// SaveCatalog upserts every entity of c in dependency order inside one
// transaction. Entities must carry their ids, since references are written
// from the ids already held by the referenced entities.
func (s *Session) SaveCatalog(ctx context.Context, c *entity.Catalog) error {
	items := c.Schemables()
	for _, e := range items {
		if e.ID() <= 0 {
			return &core.Error{Kind: core.ErrConstraintViolation, Table: e.Table().String(), Message: "catalog entity has no id"}
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, e := range items {
		if _, err := s.save(ctx, tx, e); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("%w; rollback also failed: %v", err, rbErr)
			}
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.logger.Info("catalog saved", "rows", len(items))
	return nil
}

// Load reads every table with one multi-statement query, one result set per
// table in dependency order, and resolves all references.
func (s *Session) Load(ctx context.Context) (*entity.Catalog, error) {
	tables := entity.Tables()
	var q strings.Builder
	for _, t := range tables {
		q.WriteString(t.Blueprint().SelectQuery())
	}

	s.logger.Debug("executing query", "sql", truncateSQL(q.String()))
	rows, err := s.db.QueryContext(ctx, q.String())
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	cur, err := NewCursor(rows)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer cur.Close()

	loader := entity.NewLoader()
	for i, t := range tables {
		if i > 0 && !cur.AdvanceResultSet() {
			if err := cur.Err(); err != nil {
				return nil, fmt.Errorf("load %s: %w", t, err)
			}
			return nil, fmt.Errorf("load %s: result set missing", t)
		}
		n, err := drain(cur, t, loader)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", t, err)
		}
		s.logger.Info("table loaded", "table", t.String(), "rows", n)
	}
	return loader.Catalog(), nil
}

// drain feeds every row of the current result set to the loader.
func drain(cur *Cursor, t entity.Table, loader *entity.Loader) (int, error) {
	n := 0
	for cur.HasNext() {
		row, err := core.ReadRow(cur, t.Blueprint())
		if err != nil {
			return n, err
		}
		if err := loader.Add(row); err != nil {
			return n, err
		}
		n++
	}
	return n, cur.Err()
}

var _ txExecer = (*sql.Tx)(nil)
