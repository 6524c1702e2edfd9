// Package store runs the generated SQL against a MySQL database. A Session
// owns one connection pool for its whole life: it is acquired with Open or
// WithSession and released with Close, so nothing in the process holds a
// global connection.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"timetable/internal/dialect"
	_ "timetable/internal/dialect/mysql"
	"timetable/internal/logging"
)

// ansiQuotes is appended to the server's sql_mode on every connection so that
// "name" is read as an identifier, as in all generated statements.
const ansiQuotes = "CONCAT(@@sql_mode, ',ANSI_QUOTES')"

// Options holds everything needed to open a Session.
type Options struct {
	DSN     string
	Timeout time.Duration
	Logger  *slog.Logger
}

// Session executes statements on one database. It is safe for concurrent use
// as far as *sql.DB is; a Cursor is not.
type Session struct {
	db      *sql.DB
	dialect dialect.Dialect
	logger  *slog.Logger
}

// ConnectorConfig parses the DSN and adds the connection settings every
// session relies on: ANSI_QUOTES and multi-statement queries.
func ConnectorConfig(opts Options) (*mysql.Config, error) {
	cfg, err := mysql.ParseDSN(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["sql_mode"]; !ok {
		cfg.Params["sql_mode"] = ansiQuotes
	}
	cfg.MultiStatements = true
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}
	return cfg, nil
}

// Open establishes a connection pool and pings it to test the connection.
func Open(ctx context.Context, opts Options) (*Session, error) {
	cfg, err := ConnectorConfig(opts)
	if err != nil {
		return nil, err
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db := sql.OpenDB(connector)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database: %v; additionally failed to close connection: %w", pingErr, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	s := NewSession(db, opts.Logger)
	s.logger.Info("connected", "addr", cfg.Addr, "database", cfg.DBName)
	return s, nil
}

// NewSession wraps an already opened pool. A nil logger discards all output.
func NewSession(db *sql.DB, logger *slog.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		db:      db,
		dialect: dialect.GetDialect(dialect.MySQL),
		logger:  logger,
	}
}

// WithSession opens a session, runs fn and closes the session whatever fn returns.
func WithSession(ctx context.Context, opts Options, fn func(*Session) error) (err error) {
	s, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close database connection: %w", closeErr)
		}
	}()
	return fn(s)
}

// Close releases the connection pool.
func (s *Session) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// txExecer is implemented by *sql.Tx.
type txExecer interface {
	execer
	Commit() error
}

// exec lints and analyzes a generated statement before sending it. Inside a
// transaction, statements that make MySQL commit implicitly are refused.
func (s *Session) exec(ctx context.Context, e execer, stmt string) (sql.Result, error) {
	if err := s.dialect.Linter().Lint(stmt); err != nil {
		return nil, fmt.Errorf("refusing to execute %s: %w", truncateSQL(stmt), err)
	}
	analysis, err := s.dialect.Analyzer().Analyze(stmt)
	if err != nil {
		return nil, fmt.Errorf("refusing to execute %s: %w", truncateSQL(stmt), err)
	}
	if _, inTx := e.(txExecer); inTx && analysis.ImplicitCommit {
		return nil, fmt.Errorf("refusing to execute %s inside a transaction: %s commits implicitly", truncateSQL(stmt), analysis.Statement)
	}
	if analysis.Destructive {
		s.logger.Warn("destructive statement", "statement", analysis.Statement, "reason", analysis.Reason)
	}
	s.logger.Debug("executing statement", "sql", truncateSQL(stmt))
	res, err := e.ExecContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("execute failed: %w\n  Statement: %s", err, truncateSQL(stmt))
	}
	return res, nil
}

func truncateSQL(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	if len(stmt) > 80 {
		return stmt[:77] + "..."
	}
	return stmt
}
