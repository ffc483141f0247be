// Package sqlite implements the persistence layer for vibe: projects, their
// documentation sections, and their feature checklists, stored in a local
// SQLite database.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

// timeLayout is fixed-width so that ORDER BY on the text column is chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Backend is the SQLite store. One Backend serves one CLI invocation and is
// used sequentially.
type Backend struct {
	db     *sql.DB
	tx     *sql.Tx // non-nil inside WithTx
	path   string
	logger *log.Logger
	now    func() time.Time
}

// NewBackend creates a detached backend. A nil logger discards output.
func NewBackend(logger *log.Logger) *Backend {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Backend{logger: logger, now: time.Now}
}

// Exists reports whether a database file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Attach opens (creating if needed) the database at cfg.DBPath and applies
// the schema. Returns an error if already attached.
func (b *Backend) Attach(cfg types.Config) error {
	if b.db != nil {
		return errors.New("backend already attached")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// One connection: the CLI is sequential and transactions must see their own writes.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return fmt.Errorf("set pragma: %w", err)
		}
	}

	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	b.db = db
	b.path = cfg.DBPath
	b.logger.Debug("attached store", "path", cfg.DBPath)
	return nil
}

// Detach closes the database. Detach is idempotent.
func (b *Backend) Detach() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	b.logger.Debug("detached store", "path", b.path)
	return err
}

// Path returns the database file path.
func (b *Backend) Path() string {
	return b.path
}

// WithTx runs fn against a backend bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (b *Backend) WithTx(fn func(tx *Backend) error) error {
	if b.tx != nil {
		return fn(b)
	}
	if b.db == nil {
		return errors.New("backend is detached")
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	bound := &Backend{db: b.db, tx: tx, path: b.path, logger: b.logger, now: b.now}
	if err := fn(bound); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			b.logger.Warn("rollback failed", "err", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// q returns the active transaction or the database.
func (b *Backend) q() querier {
	if b.tx != nil {
		return b.tx
	}
	return b.db
}

// stamp returns the current UTC time and its stored text form.
func (b *Backend) stamp() (time.Time, string) {
	now := b.now().UTC()
	return now, now.Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// isNoRows reports whether err is sql.ErrNoRows.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
