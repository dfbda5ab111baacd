package store

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/lance6716/perfect-maze/pkg/util"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// DefaultTable is the table History writes to when none is given.
const DefaultTable = "maze_runs"

// Run is one generation run as stored in the history table.
type Run struct {
	ID        string
	Size      int
	Seed      int64
	Removed   int // removed walls, excluding the entrance and the exit
	Draws     int
	CreatedAt time.Time
}

// History records generation runs into a MySQL table. It's concurrent safe and
// the table is created at most once per History.
type History struct {
	db    *sql.DB
	table string

	tableOnce sync.Once
	tableErr  error
}

// NewHistory creates a History on the given table. An empty table means
// DefaultTable.
func NewHistory(db *sql.DB, table string) *History {
	if table == "" {
		table = DefaultTable
	}
	return &History{
		db:    db,
		table: util.EscapeIdentifier(table),
	}
}

// EnsureTable creates the history table if it does not exist. A failure is
// remembered and returned by every later call.
func (h *History) EnsureTable(ctx context.Context) error {
	h.tableOnce.Do(func() {
		h.tableErr = h.createTable(ctx)
	})
	return h.tableErr
}

func (h *History) createTable(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS ` + h.table + ` (
		id         VARCHAR(36) NOT NULL PRIMARY KEY,
		size       INT         NOT NULL,
		seed       BIGINT      NOT NULL,
		removed    INT         NOT NULL,
		draws      BIGINT      NOT NULL,
		created_at DATETIME(6) NOT NULL,
		KEY idx_created_at (created_at)
	)`
	_, err := h.db.ExecContext(ctx, query)
	if err != nil {
		util.Logger.Warn("create history table failed",
			zap.String("table", h.table),
			zap.Error(err))
		return errors.Annotatef(err, "create history table %s", h.table)
	}
	return nil
}

// Record inserts r into the history table.
func (h *History) Record(ctx context.Context, r Run) error {
	if err := h.EnsureTable(ctx); err != nil {
		return errors.Trace(err)
	}
	query := "INSERT INTO " + h.table +
		" (id, size, seed, removed, draws, created_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := h.db.ExecContext(ctx, query,
		r.ID, r.Size, r.Seed, r.Removed, r.Draws, r.CreatedAt.UTC())
	return errors.Annotatef(err, "record maze run %s", r.ID)
}

// Recent returns at most limit runs, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		return nil, errors.Errorf("limit must be positive, got %d", limit)
	}
	query := "SELECT id, size, seed, removed, draws, created_at FROM " + h.table +
		" ORDER BY created_at DESC LIMIT ?"
	rows, err := h.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to execute query: %s", query)
	}
	defer rows.Close()

	var ret []Run
	for rows.Next() {
		var r Run
		err = rows.Scan(&r.ID, &r.Size, &r.Seed, &r.Removed, &r.Draws, &r.CreatedAt)
		if err != nil {
			return nil, errors.Annotatef(err, "failed to scan row of %s", h.table)
		}
		ret = append(ret, r)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Annotatef(err, "failed to get rows of %s", h.table)
	}
	return ret, nil
}
