package history

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

type sqliteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore returns a Store backed by db. Use Open to create db.
func NewStore(db *sql.DB) Store {
	return &sqliteStore{db: db, now: time.Now}
}

func (s *sqliteStore) Begin(ctx context.Context) (Run, error) {
	started := s.now()
	id, err := ulid.New(ulid.Timestamp(started), rand.Reader)
	if err != nil {
		return Run{}, fmt.Errorf("generate run id: %w", err)
	}

	run := Run{ID: id.String(), Status: StatusRunning, StartedAt: started}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, status, started_at) VALUES (?, ?, ?)`,
		run.ID, run.Status, started.UnixMilli())
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

func (s *sqliteStore) Finish(ctx context.Context, run Run) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = s.now()
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET class_name = ?, class_date = ?, theme = ?, folder_id = ?, status = ?, finished_at = ?
		 WHERE id = ?`,
		run.ClassName, run.ClassDate, run.Theme, run.FolderID, run.Status, run.FinishedAt.UnixMilli(), run.ID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", run.ID)
	}
	return nil
}

func (s *sqliteStore) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, class_name, class_date, theme, folder_id, status, started_at, finished_at
		FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			started  int64
			finished sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.ClassName, &r.ClassDate, &r.Theme, &r.FolderID, &r.Status, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.UnixMilli(started)
		if finished.Valid {
			r.FinishedAt = time.UnixMilli(finished.Int64)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
