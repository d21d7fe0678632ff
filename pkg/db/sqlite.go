package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS uploads (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	session    TEXT    NOT NULL,
	name       TEXT    NOT NULL,
	data       BLOB    NOT NULL,
	created_at INTEGER NOT NULL,
	UNIQUE (session, name)
)`

// SQLiteStore keeps uploads in a SQLite database. The default DSN is an
// in-memory database, which lives as long as its single connection.
type SQLiteStore struct {
	db     *sql.DB
	insert *sql.Stmt
	get    *sql.Stmt
	list   *sql.Stmt
	clear  *sql.Stmt
}

func OpenSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	if strings.Contains(dsn, ":memory:") {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, multierr.Append(fmt.Errorf("create schema: %w", err), db.Close())
	}

	s := &SQLiteStore{db: db}
	prepare := func(dst **sql.Stmt, query string) error {
		stmt, err := db.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare %q: %w", query, err)
		}
		*dst = stmt
		return nil
	}
	err = multierr.Combine(
		prepare(&s.insert, `INSERT OR IGNORE INTO uploads (session, name, data, created_at) VALUES (?, ?, ?, ?)`),
		prepare(&s.get, `SELECT data, created_at FROM uploads WHERE session = ? AND name = ?`),
		prepare(&s.list, `SELECT name, length(data), created_at FROM uploads WHERE session = ? ORDER BY seq`),
		prepare(&s.clear, `DELETE FROM uploads WHERE session = ?`),
	)
	if err != nil {
		return nil, multierr.Append(err, s.Close())
	}
	return s, nil
}

func (s *SQLiteStore) Put(ctx context.Context, u Upload) (bool, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if u.Data == nil {
		u.Data = []byte{}
	}
	res, err := s.insert.ExecContext(ctx, u.Session, u.Name, u.Data, u.CreatedAt.UnixNano())
	if err != nil {
		return false, fmt.Errorf("insert upload %s: %w", u.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) Get(ctx context.Context, session, name string) (*Upload, error) {
	u := &Upload{Session: session, Name: name}
	var created int64
	err := s.get.QueryRowContext(ctx, session, name).Scan(&u.Data, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUploadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get upload %s: %w", name, err)
	}
	u.CreatedAt = time.Unix(0, created)
	return u, nil
}

func (s *SQLiteStore) List(ctx context.Context, session string) ([]UploadInfo, error) {
	rows, err := s.list.QueryContext(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var out []UploadInfo
	for rows.Next() {
		var (
			info    UploadInfo
			created int64
		)
		if err := rows.Scan(&info.Name, &info.Size, &created); err != nil {
			return nil, err
		}
		info.CreatedAt = time.Unix(0, created)
		out = append(out, info)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Clear(ctx context.Context, session string) error {
	if _, err := s.clear.ExecContext(ctx, session); err != nil {
		return fmt.Errorf("clear session %s: %w", session, err)
	}
	return nil
}

// Close releases the prepared statements and the database handle.
func (s *SQLiteStore) Close() error {
	var err error
	for _, stmt := range []*sql.Stmt{s.insert, s.get, s.list, s.clear} {
		if stmt != nil {
			err = multierr.Append(err, stmt.Close())
		}
	}
	return multierr.Append(err, s.db.Close())
}
