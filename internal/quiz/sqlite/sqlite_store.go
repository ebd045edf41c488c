package sqlite

import (
	"context"
	"database/sql"
	"net/url"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) a bank database for writing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		path = "questions.db"
	}
	dsn, err := fileDSN(path, "rwc")
	if err != nil {
		return nil, err
	}
	return open(path, dsn, true)
}

// OpenReadOnly opens an existing bank database without creating it.
func OpenReadOnly(path string) (*SQLiteStore, error) {
	dsn, err := fileDSN(path, "ro")
	if err != nil {
		return nil, err
	}
	return open(path, dsn, false)
}

// fileDSN builds a file: URI so that '?', '#' and '%' in path stay part of
// the file name.
func fileDSN(path, mode string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dsn := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: url.Values{"mode": {mode}}.Encode(),
	}
	return dsn.String(), nil
}

func open(path, dsn string, writable bool) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &SQLiteStore{db: db, path: path}
	if writable {
		if err := store.initSchema(context.Background()); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
