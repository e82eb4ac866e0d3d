package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"

	"codexdb/pkg/common"

	_ "modernc.org/sqlite"
)

// SQLiteBackend keeps the catalog in a single table. seq preserves the
// order records were saved in, which decides tree shape on reload.
type SQLiteBackend struct {
	db      *sql.DB
	path    string
	existed bool
}

func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	existed := true
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		existed = false
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS codices (
		seq    INTEGER PRIMARY KEY,
		id     INTEGER NOT NULL,
		title  TEXT NOT NULL,
		author TEXT NOT NULL
	);`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("init table: %w", err)
	}

	return &SQLiteBackend{db: db, path: path, existed: existed}, nil
}

func (s *SQLiteBackend) Name() string { return s.path }

func (s *SQLiteBackend) Load() ([]*common.Record, error) {
	if !s.existed {
		return nil, fmt.Errorf("%s: %w", s.path, fs.ErrNotExist)
	}

	rows, err := s.db.Query("SELECT id, title, author FROM codices ORDER BY seq ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*common.Record
	for rows.Next() {
		var (
			id            int
			title, author string
		)
		if err := rows.Scan(&id, &title, &author); err != nil {
			return nil, err
		}
		records = append(records, common.NewRecord(id, title, author))
	}
	return records, rows.Err()
}

// Save replaces every row in one transaction.
func (s *SQLiteBackend) Save(records iter.Seq[*common.Record]) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec("DELETE FROM codices"); err != nil {
		tx.Rollback()
		return 0, err
	}

	stmt, err := tx.Prepare("INSERT INTO codices (seq, id, title, author) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	n := 0
	for rec := range records {
		if _, err := stmt.Exec(n, rec.ID, rec.Title, rec.Author); err != nil {
			tx.Rollback()
			return 0, err
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	s.existed = true
	return n, nil
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
