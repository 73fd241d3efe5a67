package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/partminder/core/factory"
	"github.com/kilianp07/partminder/core/model"
	"github.com/kilianp07/partminder/core/partstore"
)

// SQLiteStore persists the part list in a SQLite database. Save rewrites
// the table inside a single transaction.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "partminder.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	schema := `CREATE TABLE IF NOT EXISTS parts (
        position INTEGER PRIMARY KEY,
        name TEXT NOT NULL UNIQUE,
        last_changed TEXT NOT NULL,
        interval_months INTEGER NOT NULL,
        last_mileage INTEGER NOT NULL,
        interval_km INTEGER NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Load returns the parts ordered by position. Rows whose values do not
// decode into a part are reported as skipped.
func (s *SQLiteStore) Load(ctx context.Context) (partstore.LoadResult, error) {
	var res partstore.LoadResult
	rows, err := s.db.QueryContext(ctx, `SELECT position, name, last_changed, interval_months, last_mileage, interval_km
        FROM parts ORDER BY position`)
	if err != nil {
		return res, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var pos, months, mileage, km int64
		var name, changed string
		if err := rows.Scan(&pos, &name, &changed, &months, &mileage, &km); err != nil {
			return res, err
		}
		p, err := partstore.DecodeRow([]string{
			name,
			changed,
			strconv.FormatInt(months, 10),
			strconv.FormatInt(mileage, 10),
			strconv.FormatInt(km, 10),
		})
		if err != nil {
			res.Skipped = append(res.Skipped, partstore.SkippedLine{Line: int(pos), Reason: err.Error()})
			continue
		}
		res.Parts = append(res.Parts, p)
	}
	if err := rows.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// Save replaces every row with parts.
func (s *SQLiteStore) Save(ctx context.Context, parts []model.Part) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM parts`); err != nil {
		return err
	}
	for i, p := range parts {
		f := partstore.EncodeRow(p)
		if _, err := tx.ExecContext(ctx, `INSERT INTO parts (position, name, last_changed, interval_months, last_mileage, interval_km)
            VALUES (?, ?, ?, ?, ?, ?)`,
			i+1, f[0], f[1], p.IntervalMonths, p.LastMileage, p.IntervalKm); err != nil {
			return fmt.Errorf("insert %s: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

type sqliteConf struct {
	Path string `json:"path"`
}

func init() {
	_ = partstore.Register("sqlite", func(conf map[string]any) (partstore.Store, error) {
		var c sqliteConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewSQLiteStore(c.Path)
	})
}
