
// Package history persists merged catalog snapshots in SQLite so that
// renderers can attach short per-item trend series.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"minirates/internal/catalog"
)

// MaxSnapshots is how many refresh cycles are retained per store.
const MaxSnapshots = 64

type Store struct {
	sql *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", dbPath)
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1) // SQLite best practice for embedded use
	sqldb.SetConnMaxLifetime(0)

	st := &Store{sql: sqldb}
	if err := st.migrate(context.Background()); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return st, nil
}

func (s *Store) Close() error {
	return s.sql.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			snapshot_id TEXT PRIMARY KEY,
			taken_at INTEGER NOT NULL,
			catalog_ts TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS points (
			snapshot_id TEXT NOT NULL REFERENCES snapshots(snapshot_id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			name TEXT NOT NULL,
			value INTEGER NOT NULL,
			PRIMARY KEY (snapshot_id, category, name)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_points_item ON points(category, name);`,
	}
	for _, q := range stmts {
		if _, err := s.sql.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// Record stores one point per item of the merged catalog, then prunes
// old snapshots past MaxSnapshots. Items without a usable value are
// skipped.
func (s *Store) Record(ctx context.Context, m catalog.Merged) error {
	tx, err := s.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	snapID := "snap_" + uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots(snapshot_id, taken_at, catalog_ts) VALUES(?,?,?)`,
		snapID, time.Now().Unix(), m.Timestamp,
	); err != nil {
		return err
	}

	for _, cat := range []catalog.Category{catalog.CategoryFX, catalog.CategoryGold, catalog.CategoryCrypto} {
		for _, it := range m.Bucket(cat) {
			v, ok := it.Value()
			if !ok {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO points(snapshot_id, category, name, value) VALUES(?,?,?,?)`,
				snapID, string(cat), it.Name, v,
			); err != nil {
				return err
			}
		}
	}

	// rowid breaks ties between snapshots taken within the same second
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM snapshots WHERE snapshot_id NOT IN (
			SELECT snapshot_id FROM snapshots ORDER BY taken_at DESC, rowid DESC LIMIT ?
		)`, MaxSnapshots,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// Series returns up to limit values for one item, oldest first.
func (s *Store) Series(ctx context.Context, cat catalog.Category, name string, limit int) ([]int64, error) {
	if limit <= 0 || limit > MaxSnapshots {
		limit = MaxSnapshots
	}
	rows, err := s.sql.QueryContext(ctx,
		`SELECT p.value FROM points p
		 JOIN snapshots sn ON sn.snapshot_id = p.snapshot_id
		 WHERE p.category = ? AND p.name = ?
		 ORDER BY sn.taken_at DESC, sn.rowid DESC LIMIT ?`,
		string(cat), name, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vals []int64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Query is newest-first for the LIMIT, callers want chronological.
	for i, j := 0, len(vals)-1; i < j; i, j = i+1, j-1 {
		vals[i], vals[j] = vals[j], vals[i]
	}
	return vals, nil
}

// Attach fills RateItem.History for every item in the catalog from the
// stored series. Failures leave the item without history.
func (s *Store) Attach(ctx context.Context, m *catalog.Merged, limit int) {
	for _, cat := range []catalog.Category{catalog.CategoryFX, catalog.CategoryGold, catalog.CategoryCrypto} {
		bucket := m.Bucket(cat)
		for i := range bucket {
			series, err := s.Series(ctx, cat, bucket[i].Name, limit)
			if err != nil || len(series) == 0 {
				continue
			}
			bucket[i].History = series
		}
	}
}
