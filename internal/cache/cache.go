package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"votd-tui/internal/bible"
)

const (
	dbFileName = "votd.db"
	dayLayout  = "2006-01-02"
)

const schema = `
CREATE TABLE IF NOT EXISTS votd (
	day      TEXT PRIMARY KEY,
	citation TEXT NOT NULL,
	passage  TEXT NOT NULL,
	images   TEXT NOT NULL DEFAULT '[]',
	version  TEXT NOT NULL,
	fetched  INTEGER NOT NULL
)`

// Cache stores one verse of the day per calendar day.
type Cache struct {
	dir string
	db  *sql.DB
}

// Open creates the cache directory if needed and opens the database in it.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	// One connection; concurrent handlers serialize through it.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{dir: dir, db: db}, nil
}

func (c *Cache) Dir() string { return c.dir }

func (c *Cache) Close() error { return c.db.Close() }

// Day formats t as the cache key for its calendar day.
func Day(t time.Time) string {
	return t.Format(dayLayout)
}

// Get returns the cached verse for day. ok is false on a miss.
func (c *Cache) Get(ctx context.Context, day string) (v *bible.VerseOfDay, ok bool, err error) {
	var images string
	v = &bible.VerseOfDay{}

	row := c.db.QueryRowContext(ctx,
		`SELECT citation, passage, images, version FROM votd WHERE day = ?`, day)
	if err := row.Scan(&v.Citation, &v.Passage, &images, &v.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cached verse: %w", err)
	}

	if err := json.Unmarshal([]byte(images), &v.Images); err != nil {
		return nil, false, fmt.Errorf("decoding cached images: %w", err)
	}
	v.Normalize()
	return v, true, nil
}

// Put stores v for day, replacing any earlier entry.
func (c *Cache) Put(ctx context.Context, day string, v *bible.VerseOfDay) error {
	images := v.Images
	if images == nil {
		images = []string{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return err
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO votd (day, citation, passage, images, version, fetched)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		day, v.Citation, v.Passage, string(data), v.Version, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("writing cached verse: %w", err)
	}
	return nil
}

// Prune removes entries older than before and returns how many went.
func (c *Cache) Prune(ctx context.Context, before string) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM votd WHERE day < ?`, before)
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}

// Days lists the cached days, newest first.
func (c *Cache) Days(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT day FROM votd ORDER BY day DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}
