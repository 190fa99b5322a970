package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"macromentor/nutrition"
)

// SQLiteCatalogState reads the catalog from a foods table and renders it as
// the JSON catalog document.
type SQLiteCatalogState struct {
	db *sqlx.DB
}

type foodRow struct {
	Food     string  `db:"food" json:"food"`
	Calories float64 `db:"calories" json:"calories"`
	Protein  float64 `db:"protein" json:"protein"`
	Type     string  `db:"type" json:"type"`
}

// OpenSQLiteCatalogState opens or creates the catalog database at path.
func OpenSQLiteCatalogState(path string) (*SQLiteCatalogState, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	s := &SQLiteCatalogState{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate catalog db: %w", err)
	}
	return s, nil
}

func (s *SQLiteCatalogState) Close() error {
	return s.db.Close()
}

func (s *SQLiteCatalogState) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS foods (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		calories REAL NOT NULL,
		protein REAL NOT NULL,
		type TEXT NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Seed upserts foods by name. New foods are appended after existing ones.
func (s *SQLiteCatalogState) Seed(ctx context.Context, foods []nutrition.Food) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, f := range foods {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO foods (name, calories, protein, type) VALUES (?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				calories = excluded.calories,
				protein = excluded.protein,
				type = excluded.type`,
			f.Name, f.Calories, f.Protein, string(f.Diet))
		if err != nil {
			return fmt.Errorf("seed food %q: %w", f.Name, err)
		}
	}
	return tx.Commit()
}

// Load returns the foods in insertion order as a JSON array.
func (s *SQLiteCatalogState) Load(ctx context.Context) ([]byte, error) {
	rows := make([]foodRow, 0)
	if err := s.db.SelectContext(ctx, &rows,
		"SELECT name AS food, calories, protein, type FROM foods ORDER BY id"); err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	return json.Marshal(rows)
}
