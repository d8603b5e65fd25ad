package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/ShayCichocki/orbit/pkg/models"
)

// SQLStore provides SQLite-backed storage for orb records.
// Record insertion order is preserved via an explicit position column.
type SQLStore struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// NewSQLStore opens (or creates) the catalog database at the given path.
// It creates the parent directories if they don't exist.
func NewSQLStore(dbPath string) (*SQLStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &SQLStore{db: conn, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Path returns the path to the database file.
func (s *SQLStore) Path() string {
	return s.dbPath
}

const migrationV1Orbs = `
CREATE TABLE IF NOT EXISTS orbs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	category TEXT NOT NULL,
	description TEXT,
	automation_reference TEXT,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS orb_keywords (
	orb_id TEXT NOT NULL REFERENCES orbs(id) ON DELETE CASCADE,
	keyword TEXT NOT NULL,
	seq INTEGER NOT NULL,
	PRIMARY KEY (orb_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_orbs_position ON orbs(position);
CREATE INDEX IF NOT EXISTS idx_orb_keywords_orb ON orb_keywords(orb_id);
`

// Migrate creates the necessary tables and indexes if they don't exist.
func (s *SQLStore) Migrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS catalog_schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM catalog_schema_version")
	if err := row.Scan(&currentVersion); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migrationV1Orbs},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := s.db.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return err
		}

		if _, err := tx.Exec("INSERT INTO catalog_schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

// SaveOrb inserts or replaces one orb record, appending it to the catalog
// order when new. Used by catalog administration, never by evaluation.
func (s *SQLStore) SaveOrb(orb models.Orb) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save orb: %w", err)
	}

	// Keep the existing position on replace, append at the end when new.
	var position int
	err = tx.QueryRow("SELECT position FROM orbs WHERE id = ?", orb.ID).Scan(&position)
	if err == sql.ErrNoRows {
		err = tx.QueryRow("SELECT COALESCE(MAX(position), -1) + 1 FROM orbs").Scan(&position)
	}
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("resolve orb position: %w", err)
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO orbs (id, title, category, description, automation_reference, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`, orb.ID, orb.Title, orb.Category, nullString(orb.Description), nullString(orb.AutomationReference), position)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("save orb: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM orb_keywords WHERE orb_id = ?", orb.ID); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear orb keywords: %w", err)
	}
	for i, kw := range orb.Keywords {
		if _, err := tx.Exec("INSERT INTO orb_keywords (orb_id, keyword, seq) VALUES (?, ?, ?)", orb.ID, kw, i); err != nil {
			tx.Rollback()
			return fmt.Errorf("save orb keyword: %w", err)
		}
	}

	return tx.Commit()
}

// Load reads all orb records in insertion order.
func (s *SQLStore) Load(ctx context.Context) ([]models.Orb, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, category, description, automation_reference
		FROM orbs
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("query orbs: %w", err)
	}
	defer rows.Close()

	var orbs []models.Orb
	index := make(map[string]int)
	for rows.Next() {
		var orb models.Orb
		var description, reference sql.NullString
		if err := rows.Scan(&orb.ID, &orb.Title, &orb.Category, &description, &reference); err != nil {
			return nil, fmt.Errorf("scan orb: %w", err)
		}
		orb.Description = description.String
		orb.AutomationReference = reference.String
		index[orb.ID] = len(orbs)
		orbs = append(orbs, orb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orbs: %w", err)
	}

	kwRows, err := s.db.QueryContext(ctx, `
		SELECT orb_id, keyword
		FROM orb_keywords
		ORDER BY orb_id, seq
	`)
	if err != nil {
		return nil, fmt.Errorf("query orb keywords: %w", err)
	}
	defer kwRows.Close()

	for kwRows.Next() {
		var orbID, keyword string
		if err := kwRows.Scan(&orbID, &keyword); err != nil {
			return nil, fmt.Errorf("scan orb keyword: %w", err)
		}
		if pos, ok := index[orbID]; ok {
			orbs[pos].Keywords = append(orbs[pos].Keywords, keyword)
		}
	}
	if err := kwRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orb keywords: %w", err)
	}

	return orbs, nil
}

// nullString converts a string to sql.NullString, treating empty as null.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
