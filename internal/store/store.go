package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pavelanni/answerkey/internal/model"

	_ "modernc.org/sqlite"
)

// Store caches extracted answer keys and the history of written exports.
type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS papers (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		modified_at DATETIME NOT NULL,
		source_hash TEXT NOT NULL,
		answers_json BLOB NOT NULL,
		extracted_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exports (
		id TEXT PRIMARY KEY,
		paper_id TEXT NOT NULL,
		format TEXT NOT NULL,
		output_path TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (paper_id) REFERENCES papers(id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SavePaper inserts or replaces the cached extraction of a paper.
func (s *Store) SavePaper(cp model.CachedPaper) error {
	if cp.ExtractedAt.IsZero() {
		cp.ExtractedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO papers (id, path, modified_at, source_hash, answers_json, extracted_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   path = excluded.path,
		   modified_at = excluded.modified_at,
		   source_hash = excluded.source_hash,
		   answers_json = excluded.answers_json,
		   extracted_at = excluded.extracted_at`,
		cp.Paper.ID, cp.Paper.Path, cp.Paper.Modified, cp.SourceHash, cp.AnswersJSON, cp.ExtractedAt,
	)
	return err
}

// GetPaper returns the cached extraction for a paper id, or nil if there is none.
func (s *Store) GetPaper(id string) (*model.CachedPaper, error) {
	var cp model.CachedPaper
	err := s.db.QueryRow(
		`SELECT id, path, modified_at, source_hash, answers_json, extracted_at FROM papers WHERE id = ?`, id,
	).Scan(&cp.Paper.ID, &cp.Paper.Path, &cp.Paper.Modified, &cp.SourceHash, &cp.AnswersJSON, &cp.ExtractedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// ListPapers returns every cached paper without its answers, newest first.
func (s *Store) ListPapers() ([]model.CachedPaper, error) {
	rows, err := s.db.Query(
		`SELECT id, path, modified_at, source_hash, extracted_at FROM papers ORDER BY modified_at DESC, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var papers []model.CachedPaper
	for rows.Next() {
		var cp model.CachedPaper
		if err := rows.Scan(&cp.Paper.ID, &cp.Paper.Path, &cp.Paper.Modified, &cp.SourceHash, &cp.ExtractedAt); err != nil {
			return nil, err
		}
		papers = append(papers, cp)
	}
	return papers, rows.Err()
}

// PaperCount returns the number of cached papers.
func (s *Store) PaperCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM papers`).Scan(&count)
	return count, err
}
