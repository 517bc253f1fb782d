package store

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pavelanni/answerkey/internal/model"
)

// AddExport records an artifact written for a paper and returns its id.
func (s *Store) AddExport(rec model.ExportRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO exports (id, paper_id, format, output_path, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.PaperID, rec.Format, rec.OutputPath, rec.CreatedAt,
	)
	if err != nil {
		slog.Error("failed to record export", "paper", rec.PaperID, "error", err)
		return "", err
	}
	return rec.ID, nil
}

// ListExports returns the exports of a paper in creation order.
func (s *Store) ListExports(paperID string) ([]model.ExportRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, paper_id, format, output_path, created_at FROM exports
		 WHERE paper_id = ? ORDER BY created_at, id`, paperID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recs []model.ExportRecord
	for rows.Next() {
		var r model.ExportRecord
		if err := rows.Scan(&r.ID, &r.PaperID, &r.Format, &r.OutputPath, &r.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
