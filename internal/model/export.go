package model

import "time"

// ExportRecord is one artifact written for a paper.
type ExportRecord struct {
	ID         string    `json:"id"`
	PaperID    string    `json:"paper_id"`
	Format     Format    `json:"format"`
	OutputPath string    `json:"output_path"`
	CreatedAt  time.Time `json:"created_at"`
}

// CachedPaper is an extraction result stored with the hash of its source documents.
type CachedPaper struct {
	Paper       Paper     `json:"paper"`
	SourceHash  string    `json:"source_hash"`
	AnswersJSON []byte    `json:"-"`
	ExtractedAt time.Time `json:"extracted_at"`
}
