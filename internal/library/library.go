// Package library serves the papers of one resource directory, reusing cached
// extractions while a paper's documents are unchanged.
package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pavelanni/answerkey/internal/model"
	"github.com/pavelanni/answerkey/internal/paper"
	"github.com/pavelanni/answerkey/internal/render"
	"github.com/pavelanni/answerkey/internal/store"
)

// ErrNotFound is returned for paper ids that do not name a paper directory.
var ErrNotFound = errors.New("paper not found")

// Library binds a resource directory to the extractor, the exporter and an optional cache.
type Library struct {
	dir       string
	extractor *paper.Extractor
	exporter  *render.Exporter
	store     *store.Store
}

// New creates a library. st may be nil to extract on every request.
func New(dir string, ex *paper.Extractor, exp *render.Exporter, st *store.Store) *Library {
	return &Library{dir: dir, extractor: ex, exporter: exp, store: st}
}

// Dir returns the resource directory.
func (l *Library) Dir() string {
	return l.dir
}

// Papers lists the papers currently in the resource directory.
func (l *Library) Papers() ([]model.Paper, error) {
	return paper.Discover(l.dir)
}

// Find opens the paper with the given id.
func (l *Library) Find(id string) (model.Paper, error) {
	if id == "" || id == "." || id == ".." || id == "common" || strings.ContainsAny(id, `/\`) {
		return model.Paper{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	p, err := paper.Open(filepath.Join(l.dir, id))
	if err != nil {
		return model.Paper{}, fmt.Errorf("%q: %w: %w", id, ErrNotFound, err)
	}
	return p, nil
}

// Answers returns the answer key of p. A cached result is used when the
// paper's source hash still matches, unless force is set.
func (l *Library) Answers(ctx context.Context, p model.Paper, force bool) (*model.Answers, error) {
	if l.store == nil {
		return l.extractor.Extract(ctx, p.Path)
	}

	hash, err := l.extractor.SourceHash(p.Path)
	if err != nil {
		return nil, err
	}
	if !force {
		cached, err := l.store.GetPaper(p.ID)
		if err != nil {
			return nil, fmt.Errorf("check cache for %s: %w", p.ID, err)
		}
		if cached != nil && cached.SourceHash == hash {
			a, err := render.DecodeJSON(cached.AnswersJSON)
			if err == nil {
				slog.Debug("paper unchanged, using cache", "paper", p.ID)
				return a, nil
			}
			slog.Warn("cached answers unreadable, extracting again", "paper", p.ID, "error", err)
		}
	}

	a, err := l.extractor.Extract(ctx, p.Path)
	if err != nil {
		return nil, err
	}
	data, err := render.EncodeJSON(a)
	if err != nil {
		return nil, err
	}
	if err := l.store.SavePaper(model.CachedPaper{Paper: p, SourceHash: hash, AnswersJSON: data}); err != nil {
		return nil, fmt.Errorf("cache %s: %w", p.ID, err)
	}
	return a, nil
}

// Export renders the answer key of p in format f. With an empty out the
// artifact is returned in memory. Exports written to a file are recorded in
// the cache history.
func (l *Library) Export(ctx context.Context, f model.Format, p model.Paper, out string, force bool) ([]byte, error) {
	a, err := l.Answers(ctx, p, force)
	if err != nil {
		return nil, err
	}
	data, err := l.exporter.Export(ctx, f, p, a, out)
	if err != nil {
		return nil, err
	}
	if out != "" && l.store != nil {
		id, err := l.store.AddExport(model.ExportRecord{PaperID: p.ID, Format: f, OutputPath: out})
		if err != nil {
			return nil, fmt.Errorf("record export: %w", err)
		}
		slog.Info("export recorded", "id", id, "paper", p.ID, "format", f, "path", out)
	}
	return data, nil
}

// History returns the recorded exports of a paper. It is empty without a cache.
func (l *Library) History(paperID string) ([]model.ExportRecord, error) {
	if l.store == nil {
		return nil, nil
	}
	return l.store.ListExports(paperID)
}
