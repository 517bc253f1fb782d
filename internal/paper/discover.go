package paper

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pavelanni/answerkey/internal/model"
	"github.com/pavelanni/answerkey/internal/parse"
)

// sharedDir holds resources common to all papers, not a paper itself.
const sharedDir = "common"

// DefaultResourceDir is where the exam client keeps downloaded papers.
func DefaultResourceDir() string {
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "ETS")
	}
	return "ETS"
}

// Discover lists the papers under the exam client's resource directory.
func Discover(resourceDir string) ([]model.Paper, error) {
	entries, err := os.ReadDir(resourceDir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w: %w", resourceDir, parse.ErrIO, err)
	}
	var papers []model.Paper
	for _, e := range entries {
		if !e.IsDir() || e.Name() == sharedDir {
			continue
		}
		p, err := Open(filepath.Join(resourceDir, e.Name()))
		if err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// Open describes one paper directory. The paper id is the directory name.
func Open(path string) (model.Paper, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.Paper{}, fmt.Errorf("stat %s: %w: %w", path, parse.ErrIO, err)
	}
	if !info.IsDir() {
		return model.Paper{}, fmt.Errorf("%s is not a directory: %w", path, parse.ErrIO)
	}
	return model.Paper{
		ID:       filepath.Base(path),
		Path:     path,
		Modified: info.ModTime(),
	}, nil
}

// SourceHash digests the routed documents of a paper in ordinal order,
// so a cached extraction can be reused while the export is unchanged.
func (e *Extractor) SourceHash(root string) (string, error) {
	sections, err := e.route(root)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	for _, s := range sections {
		data, err := os.ReadFile(s.doc)
		if err != nil {
			return "", fmt.Errorf("read %s: %w: %w", s.doc, parse.ErrIO, err)
		}
		fmt.Fprintf(h, "%d:%s:%d\n", s.pos, s.category, len(data))
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
