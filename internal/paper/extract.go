// Package paper walks a paper's question directories and assembles its answer key.
package paper

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/pavelanni/answerkey/internal/model"
	"github.com/pavelanni/answerkey/internal/parse"
)

// DocName is the document every question directory holds.
const DocName = "content.json"

// Extractor builds answer keys from paper directories.
type Extractor struct {
	parser      *parse.Parser
	layout      Layout
	concurrency int
}

// Option customizes an Extractor during construction.
type Option func(*Extractor)

// WithLayout overrides the ordinal table.
func WithLayout(l Layout) Option {
	return func(e *Extractor) {
		e.layout = l
	}
}

// WithParser overrides the document parser.
func WithParser(p *parse.Parser) Option {
	return func(e *Extractor) {
		e.parser = p
	}
}

// WithConcurrency parses up to n documents at once. n <= 1 is sequential.
func WithConcurrency(n int) Option {
	return func(e *Extractor) {
		e.concurrency = n
	}
}

// NewExtractor builds an extractor for senior common papers.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		parser: parse.New(),
		layout: SeniorCommon,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// section is one routed question directory and, after parsing, its value.
type section struct {
	pos      int
	category model.Category
	doc      string

	choice    model.ChoiceSet
	fillIn    model.FillInAnswer
	picture   model.PictureAnswer
	readAloud model.ReadAloudAnswer
	dialogue  model.DialogueSet
}

func (e *Extractor) parseSection(s *section) error {
	var err error
	switch s.category {
	case model.CategoryChoice:
		s.choice, err = e.parser.ParseChoiceSet(s.doc)
	case model.CategoryFillIn:
		s.fillIn, err = e.parser.ParseFillIn(s.doc)
	case model.CategoryPicture:
		s.picture, err = e.parser.ParsePicture(s.doc)
	case model.CategoryReadAloud:
		s.readAloud, err = e.parser.ParseReadAloud(s.doc)
	case model.CategoryDialogue:
		s.dialogue, err = e.parser.ParseDialogue(s.doc)
	}
	if err != nil {
		return fmt.Errorf("position %d (%s): %w", s.pos, s.category, err)
	}
	return nil
}

// Extract reads every routed question directory under root. Any failure aborts
// the whole paper and no answers are returned.
func (e *Extractor) Extract(ctx context.Context, root string) (*model.Answers, error) {
	sections, err := e.route(root)
	if err != nil {
		return nil, err
	}

	if e.concurrency > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.concurrency)
		for i := range sections {
			s := &sections[i]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return e.parseSection(s)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("extract %s: %w", root, err)
		}
	} else {
		for i := range sections {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := e.parseSection(&sections[i]); err != nil {
				return nil, fmt.Errorf("extract %s: %w", root, err)
			}
		}
	}

	// sections are in ordinal order whatever order they finished in.
	a := &model.Answers{}
	for _, s := range sections {
		switch s.category {
		case model.CategoryChoice:
			a.MultipleChoice = append(a.MultipleChoice, s.choice)
		case model.CategoryFillIn:
			a.FillIn = s.fillIn
		case model.CategoryPicture:
			a.PictureNarration = s.picture
		case model.CategoryReadAloud:
			a.ReadAloud = s.readAloud
		case model.CategoryDialogue:
			a.Dialogue = s.dialogue
		}
	}
	slog.Info("extracted paper", "root", root,
		"choice_sets", len(a.MultipleChoice),
		"fill_in", len(a.FillIn.Entries),
		"dialogues", len(a.Dialogue.Dialogues))
	return a, nil
}

// route lists the question directories of root and pairs each non-skipped one with its category.
func (e *Extractor) route(root string) ([]section, error) {
	dirs, err := questionDirs(root)
	if err != nil {
		return nil, err
	}
	if need := e.layout.Len(); len(dirs) < need {
		return nil, fmt.Errorf("%s: %d question dirs, layout needs %d: %w",
			root, len(dirs), need, parse.ErrMissingData)
	}

	var sections []section
	for pos, dir := range dirs {
		cat := e.layout.CategoryAt(pos)
		if cat == model.CategorySkip {
			slog.Debug("skipping question dir", "position", pos, "dir", dir)
			continue
		}
		sections = append(sections, section{
			pos:      pos,
			category: cat,
			doc:      filepath.Join(dir, DocName),
		})
	}
	return sections, nil
}

// questionDirs returns the subdirectories of root in lexical order.
func questionDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w: %w", root, parse.ErrIO, err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	return dirs, nil
}
