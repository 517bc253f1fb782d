// Package render turns an answer key into output artifacts: JSON, YAML, HTML and PDF.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/pavelanni/answerkey/internal/i18n"
	"github.com/pavelanni/answerkey/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	paperTemplate = "paper.html.tmpl"
	indexTemplate = "index.html.tmpl"
)

// Renderer builds self-contained HTML documents. Construct one per process and share it.
type Renderer struct {
	tmpl *template.Template
	tr   *i18n.Translator
}

// NewRenderer parses the embedded templates.
func NewRenderer(tr *i18n.Translator) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, tr: tr}, nil
}

// Render returns the answer key document in memory.
func (r *Renderer) Render(ctx context.Context, p model.Paper, a *model.Answers) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Component(p, a).Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Component streams the answer key document.
func (r *Renderer) Component(p model.Paper, a *model.Answers) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return r.execute(w, paperTemplate, buildDocument(ctx, r.tr, p, a))
	})
}

// IndexComponent streams the list of known papers.
func (r *Renderer) IndexComponent(papers []model.Paper) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return r.execute(w, indexTemplate, indexView{
			Title:  r.tr.T(ctx, "AppTitle"),
			Lang:   r.tr.Lang(),
			L:      labels(ctx, r.tr),
			Papers: papers,
		})
	})
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("execute %s: %w: %w", name, ErrRender, err)
	}
	return nil
}
