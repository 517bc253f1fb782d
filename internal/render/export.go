package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pavelanni/answerkey/internal/convert"
	"github.com/pavelanni/answerkey/internal/model"
)

// Exporter produces every output format of an answer key.
type Exporter struct {
	html *Renderer
	conv convert.Converter
}

// NewExporter combines the HTML renderer with a document converter. conv may be
// nil when PDF output is not needed.
func NewExporter(html *Renderer, conv convert.Converter) *Exporter {
	return &Exporter{html: html, conv: conv}
}

// Export renders a in format f. With an empty out the artifact is returned in
// memory; otherwise it is written to out and nil is returned.
func (e *Exporter) Export(ctx context.Context, f model.Format, p model.Paper, a *model.Answers, out string) ([]byte, error) {
	var data []byte
	var err error
	switch f {
	case model.FormatJSON:
		data, err = EncodeJSON(a)
	case model.FormatYAML:
		data, err = EncodeYAML(a)
	case model.FormatHTML:
		data, err = e.html.Render(ctx, p, a)
	case model.FormatPDF:
		return e.pdf(ctx, p, a, out)
	default:
		return nil, fmt.Errorf("unknown format %q: %w", f, ErrRender)
	}
	if err != nil {
		return nil, err
	}
	if out == "" {
		return data, nil
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}
	return nil, nil
}

func (e *Exporter) pdf(ctx context.Context, p model.Paper, a *model.Answers, out string) ([]byte, error) {
	if e.conv == nil {
		return nil, fmt.Errorf("no PDF converter configured: %w", convert.ErrConversion)
	}
	html, err := e.html.Render(ctx, p, a)
	if err != nil {
		return nil, err
	}
	if out != "" {
		return nil, e.convert(ctx, html, out)
	}

	dir, err := os.MkdirTemp("", "answerkey-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)
	tmp := filepath.Join(dir, p.ID+".pdf")
	if err := e.convert(ctx, html, tmp); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(tmp)
	if err != nil {
		return nil, fmt.Errorf("read converted document: %w: %w", convert.ErrConversion, err)
	}
	return data, nil
}

func (e *Exporter) convert(ctx context.Context, html []byte, out string) error {
	err := e.conv.Convert(ctx, html, out)
	if err != nil && !errors.Is(err, convert.ErrConversion) {
		return fmt.Errorf("%w: %w", convert.ErrConversion, err)
	}
	return err
}
