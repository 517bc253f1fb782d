// Package convert hands rendered HTML to an external document converter.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// ErrConversion wraps every failure reported by a converter.
var ErrConversion = errors.New("document conversion failed")

// Converter writes the document for html at outputPath.
type Converter interface {
	Convert(ctx context.Context, html []byte, outputPath string) error
}

// Func adapts a plain function to Converter.
type Func func(ctx context.Context, html []byte, outputPath string) error

// Convert calls f.
func (f Func) Convert(ctx context.Context, html []byte, outputPath string) error {
	return f(ctx, html, outputPath)
}

// Wkhtmltopdf converts through the wkhtmltopdf binary.
type Wkhtmltopdf struct {
	BinPath  string // empty means WKHTMLTOPDF_PATH, then PATH
	PageSize string
	MarginMM uint
}

// NewWkhtmltopdf returns an A4 portrait converter with one-inch margins.
func NewWkhtmltopdf(binPath string) *Wkhtmltopdf {
	return &Wkhtmltopdf{
		BinPath:  binPath,
		PageSize: wkhtmltopdf.PageSizeA4,
		MarginMM: 25,
	}
}

// Convert renders html to a PDF file at outputPath.
func (c *Wkhtmltopdf) Convert(ctx context.Context, html []byte, outputPath string) error {
	if c.BinPath != "" {
		wkhtmltopdf.SetPath(c.BinPath)
	}
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConversion, err)
	}
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(c.PageSize)
	pdfg.MarginTop.Set(c.MarginMM)
	pdfg.MarginBottom.Set(c.MarginMM)
	pdfg.MarginLeft.Set(c.MarginMM)
	pdfg.MarginRight.Set(c.MarginMM)

	pdfg.AddPage(wkhtmltopdf.NewPageReader(bytes.NewReader(html)))

	if err := pdfg.CreateContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrConversion, err)
	}
	if err := pdfg.WriteFile(outputPath); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrConversion, outputPath, err)
	}
	slog.Info("wrote PDF", "path", outputPath, "bytes", len(pdfg.Bytes()))
	return nil
}
