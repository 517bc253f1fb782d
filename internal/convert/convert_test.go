package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFuncAdapter(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.pdf")
	var c Converter = Func(func(_ context.Context, html []byte, outputPath string) error {
		return os.WriteFile(outputPath, html, 0o644)
	})

	if err := c.Convert(context.Background(), []byte("<p>x</p>"), out); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "<p>x</p>" {
		t.Errorf("output = %q", data)
	}
}

func TestWkhtmltopdfMissingBinary(t *testing.T) {
	c := NewWkhtmltopdf(filepath.Join(t.TempDir(), "no-such-wkhtmltopdf"))
	t.Setenv("PATH", t.TempDir())

	err := c.Convert(context.Background(), []byte("<p>x</p>"), filepath.Join(t.TempDir(), "out.pdf"))
	if !errors.Is(err, ErrConversion) {
		t.Errorf("error = %v, want ErrConversion", err)
	}
}

func TestNewWkhtmltopdfDefaults(t *testing.T) {
	c := NewWkhtmltopdf("")
	if c.MarginMM != 25 {
		t.Errorf("MarginMM = %d, want 25", c.MarginMM)
	}
	if c.PageSize != "A4" {
		t.Errorf("PageSize = %q, want A4", c.PageSize)
	}
}
