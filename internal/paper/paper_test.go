package paper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pavelanni/answerkey/internal/model"
	"github.com/pavelanni/answerkey/internal/parse"
	"github.com/pavelanni/answerkey/internal/vendortest"
)

func TestSeniorCommonLayout(t *testing.T) {
	tests := []struct {
		pos  int
		want model.Category
	}{
		{-1, model.CategorySkip},
		{0, model.CategorySkip},
		{1, model.CategoryChoice},
		{5, model.CategoryChoice},
		{9, model.CategoryChoice},
		{10, model.CategoryFillIn},
		{11, model.CategoryPicture},
		{12, model.CategoryReadAloud},
		{13, model.CategoryDialogue},
		{14, model.CategorySkip},
		{40, model.CategorySkip},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.pos), func(t *testing.T) {
			if got := SeniorCommon.CategoryAt(tt.pos); got != tt.want {
				t.Errorf("CategoryAt(%d) = %q, want %q", tt.pos, got, tt.want)
			}
		})
	}
	if n := SeniorCommon.Len(); n != 14 {
		t.Errorf("Len() = %d, want 14", n)
	}
}

func TestExtractStandardPaper(t *testing.T) {
	root := vendortest.StandardPaper().Write(t, t.TempDir())

	a, err := NewExtractor().Extract(context.Background(), root)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(a.MultipleChoice) != 9 {
		t.Fatalf("expected 9 choice sets, got %d", len(a.MultipleChoice))
	}
	for i, cs := range a.MultipleChoice {
		want := fmt.Sprintf("W: Group %d.\nM: Sure.", i+1)
		if cs.ListeningMaterial != want {
			t.Errorf("choice set %d material = %q, want %q", i, cs.ListeningMaterial, want)
		}
		if len(cs.Questions) != 2 || len(cs.Questions[0].Options) != 4 {
			t.Errorf("choice set %d has unexpected shape: %+v", i, cs)
		}
	}
	if n := len(a.FillIn.Entries); n != 5 {
		t.Errorf("expected 5 fill-in entries, got %d", n)
	}
	if a.FillIn.Entries[2] != "3.London" {
		t.Errorf("fill-in entry 3 = %q", a.FillIn.Entries[2])
	}
	if n := len(a.PictureNarration.KeyPoints); n != 3 {
		t.Errorf("expected 3 key points, got %d", n)
	}
	if n := len(a.PictureNarration.ModelAnswers); n != 2 {
		t.Errorf("expected 2 picture answers, got %d", n)
	}
	if a.ReadAloud.PassageText != "Reading opens the mind." {
		t.Errorf("passage = %q", a.ReadAloud.PassageText)
	}
	if n := len(a.Dialogue.Dialogues); n != 2 {
		t.Errorf("expected 2 dialogues, got %d", n)
	}
}

func TestExtractIgnoresTrailingDirs(t *testing.T) {
	root := vendortest.StandardPaper().Write(t, t.TempDir())
	// Broken documents past the last routed position must not be read.
	vendortest.WriteRaw(t, vendortest.QuestionDir(root, 14), []byte("not json"))
	if err := os.Mkdir(vendortest.QuestionDir(root, 15), 0o755); err != nil {
		t.Fatal(err)
	}

	a, err := NewExtractor().Extract(context.Background(), root)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(a.MultipleChoice) != 9 {
		t.Errorf("expected 9 choice sets, got %d", len(a.MultipleChoice))
	}
}

func TestExtractMissingAnswerFailsWholePaper(t *testing.T) {
	p := vendortest.StandardPaper()
	q := p.Choices[4]["info"].(map[string]any)["xtlist"].([]any)[0].(map[string]any)
	delete(q, "answer")
	root := p.Write(t, t.TempDir())

	for _, conc := range []int{1, 4} {
		t.Run(fmt.Sprintf("concurrency %d", conc), func(t *testing.T) {
			a, err := NewExtractor(WithConcurrency(conc)).Extract(context.Background(), root)
			if a != nil {
				t.Errorf("expected no model, got %+v", a)
			}
			if !errors.Is(err, parse.ErrFieldMissing) {
				t.Fatalf("error = %v, want ErrFieldMissing", err)
			}
			var fe *parse.FieldError
			if !errors.As(err, &fe) || fe.Field != "info.xtlist[0].answer" {
				t.Errorf("error does not name the answer field: %v", err)
			}
		})
	}
}

func TestExtractMissingDocument(t *testing.T) {
	root := vendortest.StandardPaper().Write(t, t.TempDir())
	if err := os.Remove(filepath.Join(vendortest.QuestionDir(root, 12), DocName)); err != nil {
		t.Fatal(err)
	}

	_, err := NewExtractor().Extract(context.Background(), root)
	if !errors.Is(err, parse.ErrIO) {
		t.Fatalf("error = %v, want ErrIO", err)
	}
}

func TestExtractTooFewDirs(t *testing.T) {
	p := vendortest.StandardPaper()
	p.Choices = p.Choices[:3]
	p.FillIn, p.Picture, p.ReadAloud, p.Dialogue = nil, nil, nil, nil
	root := p.Write(t, t.TempDir())

	_, err := NewExtractor().Extract(context.Background(), root)
	if !errors.Is(err, parse.ErrMissingData) {
		t.Fatalf("error = %v, want ErrMissingData", err)
	}
}

func TestExtractParallelMatchesSequential(t *testing.T) {
	root := vendortest.StandardPaper().Write(t, t.TempDir())

	seq, err := NewExtractor().Extract(context.Background(), root)
	if err != nil {
		t.Fatalf("sequential Extract: %v", err)
	}
	for range 5 {
		par, err := NewExtractor(WithConcurrency(8)).Extract(context.Background(), root)
		if err != nil {
			t.Fatalf("parallel Extract: %v", err)
		}
		if !reflect.DeepEqual(seq, par) {
			t.Fatal("parallel extraction differs from sequential")
		}
	}
}

func TestExtractCanceled(t *testing.T) {
	root := vendortest.StandardPaper().Write(t, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewExtractor().Extract(ctx, root); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"165519", "common", "170002"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "settings.ini"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	papers, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("expected 2 papers, got %d", len(papers))
	}
	if papers[0].ID != "165519" || papers[1].ID != "170002" {
		t.Errorf("paper ids = %q, %q", papers[0].ID, papers[1].ID)
	}
	if papers[0].Modified.IsZero() {
		t.Error("expected modified time")
	}
}

func TestSourceHash(t *testing.T) {
	root := vendortest.StandardPaper().Write(t, t.TempDir())
	e := NewExtractor()

	h1, err := e.SourceHash(root)
	if err != nil {
		t.Fatalf("SourceHash: %v", err)
	}
	h2, _ := e.SourceHash(root)
	if h1 != h2 {
		t.Error("hash is not stable")
	}

	vendortest.WriteDoc(t, vendortest.QuestionDir(root, 12), vendortest.ReadAloudDoc("changed"))
	h3, err := e.SourceHash(root)
	if err != nil {
		t.Fatalf("SourceHash: %v", err)
	}
	if h3 == h1 {
		t.Error("hash did not change with the source")
	}
}
