package store

import (
	"testing"
	"time"

	"github.com/pavelanni/answerkey/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func saveTestPaper(t *testing.T, s *Store, id, hash string, modified time.Time) {
	t.Helper()
	err := s.SavePaper(model.CachedPaper{
		Paper:       model.Paper{ID: id, Path: "/ets/" + id, Modified: modified},
		SourceHash:  hash,
		AnswersJSON: []byte(`{"read_aloud":{"passage_text":"` + id + `"}}`),
	})
	if err != nil {
		t.Fatalf("saveTestPaper: %v", err)
	}
}

func TestPaperCache(t *testing.T) {
	s := newTestStore(t)

	// Empty DB should return zero count and no paper.
	count, err := s.PaperCount()
	if err != nil {
		t.Fatalf("PaperCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 papers, got %d", count)
	}
	cp, err := s.GetPaper("missing")
	if err != nil {
		t.Fatalf("GetPaper: %v", err)
	}
	if cp != nil {
		t.Fatalf("expected nil for missing paper, got %+v", cp)
	}

	modified := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	saveTestPaper(t, s, "2024-A", "hash1", modified)

	cp, err = s.GetPaper("2024-A")
	if err != nil {
		t.Fatalf("GetPaper: %v", err)
	}
	if cp == nil {
		t.Fatal("expected cached paper")
	}
	if cp.SourceHash != "hash1" {
		t.Errorf("SourceHash = %q, want hash1", cp.SourceHash)
	}
	if cp.Paper.Path != "/ets/2024-A" {
		t.Errorf("Path = %q", cp.Paper.Path)
	}
	if !cp.Paper.Modified.Equal(modified) {
		t.Errorf("Modified = %v, want %v", cp.Paper.Modified, modified)
	}
	if string(cp.AnswersJSON) != `{"read_aloud":{"passage_text":"2024-A"}}` {
		t.Errorf("AnswersJSON = %s", cp.AnswersJSON)
	}
	if cp.ExtractedAt.IsZero() {
		t.Error("expected ExtractedAt to be set")
	}

	// Saving again replaces the row instead of adding one.
	saveTestPaper(t, s, "2024-A", "hash2", modified)
	count, err = s.PaperCount()
	if err != nil {
		t.Fatalf("PaperCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 paper after upsert, got %d", count)
	}
	cp, _ = s.GetPaper("2024-A")
	if cp.SourceHash != "hash2" {
		t.Errorf("SourceHash after upsert = %q, want hash2", cp.SourceHash)
	}
}

func TestListPapers(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	saveTestPaper(t, s, "old", "h", base)
	saveTestPaper(t, s, "new", "h", base.Add(48*time.Hour))
	saveTestPaper(t, s, "mid", "h", base.Add(24*time.Hour))

	papers, err := s.ListPapers()
	if err != nil {
		t.Fatalf("ListPapers: %v", err)
	}
	want := []string{"new", "mid", "old"}
	if len(papers) != len(want) {
		t.Fatalf("expected %d papers, got %d", len(want), len(papers))
	}
	for i, id := range want {
		if papers[i].Paper.ID != id {
			t.Errorf("papers[%d] = %q, want %q", i, papers[i].Paper.ID, id)
		}
		if papers[i].AnswersJSON != nil {
			t.Errorf("papers[%d] should not carry answers", i)
		}
	}
}

func TestExports(t *testing.T) {
	s := newTestStore(t)
	saveTestPaper(t, s, "2024-A", "h", time.Now())

	list, err := s.ListExports("2024-A")
	if err != nil {
		t.Fatalf("ListExports: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no exports, got %d", len(list))
	}

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	formats := []model.Format{model.FormatJSON, model.FormatPDF}
	ids := make(map[string]bool)
	for i, f := range formats {
		id, err := s.AddExport(model.ExportRecord{
			PaperID:    "2024-A",
			Format:     f,
			OutputPath: "out." + string(f),
			CreatedAt:  start.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("AddExport: %v", err)
		}
		if id == "" {
			t.Fatal("expected generated export id")
		}
		ids[id] = true
	}
	if len(ids) != 2 {
		t.Fatalf("expected distinct ids, got %v", ids)
	}

	list, err = s.ListExports("2024-A")
	if err != nil {
		t.Fatalf("ListExports: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 exports, got %d", len(list))
	}
	if list[0].Format != model.FormatJSON || list[1].Format != model.FormatPDF {
		t.Errorf("unexpected export order: %s, %s", list[0].Format, list[1].Format)
	}
	if list[1].OutputPath != "out.pdf" {
		t.Errorf("OutputPath = %q", list[1].OutputPath)
	}

	other, err := s.ListExports("2024-B")
	if err != nil {
		t.Fatalf("ListExports: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no exports for other paper, got %d", len(other))
	}
}

func TestExplicitExportID(t *testing.T) {
	s := newTestStore(t)
	id, err := s.AddExport(model.ExportRecord{ID: "fixed", PaperID: "p", Format: model.FormatHTML, OutputPath: "-"})
	if err != nil {
		t.Fatalf("AddExport: %v", err)
	}
	if id != "fixed" {
		t.Errorf("id = %q, want fixed", id)
	}
}
