package textnorm

import (
	"slices"
	"testing"
)

func TestStripLeadingMarkup(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		tokens []string
		want   string
	}{
		{"no tokens", "</p><p>text", nil, "</p><p>text"},
		{"single", "</p><p>text", []string{ParagraphGap}, "text"},
		{"repeated", "</p><p></p><p>text", []string{ParagraphGap}, "text"},
		{"stem prefixes", "ets_th1 ets_th2 What is it?", []string{"ets_th1 ", "ets_th2 "}, "What is it?"},
		{"reverse order in input", "ets_th2 ets_th1 Why?", []string{"ets_th1 ", "ets_th2 "}, "Why?"},
		{"only leading", "a</p><p>b", []string{ParagraphGap}, "a</p><p>b"},
		{"empty token ignored", "abc", []string{""}, "abc"},
		{"empty input", "", []string{ParagraphGap}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripLeadingMarkup(tt.in, tt.tokens...)
			if got != tt.want {
				t.Errorf("StripLeadingMarkup(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripLeadingMarkupIdempotent(t *testing.T) {
	inputs := []string{
		"", "plain", "</p><p></p><p>x", "ets_th1 ets_th1 ets_th2 stem", "Question 1. 1. Where?",
	}
	tokens := []string{ParagraphGap, "ets_th1 ", "ets_th2 ", "Question 1. ", "1. "}
	for _, in := range inputs {
		once := StripLeadingMarkup(in, tokens...)
		twice := StripLeadingMarkup(once, tokens...)
		if once != twice {
			t.Errorf("not idempotent for %q: once %q, twice %q", in, once, twice)
		}
	}
}

func TestStripAllMarkupPairs(t *testing.T) {
	got := StripAllMarkupPairs("<p>Tom: Hi.</br>Ann: Hello.</p><p>End</p>")
	want := "Tom: Hi.\nAnn: Hello.End"
	if got != want {
		t.Errorf("StripAllMarkupPairs = %q, want %q", got, want)
	}
}

func TestSplitOnDelimiter(t *testing.T) {
	got := SplitOnDelimiter(" first </br>second</br>  third ", Break)
	want := []string{"first", "second", "third"}
	if !slices.Equal(got, want) {
		t.Errorf("SplitOnDelimiter = %q, want %q", got, want)
	}

	got = SplitOnDelimiter("single", Break)
	if !slices.Equal(got, []string{"single"}) {
		t.Errorf("SplitOnDelimiter(single) = %q", got)
	}
}

func TestBreakToLines(t *testing.T) {
	got := BreakToLines("W: Morning. </br> M: Hi.")
	if got != "W: Morning.\nM: Hi." {
		t.Errorf("BreakToLines = %q", got)
	}
}

func TestEnsureSuffix(t *testing.T) {
	if got := EnsureSuffix("text</p>", ParagraphClose); got != "text</p>" {
		t.Errorf("EnsureSuffix kept = %q", got)
	}
	if got := EnsureSuffix("text</", ParagraphClose); got != "text</</p>" {
		t.Errorf("EnsureSuffix appended = %q", got)
	}
}
