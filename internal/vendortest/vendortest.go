// Package vendortest builds exporter-shaped documents and paper trees for tests.
package vendortest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// DocName is the file every question directory holds.
const DocName = "content.json"

var letters = []string{"A", "B", "C", "D", "E", "F"}

// Doc is a decoded exporter document.
type Doc = map[string]any

// ChoiceDoc builds a listening group with shared material, nq questions of no options each.
// Question i answers with option i modulo no.
func ChoiceDoc(material string, nq, no int) Doc {
	qs := make([]any, 0, nq)
	for i := range nq {
		opts := make([]any, 0, no)
		for j := range no {
			opts = append(opts, map[string]any{
				"xx_mc": letters[j],
				"xx_nr": fmt.Sprintf(" option %d%s", i+1, letters[j]),
			})
		}
		qs = append(qs, map[string]any{
			"xt_value": fmt.Sprintf("own material %d", i+1),
			"xt_nr":    fmt.Sprintf("ets_th1 Question %d?", i+1),
			"xxlist":   opts,
			"answer":   letters[i%no],
		})
	}
	return Doc{"info": map[string]any{"st_nr": material, "xtlist": qs}}
}

// FillInDoc builds n fill-in entries indexed from 1.
func FillInDoc(values ...string) Doc {
	std := make([]any, 0, len(values))
	for i, v := range values {
		std = append(std, map[string]any{"xth": fmt.Sprint(i + 1), "value": v})
	}
	return Doc{"info": map[string]any{"std": std}}
}

// PictureDoc builds a picture narration document.
func PictureDoc(material string, answers []string, keyPoints string) Doc {
	std := make([]any, 0, len(answers))
	for _, a := range answers {
		std = append(std, map[string]any{"value": a})
	}
	return Doc{"info": map[string]any{"value": material, "std": std, "keypoint": keyPoints}}
}

// ReadAloudDoc builds a read-aloud document.
func ReadAloudDoc(passage string) Doc {
	return Doc{"info": map[string]any{"value": passage}}
}

// DialogueItem is one asked question for DialogueDoc.
type DialogueItem struct {
	Ask      string
	Keywords string
	Answers  []string
}

// DialogueDoc builds a dialogue document.
func DialogueDoc(items ...DialogueItem) Doc {
	qs := make([]any, 0, len(items))
	for _, it := range items {
		std := make([]any, 0, len(it.Answers))
		for _, a := range it.Answers {
			std = append(std, map[string]any{"value": a})
		}
		qs = append(qs, map[string]any{"ask": it.Ask, "keywords": it.Keywords, "std": std})
	}
	return Doc{"info": map[string]any{"question": qs}}
}

// WriteDoc writes doc as dir/content.json, creating dir, and returns the file path.
func WriteDoc(t testing.TB, dir string, doc Doc) string {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal doc: %v", err)
	}
	return WriteRaw(t, dir, data)
}

// WriteRaw writes raw bytes as dir/content.json.
func WriteRaw(t testing.TB, dir string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, DocName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Paper describes the documents of a full paper, one per ordinal position.
// Position 0 is an administrative folder without a document.
type Paper struct {
	Choices   []Doc // positions 1-9
	FillIn    Doc
	Picture   Doc
	ReadAloud Doc
	Dialogue  Doc
}

// StandardPaper is a paper with nine shared-material groups of two four-option questions,
// five fill-in entries, a picture narration with two answers and three key points,
// one passage and two single-answer dialogues.
func StandardPaper() Paper {
	p := Paper{
		FillIn: FillInDoc("Monday", "7:30", "London", "bike", "library"),
		Picture: PictureDoc("</p><p>Last weekend Tom</br>went hiking.</p",
			[]string{"</p><p>Tom went hiking.", "Tom climbed a hill."},
			"hiking</br>weekend</br>hill"),
		ReadAloud: ReadAloudDoc("</p><p>Reading opens the mind."),
		Dialogue: DialogueDoc(
			DialogueItem{Ask: "Question 1. Where is Tom going?", Keywords: "park", Answers: []string{"To the park."}},
			DialogueItem{Ask: "2. When will he leave?", Keywords: "noon", Answers: []string{"At noon."}},
		),
	}
	for i := range 9 {
		p.Choices = append(p.Choices, ChoiceDoc(fmt.Sprintf("</p><p>W: Group %d.</br>M: Sure.", i+1), 2, 4))
	}
	return p
}

// QuestionDir names the directory for an ordinal position so lexical order equals ordinal order.
func QuestionDir(root string, pos int) string {
	return filepath.Join(root, fmt.Sprintf("q%02d", pos))
}

// Write lays the paper out under root and returns root.
func (p Paper) Write(t testing.TB, root string) string {
	t.Helper()
	if err := os.MkdirAll(QuestionDir(root, 0), 0o755); err != nil {
		t.Fatalf("mkdir admin dir: %v", err)
	}
	for i, doc := range p.Choices {
		WriteDoc(t, QuestionDir(root, i+1), doc)
	}
	for pos, doc := range map[int]Doc{10: p.FillIn, 11: p.Picture, 12: p.ReadAloud, 13: p.Dialogue} {
		if doc != nil {
			WriteDoc(t, QuestionDir(root, pos), doc)
		}
	}
	return root
}
