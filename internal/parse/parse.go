// Package parse turns the exporter's per-question JSON documents into typed answer values.
package parse

import (
	"fmt"
	"log/slog"

	"github.com/pavelanni/answerkey/internal/model"
	"github.com/pavelanni/answerkey/internal/textnorm"
)

// Parser reads documents with a fixed field layout and cleanup table.
type Parser struct {
	Schema  Schema
	Cleanup Cleanup
}

// New returns a parser for the vendor layout with the default cleanup.
func New() *Parser {
	return &Parser{Schema: VendorSchema(), Cleanup: DefaultCleanup()}
}

// ParseChoiceSet reads one listening group. When the shared material is empty,
// the first question's own material is used instead.
func (p *Parser) ParseChoiceSet(path string) (model.ChoiceSet, error) {
	f := p.Schema.Choice
	doc, err := load(path)
	if err != nil {
		return model.ChoiceSet{}, err
	}

	var set model.ChoiceSet
	if set.ListeningMaterial, err = doc.str(f.Material); err != nil {
		return model.ChoiceSet{}, err
	}
	items, err := doc.list(f.Questions)
	if err != nil {
		return model.ChoiceSet{}, err
	}
	if len(items) == 0 {
		return model.ChoiceSet{}, &FieldError{Doc: path, Field: f.Questions, Err: ErrMissingData}
	}

	if set.ListeningMaterial == "" {
		// One-material-per-question layouts keep it on the first question.
		if set.ListeningMaterial, err = items[0].str(f.QuestionMaterial); err != nil {
			return model.ChoiceSet{}, err
		}
	}

	set.Questions = make([]model.ChoiceQuestion, 0, len(items))
	for _, it := range items {
		q, err := p.choiceQuestion(it)
		if err != nil {
			return model.ChoiceSet{}, err
		}
		set.Questions = append(set.Questions, q)
	}

	if p.Cleanup.Choice != nil {
		p.Cleanup.Choice(&set)
	}
	slog.Debug("parsed choice set", "doc", path, "questions", len(set.Questions))
	return set, nil
}

func (p *Parser) choiceQuestion(it node) (model.ChoiceQuestion, error) {
	f := p.Schema.Choice
	var q model.ChoiceQuestion
	var err error
	if q.Stem, err = it.str(f.Stem); err != nil {
		return q, err
	}
	opts, err := it.list(f.Options)
	if err != nil {
		return q, err
	}
	q.Options = make([]string, 0, len(opts))
	for _, o := range opts {
		letter, err := o.str(f.OptionLetter)
		if err != nil {
			return q, err
		}
		text, err := o.str(f.OptionText)
		if err != nil {
			return q, err
		}
		q.Options = append(q.Options, fmt.Sprintf("%s.%s", letter, text))
	}
	if q.CorrectAnswer, err = it.str(f.Answer); err != nil {
		return q, err
	}
	if n := q.CorrectOptions(); n != 1 {
		slog.Warn("answer does not match exactly one option",
			"doc", it.doc, "question", it.at, "answer", q.CorrectAnswer, "matches", n)
	}
	return q, nil
}

// ParseFillIn reads the fill-in entries as "<index>.<value>".
func (p *Parser) ParseFillIn(path string) (model.FillInAnswer, error) {
	f := p.Schema.FillIn
	doc, err := load(path)
	if err != nil {
		return model.FillInAnswer{}, err
	}
	items, err := doc.list(f.Entries)
	if err != nil {
		return model.FillInAnswer{}, err
	}

	fill := model.FillInAnswer{Entries: make([]string, 0, len(items))}
	for _, it := range items {
		idx, err := it.str(f.Index)
		if err != nil {
			return model.FillInAnswer{}, err
		}
		value, err := it.str(f.Value)
		if err != nil {
			return model.FillInAnswer{}, err
		}
		fill.Entries = append(fill.Entries, idx+"."+value)
	}

	if p.Cleanup.FillIn != nil {
		p.Cleanup.FillIn(&fill)
	}
	slog.Debug("parsed fill-in", "doc", path, "entries", len(fill.Entries))
	return fill, nil
}

// ParsePicture reads the picture narration material, model answers and key points.
func (p *Parser) ParsePicture(path string) (model.PictureAnswer, error) {
	f := p.Schema.Picture
	doc, err := load(path)
	if err != nil {
		return model.PictureAnswer{}, err
	}

	var pic model.PictureAnswer
	if pic.ListeningMaterial, err = doc.str(f.Material); err != nil {
		return model.PictureAnswer{}, err
	}
	if pic.ModelAnswers, err = doc.values(f.Answers, f.Value); err != nil {
		return model.PictureAnswer{}, err
	}
	keyPoints, err := doc.str(f.KeyPoints)
	if err != nil {
		return model.PictureAnswer{}, err
	}
	pic.KeyPoints = textnorm.SplitOnDelimiter(keyPoints, textnorm.Break)

	if p.Cleanup.Picture != nil {
		p.Cleanup.Picture(&pic)
	}
	slog.Debug("parsed picture narration", "doc", path,
		"answers", len(pic.ModelAnswers), "key_points", len(pic.KeyPoints))
	return pic, nil
}

// ParseReadAloud reads the read-aloud passage.
func (p *Parser) ParseReadAloud(path string) (model.ReadAloudAnswer, error) {
	doc, err := load(path)
	if err != nil {
		return model.ReadAloudAnswer{}, err
	}
	var r model.ReadAloudAnswer
	if r.PassageText, err = doc.str(p.Schema.ReadAloud.Passage); err != nil {
		return model.ReadAloudAnswer{}, err
	}
	if p.Cleanup.ReadAloud != nil {
		p.Cleanup.ReadAloud(&r)
	}
	return r, nil
}

// ParseDialogue reads every asked question with its keywords and model answers.
func (p *Parser) ParseDialogue(path string) (model.DialogueSet, error) {
	f := p.Schema.Dialogue
	doc, err := load(path)
	if err != nil {
		return model.DialogueSet{}, err
	}
	items, err := doc.list(f.Items)
	if err != nil {
		return model.DialogueSet{}, err
	}

	set := model.DialogueSet{Dialogues: make([]model.Dialogue, 0, len(items))}
	for _, it := range items {
		var d model.Dialogue
		if d.Question, err = it.str(f.Ask); err != nil {
			return model.DialogueSet{}, err
		}
		if d.Keywords, err = it.str(f.Keywords); err != nil {
			return model.DialogueSet{}, err
		}
		if d.ModelAnswers, err = it.values(f.Answers, f.Value); err != nil {
			return model.DialogueSet{}, err
		}
		set.Dialogues = append(set.Dialogues, d)
	}

	if p.Cleanup.Dialogue != nil {
		p.Cleanup.Dialogue(&set)
	}
	slog.Debug("parsed dialogue", "doc", path, "dialogues", len(set.Dialogues))
	return set, nil
}
