package render

import (
	"context"
	"strings"

	"github.com/pavelanni/answerkey/internal/i18n"
	"github.com/pavelanni/answerkey/internal/model"
	"github.com/pavelanni/answerkey/internal/textnorm"
)

// firstPartQuestions is how many choice questions the first listening part holds.
const firstPartQuestions = 4

// Numbering the exporter puts in front of dialogue questions.
var dialoguePrefixes = []string{
	"Question 1. ", "Question 2. ", "Question 3. ",
	"1. ", "2. ", "3. ",
}

var labelIDs = []string{
	"AppTitle", "Papers", "Modified",
	"SectionChoice1", "SectionChoice2", "SectionFillIn",
	"SectionPicture", "SectionReadAloud", "SectionDialogue",
	"ListeningMaterial", "Answer", "ModelAnswers", "KeyPoints", "Passage", "Keywords",
}

type optionView struct {
	Letter  string
	Text    string
	Correct bool
}

type questionView struct {
	Label    string
	Material []string // set on the first question of each listening group
	Stem     string
	Options  []optionView
	Answer   string
}

type choicePartView struct {
	Count     string
	Questions []questionView
}

type dialogueView struct {
	Label    string
	Question string
	Answers  []string
	Keywords []string
}

type documentView struct {
	Title     string
	Lang      string
	L         map[string]string
	Choice    [2]choicePartView
	FillIn    []string
	Picture   pictureView
	Passage   []string
	Dialogues []dialogueView
}

type pictureView struct {
	Material  []string
	Answers   []string
	KeyPoints []string
}

type indexView struct {
	Title  string
	Lang   string
	L      map[string]string
	Papers []model.Paper
}

func labels(ctx context.Context, tr *i18n.Translator) map[string]string {
	l := make(map[string]string, len(labelIDs))
	for _, id := range labelIDs {
		l[id] = tr.T(ctx, id)
	}
	return l
}

// optionOf splits a "<letter>.<text>" option and marks it against the answer.
func optionOf(option, answer string) optionView {
	letter, text, ok := strings.Cut(option, ".")
	if !ok {
		letter, text = model.LeadingLetter(option), option
	}
	return optionView{
		Letter:  letter,
		Text:    strings.TrimSpace(text),
		Correct: model.IsCorrect(option, answer),
	}
}

// FillInText drops the "<index>." prefix of a fill-in entry.
func FillInText(entry string) string {
	if _, value, ok := strings.Cut(entry, "."); ok {
		return value
	}
	return entry
}

// DialogueQuestion drops the exporter's question numbering.
func DialogueQuestion(q string) string {
	return textnorm.StripLeadingMarkup(q, dialoguePrefixes...)
}

// lines flattens markup and splits text into non-empty display lines.
func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(textnorm.StripAllMarkupPairs(s), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func buildDocument(ctx context.Context, tr *i18n.Translator, p model.Paper, a *model.Answers) documentView {
	v := documentView{
		Title: tr.Td(ctx, "PaperTitle", map[string]any{"ID": p.ID}),
		Lang:  tr.Lang(),
		L:     labels(ctx, tr),
	}

	var questions []questionView
	for _, set := range a.MultipleChoice {
		for i, q := range set.Questions {
			qv := questionView{
				Label:  tr.Td(ctx, "QuestionN", map[string]any{"N": len(questions) + 1}),
				Stem:   q.Stem,
				Answer: q.CorrectAnswer,
			}
			if i == 0 {
				qv.Material = lines(set.ListeningMaterial)
			}
			for _, o := range q.Options {
				qv.Options = append(qv.Options, optionOf(o, q.CorrectAnswer))
			}
			questions = append(questions, qv)
		}
	}
	split := min(firstPartQuestions, len(questions))
	for i, part := range [][]questionView{questions[:split], questions[split:]} {
		v.Choice[i] = choicePartView{
			Count:     tr.Tp(ctx, "QuestionCount", len(part)),
			Questions: part,
		}
	}

	for _, e := range a.FillIn.Entries {
		v.FillIn = append(v.FillIn, FillInText(e))
	}

	v.Picture = pictureView{
		Material:  lines(a.PictureNarration.ListeningMaterial),
		Answers:   a.PictureNarration.ModelAnswers,
		KeyPoints: a.PictureNarration.KeyPoints,
	}
	v.Passage = lines(a.ReadAloud.PassageText)

	for i, d := range a.Dialogue.Dialogues {
		v.Dialogues = append(v.Dialogues, dialogueView{
			Label:    tr.Td(ctx, "QuestionN", map[string]any{"N": i + 1}),
			Question: DialogueQuestion(d.Question),
			Answers:  d.ModelAnswers,
			Keywords: lines(d.Keywords),
		})
	}
	return v
}
