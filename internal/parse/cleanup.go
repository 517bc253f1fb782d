package parse

import (
	"github.com/pavelanni/answerkey/internal/model"
	"github.com/pavelanni/answerkey/internal/textnorm"
)

// Stem prefixes the exporter uses to tag first and second question types.
var stemPrefixes = []string{"ets_th1 ", "ets_th2 "}

// Cleanup holds the per-category pass run right after a document is parsed.
// A nil entry leaves that category as read.
type Cleanup struct {
	Choice    func(*model.ChoiceSet)
	FillIn    func(*model.FillInAnswer)
	Picture   func(*model.PictureAnswer)
	ReadAloud func(*model.ReadAloudAnswer)
	Dialogue  func(*model.DialogueSet)
}

// DefaultCleanup matches what the exporter's own viewer shows.
// Fill-in and dialogue text is cleaned at render time instead.
func DefaultCleanup() Cleanup {
	return Cleanup{
		Choice:    CleanChoiceSet,
		Picture:   CleanPicture,
		ReadAloud: CleanReadAloud,
	}
}

// CleanChoiceSet strips the leading paragraph gap from the material, turns break
// markers into newlines, and drops the question-type tag from every stem.
func CleanChoiceSet(c *model.ChoiceSet) {
	c.ListeningMaterial = textnorm.BreakToLines(
		textnorm.StripLeadingMarkup(c.ListeningMaterial, textnorm.ParagraphGap))
	for i := range c.Questions {
		c.Questions[i].Stem = textnorm.StripLeadingMarkup(c.Questions[i].Stem, stemPrefixes...)
	}
}

// CleanPicture flattens the paragraph markup of the material and strips the
// leading paragraph gap from each model answer.
func CleanPicture(p *model.PictureAnswer) {
	content := textnorm.StripLeadingMarkup(p.ListeningMaterial, textnorm.ParagraphClose)
	// Exported material is sometimes cut off inside its closing wrapper.
	content = textnorm.EnsureSuffix(content, textnorm.ParagraphClose)
	p.ListeningMaterial = textnorm.StripAllMarkupPairs(content)
	for i, a := range p.ModelAnswers {
		p.ModelAnswers[i] = textnorm.StripLeadingMarkup(a, textnorm.ParagraphGap)
	}
}

// CleanReadAloud strips the leading paragraph gap from the passage.
func CleanReadAloud(r *model.ReadAloudAnswer) {
	r.PassageText = textnorm.StripLeadingMarkup(r.PassageText, textnorm.ParagraphGap)
}
