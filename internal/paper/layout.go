package paper

import "github.com/pavelanni/answerkey/internal/model"

// Span maps an inclusive range of ordinal positions to one category.
type Span struct {
	From, To int
	Category model.Category
}

// Layout is the ordinal-to-category table of a paper type.
// Positions no span covers are skipped.
type Layout []Span

// SeniorCommon is the senior-high listening and speaking paper:
// an administrative entry, nine listening groups, then four fixed sections.
var SeniorCommon = Layout{
	{From: 0, To: 0, Category: model.CategorySkip},
	{From: 1, To: 9, Category: model.CategoryChoice},
	{From: 10, To: 10, Category: model.CategoryFillIn},
	{From: 11, To: 11, Category: model.CategoryPicture},
	{From: 12, To: 12, Category: model.CategoryReadAloud},
	{From: 13, To: 13, Category: model.CategoryDialogue},
}

// CategoryAt returns the category for a zero-based ordinal position.
func (l Layout) CategoryAt(pos int) model.Category {
	for _, s := range l {
		if pos >= s.From && pos <= s.To {
			return s.Category
		}
	}
	return model.CategorySkip
}

// Len is one past the last position any span covers.
func (l Layout) Len() int {
	n := 0
	for _, s := range l {
		if s.To+1 > n {
			n = s.To + 1
		}
	}
	return n
}
