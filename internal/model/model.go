package model

import "time"

// Category identifies which answer shape a question directory holds.
type Category string

const (
	// CategorySkip marks administrative entries that carry no answers.
	CategorySkip Category = "skip"
	// CategoryChoice is a listening group with multiple-choice questions.
	CategoryChoice Category = "choice"
	// CategoryFillIn is the fill-in-the-blank section.
	CategoryFillIn Category = "fill_in"
	// CategoryPicture is the picture narration (retelling) section.
	CategoryPicture Category = "picture"
	// CategoryReadAloud is the read-aloud passage.
	CategoryReadAloud Category = "read_aloud"
	// CategoryDialogue is the question-and-answer dialogue section.
	CategoryDialogue Category = "dialogue"
)

// Answers is the normalized answer key of one paper.
type Answers struct {
	MultipleChoice   []ChoiceSet     `json:"multiple_choice" yaml:"multiple_choice"`
	FillIn           FillInAnswer    `json:"fill_in" yaml:"fill_in"`
	PictureNarration PictureAnswer   `json:"picture_narration" yaml:"picture_narration"`
	ReadAloud        ReadAloudAnswer `json:"read_aloud" yaml:"read_aloud"`
	Dialogue         DialogueSet     `json:"dialogue" yaml:"dialogue"`
}

// ChoiceSet is one listening group: shared material plus its questions.
type ChoiceSet struct {
	ListeningMaterial string           `json:"listening_material" yaml:"listening_material"`
	Questions         []ChoiceQuestion `json:"questions" yaml:"questions"`
}

// ChoiceQuestion holds a stem, its options formatted "<letter>.<text>", and the correct letter(s).
type ChoiceQuestion struct {
	Stem          string   `json:"stem" yaml:"stem"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer string   `json:"correct_answer" yaml:"correct_answer"`
}

// FillInAnswer holds entries formatted "<index>.<value>".
type FillInAnswer struct {
	Entries []string `json:"entries" yaml:"entries"`
}

// PictureAnswer is the picture narration section.
type PictureAnswer struct {
	ListeningMaterial string   `json:"listening_material" yaml:"listening_material"`
	ModelAnswers      []string `json:"model_answers" yaml:"model_answers"`
	KeyPoints         []string `json:"key_points" yaml:"key_points"`
}

// ReadAloudAnswer is the read-aloud passage.
type ReadAloudAnswer struct {
	PassageText string `json:"passage_text" yaml:"passage_text"`
}

// DialogueSet is the dialogue section.
type DialogueSet struct {
	Dialogues []Dialogue `json:"dialogues" yaml:"dialogues"`
}

// Dialogue is one asked question with its model answers.
// Keywords is kept as the single delimited vendor field.
type Dialogue struct {
	Question     string   `json:"question" yaml:"question"`
	ModelAnswers []string `json:"model_answers" yaml:"model_answers"`
	Keywords     string   `json:"keywords" yaml:"keywords"`
}

// Paper is one exam export directory found under the vendor resource dir.
type Paper struct {
	ID       string    `json:"id"`
	Path     string    `json:"path"`
	Modified time.Time `json:"modified"`
}

// Format names an output artifact kind.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML, FormatHTML, FormatPDF:
		return f, true
	}
	return "", false
}
