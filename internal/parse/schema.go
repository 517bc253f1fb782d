package parse

// ChoiceFields locates a listening group inside its document.
type ChoiceFields struct {
	Material         string // shared listening material
	Questions        string
	QuestionMaterial string // per-question material, used when Material is empty
	Stem             string
	Options          string
	OptionLetter     string
	OptionText       string
	Answer           string
}

// FillInFields locates the fill-in entries.
type FillInFields struct {
	Entries string
	Index   string
	Value   string
}

// PictureFields locates the picture narration section.
type PictureFields struct {
	Material  string
	Answers   string
	Value     string
	KeyPoints string
}

// ReadAloudFields locates the read-aloud passage.
type ReadAloudFields struct {
	Passage string
}

// DialogueFields locates the dialogue section.
type DialogueFields struct {
	Items    string
	Ask      string
	Keywords string
	Answers  string
	Value    string
}

// Schema is the full field layout of one paper's documents.
type Schema struct {
	Choice    ChoiceFields
	FillIn    FillInFields
	Picture   PictureFields
	ReadAloud ReadAloudFields
	Dialogue  DialogueFields
}

// VendorSchema returns the layout written by the exam client's exporter.
func VendorSchema() Schema {
	return Schema{
		Choice: ChoiceFields{
			Material:         "info.st_nr",
			Questions:        "info.xtlist",
			QuestionMaterial: "xt_value",
			Stem:             "xt_nr",
			Options:          "xxlist",
			OptionLetter:     "xx_mc",
			OptionText:       "xx_nr",
			Answer:           "answer",
		},
		FillIn: FillInFields{
			Entries: "info.std",
			Index:   "xth",
			Value:   "value",
		},
		Picture: PictureFields{
			Material:  "info.value",
			Answers:   "info.std",
			Value:     "value",
			KeyPoints: "info.keypoint",
		},
		ReadAloud: ReadAloudFields{
			Passage: "info.value",
		},
		Dialogue: DialogueFields{
			Items:    "info.question",
			Ask:      "ask",
			Keywords: "keywords",
			Answers:  "std",
			Value:    "value",
		},
	}
}
