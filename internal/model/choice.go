package model

import (
	"strings"
	"unicode/utf8"
)

// LeadingLetter returns the first character of s, or "" for an empty string.
func LeadingLetter(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}

// IsCorrect reports whether option's leading letter equals the leading letter of answer.
func IsCorrect(option, answer string) bool {
	letter := LeadingLetter(option)
	return letter != "" && letter == LeadingLetter(answer)
}

// CorrectOptions counts the options marked correct by the question's answer.
// A well-formed question has exactly one.
func (q ChoiceQuestion) CorrectOptions() int {
	n := 0
	for _, o := range q.Options {
		if IsCorrect(o, q.CorrectAnswer) {
			n++
		}
	}
	return n
}
