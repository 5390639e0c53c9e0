// Package tokens approximates token counts without depending on any
// model-specific tokenizer. Good enough for budget displays; not exact
// for any particular model.
package tokens

import (
	"strings"
	"unicode/utf8"
)

// Estimate approximates how many tokens text occupies. It computes two
// rules of thumb (one token per four characters, four tokens per three
// words) and takes the larger, which tracks real tokenizers better on
// both prose and dense code.
func Estimate(text string) int {
	if text == "" {
		return 0
	}

	byChars := (utf8.RuneCountInString(text) + 3) / 4
	byWords := len(strings.Fields(text)) * 4 / 3

	if byWords > byChars {
		return byWords
	}
	return byChars
}
