package sentiment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TextFeatures is the flat feature record computed for one input text.
// Counts and ratios are taken over characters (runes), not bytes.
type TextFeatures struct {
	TextLength       int     `json:"text_length"`
	WordCount        int     `json:"word_count"`
	AvgWordLength    float64 `json:"avg_word_length"`
	ExclamationCount int     `json:"exclamation_count"`
	QuestionCount    int     `json:"question_count"`
	UppercaseRatio   float64 `json:"uppercase_ratio"`

	PositiveEmojiCount int `json:"positive_emoji_count"`
	NegativeEmojiCount int `json:"negative_emoji_count"`

	PositiveWordCount  int `json:"positive_word_count"`
	NegativeWordCount  int `json:"negative_word_count"`
	IntensifierCount   int `json:"intensifier_count"`
	NegationCount      int `json:"negation_count"`

	// Filled only when an annotator supplied an Annotation. These counts
	// are recorded for downstream inspection; the scorer does not read them.
	Annotated   bool `json:"annotated"`
	NounCount   int  `json:"noun_count"`
	VerbCount   int  `json:"verb_count"`
	AdjCount    int  `json:"adj_count"`
	AdvCount    int  `json:"adv_count"`
	EntityCount int  `json:"entity_count"`
}

// ExtractFeatures computes the feature record for text. Lexicon lookups use a
// lower-cased copy of each token; casing features use the original string.
// ann may be nil when no annotator output is available.
func ExtractFeatures(lex *Lexicon, text string, ann *Annotation) TextFeatures {
	var f TextFeatures

	f.TextLength = utf8.RuneCountInString(text)

	words := strings.Fields(text)
	f.WordCount = len(words)
	if len(words) > 0 {
		total := 0
		for _, w := range words {
			total += utf8.RuneCountInString(w)
		}
		f.AvgWordLength = float64(total) / float64(len(words))
	}

	f.ExclamationCount = strings.Count(text, "!")
	f.QuestionCount = strings.Count(text, "?")
	if f.TextLength > 0 {
		upper := 0
		for _, r := range text {
			if unicode.IsUpper(r) {
				upper++
			}
		}
		f.UppercaseRatio = float64(upper) / float64(f.TextLength)
	}

	for _, e := range lex.positiveEmoji {
		f.PositiveEmojiCount += strings.Count(text, e)
	}
	for _, e := range lex.negativeEmoji {
		f.NegativeEmojiCount += strings.Count(text, e)
	}

	for _, w := range lowerWords(text) {
		if lex.IsPositive(w) {
			f.PositiveWordCount++
		}
		if lex.IsNegative(w) {
			f.NegativeWordCount++
		}
		if _, ok := lex.IntensifierMultiplier(w); ok {
			f.IntensifierCount++
		}
		if lex.IsNegation(w) {
			f.NegationCount++
		}
	}

	if ann != nil {
		f.Annotated = true
		for _, tag := range ann.POSTags {
			switch tag {
			case "NOUN":
				f.NounCount++
			case "VERB":
				f.VerbCount++
			case "ADJ":
				f.AdjCount++
			case "ADV":
				f.AdvCount++
			}
		}
		f.EntityCount = ann.EntityCount
	}

	return f
}

// lowerWords returns the whitespace-split tokens of text, lower-cased for
// lexicon lookups.
func lowerWords(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
