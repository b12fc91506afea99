package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLexicon(t *testing.T) *Lexicon {
	t.Helper()
	lex, err := NewTurkishLexicon()
	require.NoError(t, err)
	return lex
}

func TestExtractFeaturesBasic(t *testing.T) {
	lex := testLexicon(t)

	// 11 runes: "Çok güzel!!"
	f := ExtractFeatures(lex, "Çok güzel!!", nil)

	assert.Equal(t, 11, f.TextLength)
	assert.Equal(t, 2, f.WordCount)
	assert.Equal(t, 5.0, f.AvgWordLength) // (3+7)/2, runes per token
	assert.Equal(t, 2, f.ExclamationCount)
	assert.Equal(t, 0, f.QuestionCount)
	assert.InDelta(t, 1.0/11.0, f.UppercaseRatio, 1e-12)
	assert.Equal(t, 1, f.IntensifierCount)
	// "güzel!!" keeps its punctuation, so it is not an exact lexicon match.
	assert.Equal(t, 0, f.PositiveWordCount)
}

func TestExtractFeaturesEmptyText(t *testing.T) {
	lex := testLexicon(t)

	f := ExtractFeatures(lex, "", nil)

	assert.Zero(t, f.TextLength)
	assert.Zero(t, f.WordCount)
	assert.Zero(t, f.AvgWordLength)
	assert.Zero(t, f.UppercaseRatio)
}

func TestExtractFeaturesLexiconCounts(t *testing.T) {
	lex := testLexicon(t)

	f := ExtractFeatures(lex, "GÜZEL kötü Değil çok", nil)

	assert.Equal(t, 1, f.PositiveWordCount, "matching is case-insensitive")
	assert.Equal(t, 1, f.NegativeWordCount)
	assert.Equal(t, 1, f.NegationCount)
	assert.Equal(t, 1, f.IntensifierCount)
}

func TestExtractFeaturesEmojiOccurrences(t *testing.T) {
	lex := testLexicon(t)

	// Each literal occurrence counts, including repeats without separators.
	f := ExtractFeatures(lex, "😊😊 👍 ve 😢", nil)

	assert.Equal(t, 3, f.PositiveEmojiCount)
	assert.Equal(t, 1, f.NegativeEmojiCount)
}

func TestExtractFeaturesAnnotation(t *testing.T) {
	lex := testLexicon(t)

	ann := &Annotation{
		POSTags:     []string{"NOUN", "NOUN", "VERB", "ADJ", "ADV", "PUNCT"},
		EntityCount: 3,
	}
	f := ExtractFeatures(lex, "örnek bir cümle", ann)

	assert.True(t, f.Annotated)
	assert.Equal(t, 2, f.NounCount)
	assert.Equal(t, 1, f.VerbCount)
	assert.Equal(t, 1, f.AdjCount)
	assert.Equal(t, 1, f.AdvCount)
	assert.Equal(t, 3, f.EntityCount)

	plain := ExtractFeatures(lex, "örnek bir cümle", nil)
	assert.False(t, plain.Annotated)
	assert.Zero(t, plain.NounCount)
	assert.Zero(t, plain.EntityCount)
}
