package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTurkishLexicon(t *testing.T) {
	lex, err := NewTurkishLexicon()
	require.NoError(t, err)

	assert.True(t, lex.IsPositive("harika"))
	assert.True(t, lex.IsNegative("berbat"))
	assert.True(t, lex.IsNegation("değil"))
	assert.False(t, lex.IsPositive("berbat"))
	assert.False(t, lex.IsNegative("harika"))
	assert.False(t, lex.IsNegation("güzel"))

	m, ok := lex.IntensifierMultiplier("çok")
	require.True(t, ok)
	assert.Equal(t, 1.5, m)

	_, ok = lex.IntensifierMultiplier("deneyim")
	assert.False(t, ok)

	assert.True(t, lex.IsPositiveEmoji("😊"))
	assert.True(t, lex.IsNegativeEmoji("💔"))
	assert.False(t, lex.IsPositiveEmoji("💔"))
}

func TestLexiconTablesDisjoint(t *testing.T) {
	lex, err := NewTurkishLexicon()
	require.NoError(t, err)

	for word := range lex.positive {
		assert.False(t, lex.IsNegative(word), "word %q in both polarity tables", word)
	}
}

func TestLexiconValidate(t *testing.T) {
	tests := []struct {
		name string
		lex  Lexicon
	}{
		{
			name: "overlapping polarity tables",
			lex: Lexicon{
				positive:  toSet([]string{"iyi", "fena"}),
				negative:  toSet([]string{"fena"}),
				negations: toSet([]string{"değil"}),
			},
		},
		{
			name: "empty polarity table",
			lex: Lexicon{
				positive:  toSet(nil),
				negative:  toSet([]string{"fena"}),
				negations: toSet([]string{"değil"}),
			},
		},
		{
			name: "missing negations",
			lex: Lexicon{
				positive:  toSet([]string{"iyi"}),
				negative:  toSet([]string{"fena"}),
				negations: toSet(nil),
			},
		},
		{
			name: "non-positive multiplier",
			lex: Lexicon{
				positive:     toSet([]string{"iyi"}),
				negative:     toSet([]string{"fena"}),
				negations:    toSet([]string{"değil"}),
				intensifiers: map[string]float64{"çok": 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.lex.validate())
		})
	}
}
