package sentiment

import (
	"fmt"
)

// positiveWords holds lower-cased Turkish words with positive polarity.
var positiveWords = []string{
	"güzel", "harika", "muhteşem", "mükemmel", "süper", "başarılı",
	"iyi", "hoş", "sevdim", "beğendim", "mutlu", "keyifli", "eğlenceli",
	"kaliteli", "başarı", "tebrikler", "bravo", "aferin", "teşekkür",
	"sağolun", "minnettar", "şahane", "enfes", "kusursuz", "efsane",
	"nefis", "olağanüstü", "parlak", "görkemli", "fevkalade",
	"hayran", "takdir", "övgü", "sevinç", "zevk", "huzur",
	"masal", "rüya", "cennet", "mucize", "hayal", "gurur",
}

// negativeWords holds lower-cased Turkish words with negative polarity.
var negativeWords = []string{
	"kötü", "berbat", "rezalet", "çöp", "boktan", "iğrenç", "tiksinç",
	"vasat", "beğenmedim", "sevmedim", "sıkıcı", "can", "üzücü",
	"fena", "boş", "saçma", "anlamsız", "zayıf", "eksik", "yetersiz",
	"başarısız", "kırık", "bozuk", "sorunlu", "problem", "hata",
	"korkunç", "dehşet", "felaket", "trajedi", "acı", "ızdırap",
	"pişman", "kırıklığı", "üzüntü", "öfke", "sinir",
	"nefret", "tiksinti", "ihanet", "yalan", "aldatma", "hile",
}

// intensifierWords maps Turkish intensifiers to score multipliers applied
// when the intensifier directly precedes a lexicon word.
var intensifierWords = map[string]float64{
	"çok": 1.5, "fazla": 1.3, "aşırı": 1.8, "son": 1.4, "derece": 1.4,
	"gerçekten": 1.3, "kesinlikle": 1.5, "tamamen": 1.4, "oldukça": 1.3,
	"gayet": 1.2, "epey": 1.3, "bayağı": 1.3, "bir": 1.2, "hayli": 1.3,
}

// negationWords holds Turkish negation markers that flip sentiment.
var negationWords = []string{"değil", "yok", "hiç", "asla", "hayır"}

// positiveEmojis and negativeEmojis are matched by literal substring count,
// so multi-codepoint glyphs work without rune segmentation.
var (
	positiveEmojis = []string{"😊", "😀", "😁", "🙂", "😍", "🥰", "❤️", "👍", "✨", "🎉"}
	negativeEmojis = []string{"😢", "😭", "😞", "😔", "😡", "😠", "💔", "👎", "😰", "😨"}
)

// Lexicon is an immutable set of sentiment tables. It is built once at
// startup and safe for unlocked concurrent use afterwards.
type Lexicon struct {
	positive      map[string]struct{}
	negative      map[string]struct{}
	negations     map[string]struct{}
	intensifiers  map[string]float64
	positiveEmoji []string
	negativeEmoji []string
}

// NewTurkishLexicon builds the lexicon from the embedded Turkish tables.
// An invalid table set (empty tables, overlapping polarity entries, or a
// non-positive multiplier) is a construction error, not a per-call one.
func NewTurkishLexicon() (*Lexicon, error) {
	lex := &Lexicon{
		positive:      toSet(positiveWords),
		negative:      toSet(negativeWords),
		negations:     toSet(negationWords),
		intensifiers:  make(map[string]float64, len(intensifierWords)),
		positiveEmoji: append([]string(nil), positiveEmojis...),
		negativeEmoji: append([]string(nil), negativeEmojis...),
	}
	for word, multiplier := range intensifierWords {
		lex.intensifiers[word] = multiplier
	}
	if err := lex.validate(); err != nil {
		return nil, fmt.Errorf("sentiment: invalid lexicon: %w", err)
	}
	return lex, nil
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func (l *Lexicon) validate() error {
	if len(l.positive) == 0 || len(l.negative) == 0 {
		return fmt.Errorf("polarity tables must not be empty")
	}
	if len(l.negations) == 0 {
		return fmt.Errorf("negation table must not be empty")
	}
	for word := range l.positive {
		if _, ok := l.negative[word]; ok {
			return fmt.Errorf("word %q appears in both polarity tables", word)
		}
	}
	for word, multiplier := range l.intensifiers {
		if multiplier <= 0 {
			return fmt.Errorf("intensifier %q has non-positive multiplier %v", word, multiplier)
		}
	}
	return nil
}

// IsPositive reports whether word is in the positive table.
// Lookups expect lower-cased input.
func (l *Lexicon) IsPositive(word string) bool {
	_, ok := l.positive[word]
	return ok
}

// IsNegative reports whether word is in the negative table.
func (l *Lexicon) IsNegative(word string) bool {
	_, ok := l.negative[word]
	return ok
}

// IsNegation reports whether word is a negation marker.
func (l *Lexicon) IsNegation(word string) bool {
	_, ok := l.negations[word]
	return ok
}

// IntensifierMultiplier returns the multiplier for an intensifier word.
func (l *Lexicon) IntensifierMultiplier(word string) (float64, bool) {
	m, ok := l.intensifiers[word]
	return m, ok
}

// IsPositiveEmoji reports whether glyph is in the positive emoji table.
func (l *Lexicon) IsPositiveEmoji(glyph string) bool {
	for _, e := range l.positiveEmoji {
		if e == glyph {
			return true
		}
	}
	return false
}

// IsNegativeEmoji reports whether glyph is in the negative emoji table.
func (l *Lexicon) IsNegativeEmoji(glyph string) bool {
	for _, e := range l.negativeEmoji {
		if e == glyph {
			return true
		}
	}
	return false
}
