// Package sentiment scores Turkish free text with a fixed, auditable rule
// engine: lexicon hit counting, intensifier look-ahead, negation flipping,
// and emoji/punctuation adjustments. It is the in-process fallback for the
// hosted transformer model and must produce a result for any input, with or
// without the optional external annotator.
package sentiment

import (
	"context"
	"log/slog"
	"math"
	"strings"
)

// ModelName identifies results produced by the rule engine.
const ModelName = "Turkish Lexicon + Features"

// Fixed label categories emitted by the engine.
const (
	LabelPositive = "Pozitif"
	LabelNegative = "Negatif"
	LabelNeutral  = "Nötr"
)

const (
	positiveThreshold = 0.2
	negativeThreshold = -0.2
)

// Annotation is the output of the optional external annotator: one
// part-of-speech tag per token plus a named-entity count for the whole text.
type Annotation struct {
	POSTags     []string `json:"pos_tags"`
	EntityCount int      `json:"entity_count"`
}

// Annotator is the optional external NLP collaborator. Implementations may
// block on I/O; errors are absorbed by the analyzer and degrade the call to
// lexicon-only scoring.
type Annotator interface {
	Annotate(ctx context.Context, text string) (Annotation, error)
}

// Result is the sentiment output record. Polarity and Subjectivity mirror
// Score and Confidence for interface compatibility with the web layer.
type Result struct {
	Score        float64 `json:"score"`
	Label        string  `json:"label"`
	Confidence   float64 `json:"confidence"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
	Model        string  `json:"model"`
}

// Analyzer scores Turkish text against a shared read-only Lexicon.
// Analyzer values are safe for concurrent use.
type Analyzer struct {
	lex       *Lexicon
	annotator Annotator
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithAnnotator injects the optional external annotator.
func WithAnnotator(ann Annotator) Option {
	return func(a *Analyzer) {
		a.annotator = ann
	}
}

// NewAnalyzer builds an Analyzer around lex.
func NewAnalyzer(lex *Lexicon, opts ...Option) *Analyzer {
	a := &Analyzer{lex: lex}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze scores text and never fails. Empty or whitespace-only input
// short-circuits to a neutral result with zero confidence, before feature
// extraction runs.
func (a *Analyzer) Analyze(ctx context.Context, text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{
			Score:        0,
			Label:        LabelNeutral,
			Confidence:   0,
			Polarity:     0,
			Subjectivity: 0,
			Model:        ModelName,
		}
	}

	features := ExtractFeatures(a.lex, text, a.annotate(ctx, text))
	raw, zeroTotal := a.aggregate(lowerWords(text), features)
	label, confidence := labelFor(raw, zeroTotal)

	return Result{
		Score:        round3(raw),
		Label:        label,
		Confidence:   round3(confidence),
		Polarity:     round3(raw),
		Subjectivity: round3(confidence),
		Model:        ModelName,
	}
}

// Features exposes the feature record for text, using the annotator when one
// is configured. Intended for diagnostics; Analyze recomputes its own record.
func (a *Analyzer) Features(ctx context.Context, text string) TextFeatures {
	return ExtractFeatures(a.lex, text, a.annotate(ctx, text))
}

// annotate invokes the optional annotator. Any failure is treated as
// annotator-absent for this call and never propagates.
func (a *Analyzer) annotate(ctx context.Context, text string) *Annotation {
	if a.annotator == nil {
		return nil
	}
	ann, err := a.annotator.Annotate(ctx, text)
	if err != nil {
		slog.Warn("[Sentiment] Annotator unavailable, scoring lexicon-only",
			slog.String("error", err.Error()))
		return nil
	}
	return &ann
}

// aggregate combines feature counts into a raw signed score in [-1, 1].
// The rule order is load-bearing: intensifiers, then the first negation,
// then emoji, then exclamation scaling, then normalization.
func (a *Analyzer) aggregate(words []string, f TextFeatures) (raw float64, zeroTotal bool) {
	pos := float64(f.PositiveWordCount)
	neg := float64(f.NegativeWordCount)

	// Intensifier look-ahead: credit 0.5*m to the side of the word that
	// immediately follows the intensifier. Each occurrence contributes
	// independently.
	for i, w := range words {
		m, ok := a.lex.IntensifierMultiplier(w)
		if !ok || i+1 >= len(words) {
			continue
		}
		switch next := words[i+1]; {
		case a.lex.IsPositive(next):
			pos += 0.5 * m
		case a.lex.IsNegative(next):
			neg += 0.5 * m
		}
	}

	// Only the first negation marker takes effect: dampen both sides by 0.7
	// and swap them.
	for _, w := range words {
		if a.lex.IsNegation(w) {
			pos, neg = neg*0.7, pos*0.7
			break
		}
	}

	pos += float64(f.PositiveEmojiCount) * 0.5
	neg += float64(f.NegativeEmojiCount) * 0.5

	// Exclamation marks amplify whichever side is strictly ahead.
	if f.ExclamationCount > 0 {
		boost := 1 + float64(f.ExclamationCount)*0.1
		if pos > neg {
			pos *= boost
		} else if neg > pos {
			neg *= boost
		}
	}

	total := pos + neg
	if total == 0 {
		return 0, true
	}
	return (pos - neg) / total, false
}

// labelFor derives the label and confidence from the raw score. The
// zero-total path is distinct from the empty-input path: no lexicon signal in
// a non-empty text yields confidence 0.5, not 0.
func labelFor(raw float64, zeroTotal bool) (label string, confidence float64) {
	if zeroTotal {
		return LabelNeutral, 0.5
	}
	switch {
	case raw > positiveThreshold:
		label = LabelPositive
	case raw < negativeThreshold:
		label = LabelNegative
	default:
		label = LabelNeutral
	}
	return label, math.Min(math.Abs(raw)+0.3, 1.0)
}

// round3 rounds to three decimals. Applied only at the result boundary;
// internal arithmetic keeps full precision.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
