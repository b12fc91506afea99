package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()
	lex, err := NewTurkishLexicon()
	require.NoError(t, err)
	return NewAnalyzer(lex, opts...)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := newTestAnalyzer(t)

	for _, input := range []string{"", "   ", "\t\n  "} {
		got := a.Analyze(context.Background(), input)
		assert.Equal(t, Result{
			Score:        0,
			Label:        LabelNeutral,
			Confidence:   0,
			Polarity:     0,
			Subjectivity: 0,
			Model:        ModelName,
		}, got, "input %q", input)
	}
}

func TestAnalyzeNoSignal(t *testing.T) {
	a := newTestAnalyzer(t)

	// Non-empty text with no lexicon, emoji, intensifier, or negation hits
	// takes the zero-total path: neutral with confidence 0.5, not 0.
	got := a.Analyze(context.Background(), "bugün sinemaya gittik")
	assert.Equal(t, 0.0, got.Score)
	assert.Equal(t, LabelNeutral, got.Label)
	assert.Equal(t, 0.5, got.Confidence)
}

func TestAnalyzeTable(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		name           string
		input          string
		wantScore      float64
		wantLabel      string
		wantConfidence float64
	}{
		{
			name:           "single positive word",
			input:          "Harika bir deneyim",
			wantScore:      1.0,
			wantLabel:      LabelPositive,
			wantConfidence: 1.0,
		},
		{
			name: "threshold is exclusive on the positive side",
			// pos=3 neg=2, raw=(3-2)/5=0.2 exactly.
			input:          "harika güzel iyi kötü berbat",
			wantScore:      0.2,
			wantLabel:      LabelNeutral,
			wantConfidence: 0.5,
		},
		{
			name: "threshold is exclusive on the negative side",
			// pos=2 neg=3, raw=-0.2 exactly.
			input:          "kötü berbat fena güzel harika",
			wantScore:      -0.2,
			wantLabel:      LabelNeutral,
			wantConfidence: 0.5,
		},
		{
			name: "just past the positive threshold",
			// pos=4 neg=2, raw=2/6=0.333...
			input:          "harika güzel iyi hoş kötü berbat",
			wantScore:      0.333,
			wantLabel:      LabelPositive,
			wantConfidence: 0.633,
		},
		{
			name: "negation flips a positive word",
			// pos=1 neg=0, swap gives pos=0 neg=0.7, raw=-1.
			input:          "güzel değil",
			wantScore:      -1.0,
			wantLabel:      LabelNegative,
			wantConfidence: 1.0,
		},
		{
			name: "negation swaps the lone negative signal to the positive side",
			// pos=0 neg=1, swap gives pos=0.7 neg=0, raw=+1.
			input:          "Berbat, hiç beğenmedim",
			wantScore:      1.0,
			wantLabel:      LabelPositive,
			wantConfidence: 1.0,
		},
		{
			name: "intensifier credits the adjacent lexicon word",
			// pos=1+0.5*1.5=1.75 neg=1, raw=0.75/2.75=0.2727...
			input:          "çok güzel kötü",
			wantScore:      0.273,
			wantLabel:      LabelPositive,
			wantConfidence: 0.573,
		},
		{
			name: "negative emoji dilutes a positive word",
			// pos=1 neg=0.5, raw=0.5/1.5=0.333...
			input:          "güzel 😢",
			wantScore:      0.333,
			wantLabel:      LabelPositive,
			wantConfidence: 0.633,
		},
		{
			name: "emoji alone carries the score",
			input:          "deneyim 😊",
			wantScore:      1.0,
			wantLabel:      LabelPositive,
			wantConfidence: 1.0,
		},
		{
			name: "exclamation scales the dominant side",
			// pos=1 neg=2, boost 1.1 gives neg=2.2, raw=-1.2/3.2=-0.375.
			input:          "güzel kötü kötü !",
			wantScore:      -0.375,
			wantLabel:      LabelNegative,
			wantConfidence: 0.675,
		},
		{
			name: "exclamation leaves a tie untouched",
			// pos=1 neg=1, no scaling, raw=0.
			input:          "güzel kötü !",
			wantScore:      0.0,
			wantLabel:      LabelNeutral,
			wantConfidence: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(context.Background(), tt.input)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.Equal(t, tt.wantConfidence, got.Confidence)
			assert.Equal(t, got.Score, got.Polarity)
			assert.Equal(t, got.Confidence, got.Subjectivity)
			assert.Equal(t, ModelName, got.Model)
		})
	}
}

func TestOnlyFirstNegationCounts(t *testing.T) {
	a := newTestAnalyzer(t)
	ctx := context.Background()

	base := a.Analyze(ctx, "güzel değil")
	trailing := a.Analyze(ctx, "güzel değil asla")

	assert.Equal(t, base.Score, trailing.Score)
	assert.Equal(t, base.Label, trailing.Label)
	assert.Equal(t, base.Confidence, trailing.Confidence)
}

func TestIntensifierRequiresAdjacency(t *testing.T) {
	a := newTestAnalyzer(t)
	ctx := context.Background()

	// "çok" followed by a non-lexicon word must contribute nothing.
	with := a.Analyze(ctx, "çok deneyim güzel kötü")
	without := a.Analyze(ctx, "deneyim güzel kötü")

	assert.Equal(t, without, with)
}

func TestAnalyzeBounds(t *testing.T) {
	a := newTestAnalyzer(t)
	ctx := context.Background()

	inputs := []string{
		"",
		"harika harika harika !!!!!!",
		"berbat berbat çöp iğrenç 😭😭😭",
		"çok aşırı son derece güzel değil yok hiç",
		"😊😊😊😊👍🎉 kötü",
		"?!?!?! asla",
		"Bu film gerçekten muhteşemdi! Çok beğendim, harika bir deneyimdi.",
		"Rezalet bir hizmet! Çok kötü, asla tavsiye etmem.",
	}

	for _, input := range inputs {
		got := a.Analyze(ctx, input)
		assert.GreaterOrEqual(t, got.Score, -1.0, "input %q", input)
		assert.LessOrEqual(t, got.Score, 1.0, "input %q", input)
		assert.GreaterOrEqual(t, got.Confidence, 0.0, "input %q", input)
		assert.LessOrEqual(t, got.Confidence, 1.0, "input %q", input)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := newTestAnalyzer(t)
	ctx := context.Background()

	const input = "Harika! Süper bir deneyim yaşadım 😊👍"
	first := a.Analyze(ctx, input)
	second := a.Analyze(ctx, input)

	assert.Equal(t, first, second)
}

type stubAnnotator struct {
	ann Annotation
	err error
}

func (s stubAnnotator) Annotate(_ context.Context, _ string) (Annotation, error) {
	return s.ann, s.err
}

func TestAnnotatorDoesNotChangeScores(t *testing.T) {
	ctx := context.Background()
	const input = "çok güzel kötü"

	plain := newTestAnalyzer(t)
	annotated := newTestAnalyzer(t, WithAnnotator(stubAnnotator{
		ann: Annotation{POSTags: []string{"ADV", "ADJ", "ADJ"}, EntityCount: 1},
	}))

	assert.Equal(t, plain.Analyze(ctx, input), annotated.Analyze(ctx, input))

	features := annotated.Features(ctx, input)
	assert.True(t, features.Annotated)
	assert.Equal(t, 2, features.AdjCount)
	assert.Equal(t, 1, features.AdvCount)
	assert.Equal(t, 1, features.EntityCount)
}

func TestAnnotatorFailureDegradesGracefully(t *testing.T) {
	ctx := context.Background()
	const input = "güzel değil"

	plain := newTestAnalyzer(t)
	failing := newTestAnalyzer(t, WithAnnotator(stubAnnotator{
		err: errors.New("annotator offline"),
	}))

	assert.Equal(t, plain.Analyze(ctx, input), failing.Analyze(ctx, input))
	assert.False(t, failing.Features(ctx, input).Annotated)
}
