package consumers

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duygulab/duyguflow/internal/models"
	"github.com/duygulab/duyguflow/internal/sentiment"
)

func TestModelHealthy(t *testing.T) {
	up := &atomic.Bool{}
	up.Store(true)
	down := &atomic.Bool{}

	assert.True(t, modelHealthy(nil))
	assert.True(t, modelHealthy([]*atomic.Bool{up}))
	assert.False(t, modelHealthy([]*atomic.Bool{down}))
	assert.False(t, modelHealthy([]*atomic.Bool{up, down}))
	assert.True(t, modelHealthy([]*atomic.Bool{nil, up}))
}

func TestMapResponsesToContentID(t *testing.T) {
	responses := models.ModelBatchResponse{
		{ContentID: "a", Score: 0.8, Label: sentiment.LabelPositive, Confidence: 0.9},
		{ContentID: "b", Score: -0.4, Label: sentiment.LabelNegative, Confidence: 0.7},
	}

	mapped := mapResponsesToContentID(responses)

	assert.Len(t, mapped, 2)
	assert.Equal(t, 0.8, mapped["a"].Score)
	assert.Equal(t, sentiment.LabelNegative, mapped["b"].Label)
	_, ok := mapped["missing"]
	assert.False(t, ok)
}

func TestInterpretClassification(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		label      string
		confidence float64
	}{
		{"json payload", `{"label":"positive","score":0.97}`, sentiment.LabelPositive, 0.97},
		{"json negative", `{"label":"LABEL_0","score":0.81}`, sentiment.LabelNegative, 0.81},
		{"bare label", "negative", sentiment.LabelNegative, 0.9},
		{"unknown label", "mixed", sentiment.LabelNeutral, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, confidence := interpretClassification(tt.raw)
			assert.Equal(t, tt.label, label)
			assert.InDelta(t, tt.confidence, confidence, 1e-9)
		})
	}
}

func TestSignedScore(t *testing.T) {
	assert.Equal(t, 0.9, signedScore(sentiment.LabelPositive, 0.9))
	assert.Equal(t, -0.7, signedScore(sentiment.LabelNegative, 0.7))
	assert.Equal(t, 0.0, signedScore(sentiment.LabelNeutral, 0.8))
}
