package db

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duygulab/duyguflow/internal/models"
	"github.com/duygulab/duyguflow/internal/sentiment"
)

func TestResultToDynamoDBItem(t *testing.T) {
	result := models.AnalysisResult{
		AnalysisInput: models.AnalysisInput{
			RawContent: models.RawContent{
				ContentID: "abc-123",
				Source:    "reviews",
				Metadata: models.ContentMetadata{
					Timestamp: time.Unix(1700000000, 0),
					Author:    "ayse",
					URL:       "https://example.com/r/1",
					Language:  "tr",
				},
			},
			Text:         "harika bir deneyim",
			WasCleaned:   true,
			OriginalText: "**harika** bir deneyim",
		},
		Result: sentiment.Result{
			Score:        1.0,
			Label:        sentiment.LabelPositive,
			Confidence:   1.0,
			Polarity:     1.0,
			Subjectivity: 1.0,
			Model:        sentiment.ModelName,
		},
	}

	item := ResultToDynamoDBItem(result)

	id, ok := item["content_id"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "abc-123", id.Value)

	label, ok := item["sentiment_label"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "Pozitif", label.Value)

	score, ok := item["sentiment_score"].(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, "1.000000", score.Value)

	cleaned, ok := item["was_cleaned"].(*types.AttributeValueMemberBOOL)
	require.True(t, ok)
	assert.True(t, cleaned.Value)

	original, ok := item["original_text"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "**harika** bir deneyim", original.Value)

	metadata, ok := item["metadata"].(*types.AttributeValueMemberM)
	require.True(t, ok)
	author, ok := metadata.Value["author"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "ayse", author.Value)
	ts, ok := metadata.Value["timestamp"].(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, "1700000000", ts.Value)

	assert.Contains(t, item, "created_at")
	assert.Contains(t, item, "ttl")
}

func TestResultToDynamoDBItemOmitsEmptyOptionals(t *testing.T) {
	result := models.AnalysisResult{
		AnalysisInput: models.AnalysisInput{
			RawContent: models.RawContent{ContentID: "min-1", Source: "stdin"},
		},
		Result: sentiment.Result{Label: sentiment.LabelNeutral, Model: sentiment.ModelName},
	}

	item := ResultToDynamoDBItem(result)

	assert.NotContains(t, item, "text")
	assert.NotContains(t, item, "original_text")
	assert.NotContains(t, item, "was_cleaned")
	assert.NotContains(t, item, "metadata")
}
