package utils

import (
	"github.com/duygulab/duyguflow/internal/models"
	"github.com/duygulab/duyguflow/internal/sentiment"
)

// RawToAnalysisInput cleans raw content down to plain text and wraps it as an
// analysis input. The original text is kept when cleaning changed it.
func RawToAnalysisInput(c models.RawContent) models.AnalysisInput {
	cleaned := sentiment.MarkdownToText(c.Text)

	input := models.AnalysisInput{
		RawContent: c,
		Text:       cleaned,
	}
	if cleaned != c.Text {
		input.WasCleaned = true
		input.OriginalText = c.Text
	}
	return input
}
