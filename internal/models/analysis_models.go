package models

import "github.com/duygulab/duyguflow/internal/sentiment"

// AnalysisInput is raw content after preprocessing, ready to be scored.
type AnalysisInput struct {
	RawContent
	Text         string `json:"text"`
	WasCleaned   bool   `json:"was_cleaned"`
	OriginalText string `json:"original_text,omitempty"`
}

// AnalysisResult is the scored record published to the results topic and
// persisted to storage. The embedded sentiment.Result supplies the
// score/label/confidence contract, with polarity and subjectivity aliases.
type AnalysisResult struct {
	AnalysisInput
	sentiment.Result
}
