package models

import "time"

// RawContent is a piece of user-generated Turkish text entering the pipeline.
type RawContent struct {
	ContentID string          `json:"content_id"`
	Source    string          `json:"source"`
	Text      string          `json:"text"`
	Metadata  ContentMetadata `json:"metadata"`
}

type ContentMetadata struct {
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author,omitempty"`
	URL       string    `json:"url,omitempty"`
	Language  string    `json:"language,omitempty"`
}
