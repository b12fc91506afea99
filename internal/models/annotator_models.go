package models

// AnnotationRequest is the payload sent to the external NLP annotator.
type AnnotationRequest struct {
	Text string `json:"text"`
}

// AnnotationToken is one annotated token. Only the part-of-speech tag is
// consumed; the surface form is kept for debugging.
type AnnotationToken struct {
	Text   string `json:"text,omitempty"`
	POSTag string `json:"pos_tag"`
}

// AnnotationResponse is the annotator's output for one text.
type AnnotationResponse struct {
	Tokens      []AnnotationToken `json:"tokens"`
	EntityCount int               `json:"entity_count"`
}
