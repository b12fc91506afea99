package models

// TransformerModelName identifies results scored by the transformer model,
// hosted or in-process, as opposed to the lexicon rule engine.
const TransformerModelName = "BERTurk Transformer"

// Request/response shapes for the hosted transformer sentiment service.

type (
	ModelBatchRequest []ModelRequest
	ModelRequest      struct {
		ContentID string `json:"content_id"`
		Text      string `json:"text"`
	}
)

type (
	ModelBatchResponse []ModelResponse
	ModelResponse      struct {
		ContentID  string  `json:"content_id"`
		Score      float64 `json:"score"`
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
)
