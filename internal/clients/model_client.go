package clients

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/duygulab/duyguflow/internal/models"
)

const DEFAULT_MODEL_ENDPOINT = "https://duygulab-sentiment.hf.space"

var (
	modelInstance *ModelClient
	modelOnce     sync.Once
)

// ModelClient talks to the hosted transformer sentiment service. It is the
// primary scoring path; when it is down the pipeline falls back to the
// in-process lexicon engine.
type ModelClient struct {
	baseURL string
	client  *http.Client
}

func NewModelClient(baseURL string, timeout time.Duration) *ModelClient {
	return &ModelClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func GetModelClient() *ModelClient {
	modelOnce.Do(func() {
		baseURL := os.Getenv("MODEL_URL")
		if baseURL == "" {
			baseURL = DEFAULT_MODEL_ENDPOINT
		}

		timeout := 10 * time.Second
		if os.Getenv("APP_ENV") != "production" {
			timeout = 60 * time.Second
		}

		slog.Info("[ModelClient] Initializing client",
			slog.String("base_url", baseURL),
			slog.Duration("timeout", timeout))
		modelInstance = NewModelClient(baseURL, timeout)
	})
	return modelInstance
}

// GetBatchedSentiment scores a batch of texts with the hosted model.
func (m *ModelClient) GetBatchedSentiment(ctx context.Context, input models.ModelBatchRequest) (models.ModelBatchResponse, error) {
	var result models.ModelBatchResponse

	slog.Info("[ModelClient] Requesting batched sentiment analysis",
		slog.Int("batch_size", len(input)))
	start := time.Now()

	if err := postJSON(ctx, m.client, m.baseURL+"/analyze_batch", input, &result); err != nil {
		slog.Error("[ModelClient] Sentiment analysis request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, err
	}

	slog.Info("[ModelClient] Sentiment analysis request successful",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("results", len(result)))
	return result, nil
}

// HealthCheck probes the model service's health endpoint.
func (m *ModelClient) HealthCheck() bool {
	return healthProbe(m.client, m.baseURL+"/health")
}
