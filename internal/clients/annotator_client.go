package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/duygulab/duyguflow/internal/models"
	"github.com/duygulab/duyguflow/internal/sentiment"
)

var (
	annotatorInstance *AnnotatorClient
	annotatorOnce     sync.Once
)

// AnnotatorClient talks to the external Turkish NLP annotator, which supplies
// part-of-speech tags and a named-entity count per text. The analyzer treats
// any failure here as "annotator absent", so callers never see an error from
// the scoring path.
type AnnotatorClient struct {
	baseURL string
	client  *http.Client
}

// NewAnnotatorClient builds a client against baseURL.
func NewAnnotatorClient(baseURL string, timeout time.Duration) *AnnotatorClient {
	return &AnnotatorClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetAnnotatorClient returns the shared client, configured from
// ANNOTATOR_URL. Returns nil when no annotator is configured; the pipeline
// then scores lexicon-only.
func GetAnnotatorClient() *AnnotatorClient {
	annotatorOnce.Do(func() {
		baseURL := os.Getenv("ANNOTATOR_URL")
		if baseURL == "" {
			slog.Info("[AnnotatorClient] ANNOTATOR_URL not set, annotator disabled")
			return
		}

		timeout := 10 * time.Second
		if os.Getenv("APP_ENV") != "production" {
			timeout = 30 * time.Second
		}

		slog.Info("[AnnotatorClient] Initializing client",
			slog.String("base_url", baseURL),
			slog.Duration("timeout", timeout))
		annotatorInstance = NewAnnotatorClient(baseURL, timeout)
	})
	return annotatorInstance
}

// Annotate implements sentiment.Annotator.
func (c *AnnotatorClient) Annotate(ctx context.Context, text string) (sentiment.Annotation, error) {
	var resp models.AnnotationResponse

	req := models.AnnotationRequest{Text: text}
	if err := postJSON(ctx, c.client, c.baseURL+"/annotate", req, &resp); err != nil {
		return sentiment.Annotation{}, fmt.Errorf("annotate request failed: %w", err)
	}

	ann := sentiment.Annotation{
		POSTags:     make([]string, 0, len(resp.Tokens)),
		EntityCount: resp.EntityCount,
	}
	for _, tok := range resp.Tokens {
		ann.POSTags = append(ann.POSTags, tok.POSTag)
	}
	return ann, nil
}

// HealthCheck probes the annotator's health endpoint.
func (c *AnnotatorClient) HealthCheck() bool {
	return healthProbe(c.client, c.baseURL+"/health")
}
