package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duygulab/duyguflow/internal/models"
)

func TestAnnotateDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/annotate", r.URL.Path)

		var req models.AnnotationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Ankara çok güzel", req.Text)

		resp := models.AnnotationResponse{
			Tokens: []models.AnnotationToken{
				{Text: "Ankara", POSTag: "NOUN"},
				{Text: "çok", POSTag: "ADV"},
				{Text: "güzel", POSTag: "ADJ"},
			},
			EntityCount: 1,
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client := NewAnnotatorClient(server.URL, 5*time.Second)

	ann, err := client.Annotate(context.Background(), "Ankara çok güzel")
	require.NoError(t, err)
	assert.Equal(t, []string{"NOUN", "ADV", "ADJ"}, ann.POSTags)
	assert.Equal(t, 1, ann.EntityCount)
}

func TestAnnotateErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown route", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewAnnotatorClient(server.URL, 2*time.Second)

	_, err := client.Annotate(context.Background(), "metin")
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer unhealthy.Close()

	assert.True(t, NewAnnotatorClient(healthy.URL, 2*time.Second).HealthCheck())
	assert.False(t, NewAnnotatorClient(unhealthy.URL, 2*time.Second).HealthCheck())
}
