package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/duygulab/duyguflow/internal/clients"
)

const HEALTHCHECK_TIMER = 15

func MonitorModelHealth(ctx context.Context, healthy *atomic.Bool) {
	ticker := time.NewTicker(time.Second * HEALTHCHECK_TIMER)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			isHealthy := clients.GetModelClient().HealthCheck()
			healthy.Store(isHealthy)
			if !isHealthy {
				slog.Warn("[HealthCheck] Sentiment model is unhealthy")
			}
		}
	}
}

func MonitorAnnotatorHealth(ctx context.Context, healthy *atomic.Bool) {
	ticker := time.NewTicker(time.Second * HEALTHCHECK_TIMER)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			annotator := clients.GetAnnotatorClient()
			if annotator == nil {
				return
			}
			isHealthy := annotator.HealthCheck()
			healthy.Store(isHealthy)
			if !isHealthy {
				slog.Warn("[HealthCheck] Annotator service is unhealthy")
			}
		}
	}
}
