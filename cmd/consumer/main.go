package main

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/duygulab/duyguflow/config"
	"github.com/duygulab/duyguflow/internal/clients"
	"github.com/duygulab/duyguflow/internal/clients/kafka_client"
	"github.com/duygulab/duyguflow/internal/consumers"
	"github.com/duygulab/duyguflow/internal/db"
	"github.com/duygulab/duyguflow/internal/logging"
	"github.com/duygulab/duyguflow/internal/monitoring"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cfg := kafka_client.GetKafkaConfig()

	for {
		err := kafka_client.InitProducer(cfg)
		if err == nil {
			break
		}

		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer kafka_client.CloseProducer()

	clients.InitValkey()
	defer clients.CloseValkey()
	db.InitDynamoDB()

	modelHealthy := &atomic.Bool{}
	annotatorHealthy := &atomic.Bool{}
	modelHealthy.Store(true)
	annotatorHealthy.Store(true)

	go monitoring.MonitorModelHealth(ctx, modelHealthy)
	go monitoring.MonitorAnnotatorHealth(ctx, annotatorHealthy)

	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_RAW_CONTENT, consumers.StartRawContentConsumer)
	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_ANALYSIS_REQUEST, consumers.WrapConsumer(
		consumers.StartAnalysisConsumer).WithHealthCheck(modelHealthy).Handler())
	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_ANALYSIS_RESULTS, consumers.StartResultsConsumer)

	if err := kafka_client.StartConsumer(ctx, cfg); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
	}
}
