package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/duygulab/duyguflow/config"
	"github.com/duygulab/duyguflow/internal/clients/kafka_client"
	"github.com/duygulab/duyguflow/internal/consumers"
	"github.com/duygulab/duyguflow/internal/logging"
)

// The rescore worker runs as its own deployment: it loads the ONNX model
// into memory, so it scales independently of the lightweight consumers.
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

	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_UNCERTAIN_SENTIMENT, consumers.StartRescoreConsumer)

	if err := kafka_client.StartConsumer(ctx, cfg); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
	}
}
