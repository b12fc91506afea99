package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/duygulab/duyguflow/config"
	"github.com/duygulab/duyguflow/internal/clients/kafka_client"
	"github.com/duygulab/duyguflow/internal/logging"
	"github.com/duygulab/duyguflow/internal/models"
)

// Feeds the raw-content topic from a file (one text per line) or stdin.
func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stopChan
		slog.Info("Shutting down producer gracefully...")
		cancel()
	}()

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

	var in io.Reader = os.Stdin
	source := "stdin"
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			slog.Error("[Producer] Failed to open input file",
				slog.String("path", os.Args[1]),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer f.Close()
		in = f
		source = os.Args[1]
	}

	published := 0
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		content := models.RawContent{
			ContentID: uuid.NewString(),
			Source:    source,
			Text:      text,
			Metadata: models.ContentMetadata{
				Timestamp: time.Now(),
				Language:  "tr",
			},
		}

		err := kafka_client.PublishToKafka(ctx, kafka_client.KAFKA_TOPIC_RAW_CONTENT,
			content.ContentID, content)
		if err != nil {
			slog.Error("[Producer] Failed to publish content",
				slog.String("content_id", content.ContentID),
				slog.String("error", err.Error()))
			continue
		}
		published++
	}
	if err := scanner.Err(); err != nil {
		slog.Error("[Producer] Input read failed", slog.String("error", err.Error()))
	}

	slog.Info("[Producer] Done publishing content", slog.Int("count", published))
}
