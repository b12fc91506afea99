package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/duygulab/duyguflow/internal/clients"
	"github.com/duygulab/duyguflow/internal/clients/kafka_client"
	"github.com/duygulab/duyguflow/internal/models"
	"github.com/duygulab/duyguflow/internal/utils"
)

var inputBatchBuffer = utils.NewBatchBuffer[models.AnalysisInput]()

// StartRawContentConsumer cleans incoming raw content and batches it onto the
// analysis-request topic. Content IDs seen before (Valkey set) are skipped.
func StartRawContentConsumer(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	slog.Info("[RawContentConsumer] Listening for messages...")

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[RawContentConsumer] Stopping consumer...")
			return
		case <-ticker.C:
			go publishAnalysisBatch(ctx, committer)
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var content models.RawContent
			if err := utils.DeserializeFromJSON(msg.Value, &content); err != nil {
				continue
			}

			if clients.GetValkeyClient().IsProcessed(ctx, content.ContentID) {
				slog.Debug("[RawContentConsumer] Skipping already processed content",
					slog.String("content_id", content.ContentID))
				if err := committer.Commit(msg); err != nil {
					slog.Warn("[RawContentConsumer] Failed to commit skipped message",
						slog.String("error", err.Error()))
				}
				continue
			}

			input := utils.RawToAnalysisInput(content)
			utils.TrackMessage(input.ContentID, msg)
			inputBatchBuffer.Add(input)

			if inputBatchBuffer.Size() >= utils.BATCH_SIZE {
				go publishAnalysisBatch(ctx, committer)
			}
		}
	}
}

func publishAnalysisBatch(ctx context.Context, committer *kafka_client.KafkaCommitHandler) {
	batch := inputBatchBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	for i := 0; i < 3; i++ {
		err := kafka_client.PublishToKafka(ctx, kafka_client.KAFKA_TOPIC_ANALYSIS_REQUEST, "", batch)
		if err == nil {
			break
		}
		slog.Warn("[RawContentConsumer] Batch publishing failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}

	for _, input := range batch {
		if err := clients.GetValkeyClient().MarkProcessed(ctx, input.ContentID); err != nil {
			slog.Warn("[RawContentConsumer] Failed to mark content as processed",
				slog.String("content_id", input.ContentID),
				slog.String("error", err.Error()))
		}

		trackedMsg, found := utils.GetMessageForContent(input.ContentID)
		if found {
			if err := committer.Commit(trackedMsg); err != nil {
				slog.Warn("[RawContentConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}
