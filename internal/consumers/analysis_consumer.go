package consumers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/duygulab/duyguflow/internal/clients"
	"github.com/duygulab/duyguflow/internal/clients/kafka_client"
	"github.com/duygulab/duyguflow/internal/models"
	"github.com/duygulab/duyguflow/internal/sentiment"
	"github.com/duygulab/duyguflow/internal/utils"
)

// Lexicon results below this confidence are re-scored by the transformer
// worker instead of going straight to storage.
const UNCERTAINTY_THRESHOLD = 0.6

var resultBuffer = utils.NewBatchBuffer[models.AnalysisResult]()

var (
	engineOnce sync.Once
	engine     *sentiment.Analyzer
)

// lexiconEngine builds the shared rule engine once. Lexicon construction
// failure is fatal: a worker without a valid lexicon has no fallback path.
func lexiconEngine() *sentiment.Analyzer {
	engineOnce.Do(func() {
		lex, err := sentiment.NewTurkishLexicon()
		if err != nil {
			panic(fmt.Errorf("[AnalysisConsumer] lexicon init failed: %w", err))
		}

		var opts []sentiment.Option
		if annotator := clients.GetAnnotatorClient(); annotator != nil {
			opts = append(opts, sentiment.WithAnnotator(annotator))
		}
		engine = sentiment.NewAnalyzer(lex, opts...)
	})
	return engine
}

// StartAnalysisConsumer scores batched analysis requests. The hosted model is
// the primary path; when it is unhealthy or fails, the in-process lexicon
// engine scores the batch so the pipeline keeps moving with no collaborators.
func StartAnalysisConsumer(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	slog.Info("[AnalysisConsumer] Listening for analysis requests...")

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[AnalysisConsumer] Consumer shutting down...")
			publishResults(ctx, committer)
			return
		case <-ticker.C:
			publishResults(ctx, committer)
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var requests []models.AnalysisInput
			if err := utils.DeserializeFromJSON(msg.Value, &requests); err != nil {
				utils.HandleConsumerError(err)
				continue
			}
			if len(requests) == 0 {
				continue
			}

			utils.TrackMessage(requests[0].ContentID, msg)

			scoreBatch(ctx, requests, modelHealthy(health))
			publishResults(ctx, committer)
		}
	}
}

func modelHealthy(health []*atomic.Bool) bool {
	for _, h := range health {
		if h != nil && !h.Load() {
			return false
		}
	}
	return true
}

func scoreBatch(ctx context.Context, requests []models.AnalysisInput, useModel bool) {
	vc := clients.GetValkeyClient()

	pending := make([]models.AnalysisInput, 0, len(requests))
	for _, request := range requests {
		if cached, ok := vc.GetCachedResult(ctx, request.Text); ok {
			cached.AnalysisInput = request
			resultBuffer.Add(cached)
			continue
		}
		pending = append(pending, request)
	}
	if len(pending) == 0 {
		return
	}

	if useModel {
		if scoreBatchWithModel(ctx, pending) {
			return
		}
		slog.Warn("[AnalysisConsumer] Model scoring failed, falling back to lexicon engine",
			slog.Int("batch_size", len(pending)))
	}

	scoreBatchWithLexicon(ctx, pending)
}

func scoreBatchWithModel(ctx context.Context, pending []models.AnalysisInput) bool {
	batchRequest := make(models.ModelBatchRequest, 0, len(pending))
	for _, request := range pending {
		batchRequest = append(batchRequest, models.ModelRequest{
			ContentID: request.ContentID,
			Text:      request.Text,
		})
	}

	responses, err := clients.GetModelClient().GetBatchedSentiment(ctx, batchRequest)
	if err != nil {
		return false
	}

	mapped := mapResponsesToContentID(responses)
	for _, request := range pending {
		response, ok := mapped[request.ContentID]
		if !ok {
			slog.Warn("[AnalysisConsumer] No model result for content ID, using lexicon engine",
				slog.String("content_id", request.ContentID))
			scoreWithLexicon(ctx, request)
			continue
		}

		result := models.AnalysisResult{
			AnalysisInput: request,
			Result: sentiment.Result{
				Score:        response.Score,
				Label:        response.Label,
				Confidence:   response.Confidence,
				Polarity:     response.Score,
				Subjectivity: response.Confidence,
				Model:        models.TransformerModelName,
			},
		}
		cacheResult(ctx, result)
		resultBuffer.Add(result)
	}
	return true
}

func scoreBatchWithLexicon(ctx context.Context, pending []models.AnalysisInput) {
	for _, request := range pending {
		scoreWithLexicon(ctx, request)
	}
}

func scoreWithLexicon(ctx context.Context, request models.AnalysisInput) {
	result := models.AnalysisResult{
		AnalysisInput: request,
		Result:        lexiconEngine().Analyze(ctx, request.Text),
	}

	// Low-confidence lexicon scores get a second opinion from the
	// transformer worker rather than going straight to storage.
	if result.Confidence < UNCERTAINTY_THRESHOLD {
		sendForRescoring(ctx, request)
		return
	}

	cacheResult(ctx, result)
	resultBuffer.Add(result)
}

func sendForRescoring(ctx context.Context, request models.AnalysisInput) {
	for i := 0; i < 3; i++ {
		err := kafka_client.PublishToKafka(ctx, kafka_client.KAFKA_TOPIC_UNCERTAIN_SENTIMENT,
			request.ContentID, []models.AnalysisInput{request})
		if err == nil {
			return
		}
		slog.Warn("[AnalysisConsumer] Rescore request publishing failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}
}

func cacheResult(ctx context.Context, result models.AnalysisResult) {
	if err := clients.GetValkeyClient().CacheResult(ctx, result.Text, result); err != nil {
		slog.Debug("[AnalysisConsumer] Failed to cache result",
			slog.String("content_id", result.ContentID),
			slog.String("error", err.Error()))
	}
}

func publishResults(ctx context.Context, committer *kafka_client.KafkaCommitHandler) {
	batch := resultBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	for i := 0; i < 3; i++ {
		err := kafka_client.PublishToKafka(ctx, kafka_client.KAFKA_TOPIC_ANALYSIS_RESULTS, "", batch)
		if err == nil {
			break
		}
		slog.Warn("[AnalysisConsumer] Result batch publishing failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}

	for _, result := range batch {
		trackedMsg, found := utils.GetMessageForContent(result.ContentID)
		if found {
			if err := committer.Commit(trackedMsg); err != nil {
				slog.Warn("[AnalysisConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}

func mapResponsesToContentID(responses models.ModelBatchResponse) map[string]models.ModelResponse {
	mapped := make(map[string]models.ModelResponse, len(responses))
	for _, response := range responses {
		mapped[response.ContentID] = response
	}
	return mapped
}
