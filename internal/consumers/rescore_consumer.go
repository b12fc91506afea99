package consumers

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/duygulab/duyguflow/internal/clients/kafka_client"
	"github.com/duygulab/duyguflow/internal/models"
	"github.com/duygulab/duyguflow/internal/sentiment"
	"github.com/duygulab/duyguflow/internal/utils"
)

var rescoreBuffer = utils.NewBatchBuffer[models.AnalysisInput]()

const (
	modelDir           = "./internal/transformers/models"
	sentimentModelRepo = "savasy/bert-base-turkish-sentiment-cased"
	sentimentModelPath = modelDir + "/berturk_sentiment.onnx"
)

// StartRescoreConsumer runs the in-process Turkish BERT classifier over
// low-confidence lexicon results and publishes the second-pass scores.
func StartRescoreConsumer(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	slog.Info("[RescoreConsumer] Listening for rescore requests")

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		slog.Error("[RescoreConsumer] Failed to create model directory",
			slog.String("error", err.Error()))
	}

	modelPath := sentimentModelPath
	if _, err := os.Stat(sentimentModelPath); os.IsNotExist(err) {
		slog.Info("[RescoreConsumer] Model not found, downloading...",
			slog.String("repo", sentimentModelRepo))
		downloaded, err := hugot.DownloadModel(sentimentModelRepo, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			slog.Error("[RescoreConsumer] Failed to download sentiment model",
				slog.String("error", err.Error()))
			return
		}
		modelPath = downloaded
		slog.Info("[RescoreConsumer] Model downloaded successfully", slog.String("path", modelPath))
	} else {
		slog.Info("[RescoreConsumer] Using existing model", slog.String("path", modelPath))
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		slog.Error("[RescoreConsumer] Failed to initialize Hugot session",
			slog.String("error", err.Error()))
		return
	}
	defer session.Destroy()

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "turkishSentimentPipeline",
	}
	classificationPipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		slog.Error("[RescoreConsumer] Failed to initialize classification pipeline",
			slog.String("error", err.Error()))
		return
	}

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[RescoreConsumer] Stopping consumer...")
			processRescoreBatch(ctx, committer, classificationPipeline)
			return
		case <-ticker.C:
			processRescoreBatch(ctx, committer, classificationPipeline)
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
			for _, request := range requests {
				rescoreBuffer.Add(request)
			}

			if rescoreBuffer.Size() >= utils.BATCH_SIZE {
				processRescoreBatch(ctx, committer, classificationPipeline)
			}
		}
	}
}

func processRescoreBatch(ctx context.Context, committer *kafka_client.KafkaCommitHandler, pipeline *pipelines.TextClassificationPipeline) {
	batch := rescoreBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	var results []models.AnalysisResult
	for _, request := range batch {
		output, err := pipeline.RunPipeline([]string{request.Text})
		if err != nil {
			slog.Warn("[RescoreConsumer] Classification failed",
				slog.String("content_id", request.ContentID),
				slog.String("error", err.Error()))
			continue
		}

		raw, ok := firstOutputString(output.GetOutput())
		if !ok {
			slog.Warn("[RescoreConsumer] Unexpected output format from Hugot",
				slog.String("content_id", request.ContentID))
			continue
		}

		label, confidence := interpretClassification(raw)
		results = append(results, models.AnalysisResult{
			AnalysisInput: request,
			Result: sentiment.Result{
				Score:        signedScore(label, confidence),
				Label:        label,
				Confidence:   confidence,
				Polarity:     signedScore(label, confidence),
				Subjectivity: confidence,
				Model:        models.TransformerModelName,
			},
		})
	}

	if len(results) == 0 {
		return
	}

	for i := 0; i < 3; i++ {
		err := kafka_client.PublishToKafka(ctx, kafka_client.KAFKA_TOPIC_ANALYSIS_RESULTS, "", results)
		if err == nil {
			break
		}
		slog.Warn("[RescoreConsumer] Result publishing failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}

	for _, result := range results {
		trackedMsg, found := utils.GetMessageForContent(result.ContentID)
		if found {
			if err := committer.Commit(trackedMsg); err != nil {
				slog.Warn("[RescoreConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}

func firstOutputString(outputs []any) (string, bool) {
	if len(outputs) == 0 {
		return "", false
	}
	raw, ok := outputs[0].(string)
	return raw, ok
}

// interpretClassification handles both `{"label":...,"score":...}` payloads
// and bare label strings.
func interpretClassification(raw string) (label string, confidence float64) {
	var parsed struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil && parsed.Label != "" {
		return mapModelLabel(parsed.Label), parsed.Score
	}
	return mapModelLabel(raw), 0.9
}

func mapModelLabel(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive", "label_1", "pozitif":
		return sentiment.LabelPositive
	case "negative", "label_0", "negatif":
		return sentiment.LabelNegative
	default:
		return sentiment.LabelNeutral
	}
}

func signedScore(label string, confidence float64) float64 {
	switch label {
	case sentiment.LabelPositive:
		return confidence
	case sentiment.LabelNegative:
		return -confidence
	default:
		return 0
	}
}
