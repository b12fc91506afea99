package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/duygulab/duyguflow/internal/clients"
	"github.com/duygulab/duyguflow/internal/models"
)

const SENTIMENT_RESULTS_TABLE_NAME = "SentimentResults"

// Stored rows expire a day after insertion.
const RESULT_TTL = 24 * time.Hour

var dbClient *dynamodb.Client

func InitDynamoDB() {
	dbClient = clients.GetDynamoDBClient()
}

// StoredResult is the row shape read back from the results table.
type StoredResult struct {
	ContentID    string  `dynamodbav:"content_id"`
	Source       string  `dynamodbav:"source"`
	Text         string  `dynamodbav:"text"`
	Score        float64 `dynamodbav:"sentiment_score"`
	Label        string  `dynamodbav:"sentiment_label"`
	Confidence   float64 `dynamodbav:"confidence"`
	Polarity     float64 `dynamodbav:"polarity"`
	Subjectivity float64 `dynamodbav:"subjectivity"`
	Model        string  `dynamodbav:"model"`
	CreatedAt    int64   `dynamodbav:"created_at"`
}

func BatchInsertAnalysisResults(ctx context.Context, results []models.AnalysisResult) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	writeRequests := make([]types.WriteRequest, 0, len(results))
	for _, result := range results {
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{
				Item: ResultToDynamoDBItem(result),
			},
		})
	}

	out, err := dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{
			SENTIMENT_RESULTS_TABLE_NAME: writeRequests,
		},
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to batch write analysis results: %w", err)
	}

	retryCount := 0
	backoff := 500 * time.Millisecond
	for len(out.UnprocessedItems) > 0 && retryCount < 3 {
		time.Sleep(backoff)
		backoff *= 2

		slog.Warn("[DynamoDB] Retrying unprocessed result items...",
			slog.Int("attempt", retryCount+1),
			slog.Int("remaining", len(out.UnprocessedItems[SENTIMENT_RESULTS_TABLE_NAME])))

		out, err = dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: out.UnprocessedItems,
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Retry error %w", err)
		}

		retryCount++
	}

	if len(out.UnprocessedItems) > 0 {
		slog.Error("[DynamoDB] Some result items failed after retries",
			slog.Int("remaining", len(out.UnprocessedItems[SENTIMENT_RESULTS_TABLE_NAME])))
	}

	slog.Info("[DynamoDB] Successfully stored analysis results",
		slog.Int("count", len(results)))

	return nil
}

// GetRecentResults scans the results table, returning every stored row that
// has not expired yet.
func GetRecentResults(ctx context.Context) ([]StoredResult, error) {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	var results []StoredResult
	input := &dynamodb.ScanInput{
		TableName: aws.String(SENTIMENT_RESULTS_TABLE_NAME),
	}

	paginator := dynamodb.NewScanPaginator(dbClient, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Scan for results failed: %w", err)
		}

		var page []StoredResult
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal result page",
				slog.String("error", err.Error()))
			return nil, err
		}
		results = append(results, page...)
	}

	slog.Info("[DynamoDB] Successfully retrieved results", slog.Int("count", len(results)))
	return results, nil
}

func ResultToDynamoDBItem(result models.AnalysisResult) map[string]types.AttributeValue {
	item := make(map[string]types.AttributeValue)

	// Required fields (snake_case keys)
	item["content_id"] = &types.AttributeValueMemberS{Value: result.ContentID}
	item["source"] = &types.AttributeValueMemberS{Value: result.Source}
	item["sentiment_score"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", result.Score)}
	item["sentiment_label"] = &types.AttributeValueMemberS{Value: result.Label}
	item["confidence"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", result.Confidence)}
	item["polarity"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", result.Polarity)}
	item["subjectivity"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", result.Subjectivity)}
	item["model"] = &types.AttributeValueMemberS{Value: result.Model}
	item["created_at"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Unix())}
	item["ttl"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Add(RESULT_TTL).Unix())}

	// Optional: metadata as nested map
	metadata := make(map[string]types.AttributeValue)
	if result.Metadata.Author != "" {
		metadata["author"] = &types.AttributeValueMemberS{Value: result.Metadata.Author}
	}
	if result.Metadata.URL != "" {
		metadata["url"] = &types.AttributeValueMemberS{Value: result.Metadata.URL}
	}
	if result.Metadata.Language != "" {
		metadata["language"] = &types.AttributeValueMemberS{Value: result.Metadata.Language}
	}
	if !result.Metadata.Timestamp.IsZero() {
		metadata["timestamp"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", result.Metadata.Timestamp.Unix())}
	}
	if len(metadata) > 0 {
		item["metadata"] = &types.AttributeValueMemberM{Value: metadata}
	}

	// Optional fields
	if result.Text != "" {
		item["text"] = &types.AttributeValueMemberS{Value: result.Text}
	}
	if result.OriginalText != "" {
		item["original_text"] = &types.AttributeValueMemberS{Value: result.OriginalText}
	}
	if result.WasCleaned {
		item["was_cleaned"] = &types.AttributeValueMemberBOOL{Value: true}
	}

	return item
}
