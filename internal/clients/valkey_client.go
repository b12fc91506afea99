package clients

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/duygulab/duyguflow/internal/models"
	"github.com/duygulab/duyguflow/internal/utils"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

type ValkeyClient struct {
	Client valkey.Client
	mu     sync.Mutex
}

const (
	VALKEY_PROCESSED_KEY    = "duyguflow:processed_content"
	VALKEY_RESULT_KEY_PREF  = "duyguflow:result:"
	PROCESSED_TTL_SECONDS   = 86400
	RESULT_CACHE_TTL_SECOND = 3600
)

func InitValkey() *ValkeyClient {
	valkeyOnce.Do(func() {
		client, err := newValkeyClient()
		if err != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to create Valkey client: %w", err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if res := client.Do(ctx, client.B().Ping().Build()); res.Error() != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", res.Error()))
		}

		slog.Info("[ValkeyClient] Successfully connected to Valkey")
		valkeyInstance = &ValkeyClient{Client: client}
	})
	return valkeyInstance
}

func newValkeyClient() (valkey.Client, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{os.Getenv("VALKEY_INIT_ADDRESS")},
		Password:         os.Getenv("VALKEY_PASSWORD"),
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if os.Getenv("VALKEY_TLS") == "true" {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}
	return valkey.NewClient(opts)
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

func GetValkeyClient() *ValkeyClient {
	if valkeyInstance == nil {
		panic("[ValkeyClient] Valkey client is not initialized")
	}
	return valkeyInstance
}

func (vc *ValkeyClient) recreateClient() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[ValkeyClient] Recreate failed and was recovered from panic",
				slog.Any("panic", r))
		}
	}()

	vc.mu.Lock()
	defer vc.mu.Unlock()
	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	vc.Client.Close()

	client, err := newValkeyClient()
	if err != nil {
		panic(fmt.Errorf("[ValkeyClient] failed to recreate Valkey client: %w", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if res := client.Do(ctx, client.B().Ping().Build()); res.Error() != nil {
		panic(fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", res.Error()))
	}

	slog.Info("[ValkeyClient] Successfully reconnected to Valkey")
	vc.Client = client
}

// MarkProcessed records a content ID so replays and duplicate publishes are
// skipped for a day.
func (vc *ValkeyClient) MarkProcessed(ctx context.Context, contentID string) error {
	completed := []valkey.Completed{
		vc.Client.B().Sadd().Key(VALKEY_PROCESSED_KEY).Member(contentID).Build(),
		vc.Client.B().Expire().Key(VALKEY_PROCESSED_KEY).Seconds(PROCESSED_TTL_SECONDS).Build(),
	}

	responses := vc.DoMultiWithRetry(ctx, completed, 3)
	for _, res := range responses {
		if err := res.Error(); err != nil {
			return err
		}
	}
	return nil
}

// IsProcessed reports whether a content ID was already handled.
func (vc *ValkeyClient) IsProcessed(ctx context.Context, contentID string) bool {
	res := vc.DoWithRetry(ctx, vc.Client.B().Sismember().Key(VALKEY_PROCESSED_KEY).Member(contentID).Build(), 3)

	if err := res.Error(); isConnectionError(err) {
		vc.recreateClient()
	}

	ok, err := res.AsBool()
	if err != nil {
		return false
	}
	return ok
}

// CacheResult stores a scored result keyed by the hash of its cleaned text.
// Identical texts arriving within the TTL reuse the cached result.
func (vc *ValkeyClient) CacheResult(ctx context.Context, text string, result models.AnalysisResult) error {
	data, err := utils.SerializeToJSON(result)
	if err != nil {
		return err
	}

	cmd := vc.Client.B().Set().Key(resultKey(text)).Value(string(data)).
		ExSeconds(RESULT_CACHE_TTL_SECOND).Build()
	return vc.DoWithRetry(ctx, cmd, 3).Error()
}

// GetCachedResult looks up a previously scored result for the same text.
func (vc *ValkeyClient) GetCachedResult(ctx context.Context, text string) (models.AnalysisResult, bool) {
	var result models.AnalysisResult

	// A miss is the common case, so no retry wrapper here.
	res := vc.Client.Do(ctx, vc.Client.B().Get().Key(resultKey(text)).Build())
	if res.Error() != nil {
		return result, false
	}

	data, err := res.AsBytes()
	if err != nil {
		return result, false
	}
	if err := utils.DeserializeFromJSON(data, &result); err != nil {
		return result, false
	}
	return result, true
}

func resultKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return VALKEY_RESULT_KEY_PREF + hex.EncodeToString(sum[:])
}

func (vc *ValkeyClient) DoMultiWithRetry(ctx context.Context, completed []valkey.Completed, retries int) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		results = vc.Client.DoMulti(ctx, completed...)
		hasErr := false
		for _, r := range results {
			if r.Error() != nil {
				hasErr = true
				slog.Warn("[ValkeyClient] DoMulti failed",
					slog.Int("attempt", i+1),
					slog.String("error", r.Error().Error()))
				if isConnectionError(r.Error()) {
					vc.recreateClient()
				}
				break
			}
		}
		if !hasErr {
			break
		}
		time.Sleep(time.Millisecond * 250)
	}

	return results
}

func (vc *ValkeyClient) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, completed)
		if result.Error() == nil {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
