package kafka_client

import "time"

const (
	KAFKA_TOPIC_RAW_CONTENT         = "raw-content"         // incoming Turkish text from content sources
	KAFKA_TOPIC_ANALYSIS_REQUEST    = "analysis-request"    // cleaned, batched texts awaiting scoring
	KAFKA_TOPIC_UNCERTAIN_SENTIMENT = "uncertain-sentiment" // low-confidence lexicon results for model rescoring
	KAFKA_TOPIC_ANALYSIS_RESULTS    = "analysis-results"    // scored results heading to storage
)

const (
	MAX_RETRIES = 5
	RETRY_DELAY = 2 * time.Second
)
