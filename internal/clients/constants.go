package clients

import (
	"errors"
	"time"
)

const (
	GEMINI_DEFAULT_MODEL = "gemini-2.0-flash"
	OPENAI_DEFAULT_MODEL = "gpt-4o-mini"

	JUDGE_TEMPERATURE       = 0.0
	JUDGE_MAX_OUTPUT_TOKENS = 512
	JUDGE_REQUEST_TIMEOUT   = 30 * time.Second

	USER_AGENT = "sentichat-client/1.0 (+https://github.com/spacesedan/sentichat)"
)

// ErrMissingAPIKey is returned by remote model constructors when no credentials are configured.
var ErrMissingAPIKey = errors.New("missing API key")

var verdictLabels = []string{"Positive", "Negative", "Neutral"}
var verdictTrends = []string{"Improving", "Worsening", "Stable"}
var verdictKeys = []string{"overall_label", "average_score", "trend", "reason", "confidence"}
