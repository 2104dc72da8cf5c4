package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spacesedan/sentichat/internal/sentiment"
)

const (
	WARMUP_PROBE   = "hello"
	WARMUP_TIMEOUT = 3 * time.Minute
)

// WarmClassifier runs one probe classification so a lazily loaded model is
// ready before the first /end. healthy records whether the probe succeeded.
func WarmClassifier(ctx context.Context, classifier sentiment.Classifier, healthy *atomic.Bool) {
	ctx, cancel := context.WithTimeout(ctx, WARMUP_TIMEOUT)
	defer cancel()

	start := time.Now()
	if _, err := classifier.Classify(ctx, WARMUP_PROBE); err != nil {
		healthy.Store(false)
		slog.Warn("[HealthCheck] Classifier is unhealthy",
			slog.String("error", err.Error()))
		return
	}
	healthy.Store(true)
	slog.Debug("[HealthCheck] Classifier ready",
		slog.Duration("took", time.Since(start)))
}
