package sentiment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/spacesedan/sentichat/internal/models"
)

// ClassificationCache stores classifier outputs keyed by statement text.
type ClassificationCache interface {
	GetClassification(ctx context.Context, key string) (models.Classification, bool, error)
	SetClassification(ctx context.Context, key string, c models.Classification) error
}

// CachedClassifier consults the cache before the wrapped classifier.
// Cache errors are logged and never fail a classification.
type CachedClassifier struct {
	next      Classifier
	cache     ClassificationCache
	namespace string
}

func NewCachedClassifier(next Classifier, cache ClassificationCache, namespace string) *CachedClassifier {
	return &CachedClassifier{next: next, cache: cache, namespace: namespace}
}

func (c *CachedClassifier) Classify(ctx context.Context, text string) (models.Classification, error) {
	key := c.key(text)

	cached, ok, err := c.cache.GetClassification(ctx, key)
	if err != nil {
		slog.Warn("[CachedClassifier] Cache lookup failed",
			slog.String("error", err.Error()))
	} else if ok {
		return cached, nil
	}

	out, err := c.next.Classify(ctx, text)
	if err != nil {
		return out, err
	}

	if err := c.cache.SetClassification(ctx, key, out); err != nil {
		slog.Warn("[CachedClassifier] Cache write failed",
			slog.String("error", err.Error()))
	}
	return out, nil
}

func (c *CachedClassifier) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return c.namespace + ":" + hex.EncodeToString(sum[:])
}
