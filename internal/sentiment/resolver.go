package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spacesedan/sentichat/internal/models"
)

const DefaultNeutralThreshold = 0.55

// ErrClassifierUnavailable is returned when the statement classifier cannot be loaded or invoked.
var ErrClassifierUnavailable = errors.New("sentiment classifier unavailable")

// Classifier is a binary polarity model. Implementations must be safe for concurrent reads.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.Classification, error)
}

// Resolver turns a binary classifier into three-way statement verdicts.
type Resolver struct {
	classifier Classifier
	threshold  float64
}

func NewResolver(classifier Classifier, threshold float64) *Resolver {
	return &Resolver{classifier: classifier, threshold: threshold}
}

func (r *Resolver) Threshold() float64 {
	return r.threshold
}

func (r *Resolver) Resolve(ctx context.Context, text string) (models.StatementVerdict, error) {
	return r.ResolveWithThreshold(ctx, text, r.threshold)
}

// ResolveWithThreshold classifies text and maps low-confidence results to Neutral.
// Blank text is Neutral without a classifier call.
func (r *Resolver) ResolveWithThreshold(ctx context.Context, text string, threshold float64) (models.StatementVerdict, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.StatementVerdict{Text: "", Label: models.LabelNeutral, Score: 0.0}, nil
	}

	out, err := r.classifier.Classify(ctx, text)
	if err != nil {
		if errors.Is(err, ErrClassifierUnavailable) {
			return models.StatementVerdict{}, err
		}
		return models.StatementVerdict{}, fmt.Errorf("%w: %w", ErrClassifierUnavailable, err)
	}

	return verdictFor(text, out, threshold), nil
}

// ResolveAll resolves texts in order and stops at the first failure.
func (r *Resolver) ResolveAll(ctx context.Context, texts []string) ([]models.StatementVerdict, error) {
	verdicts := make([]models.StatementVerdict, 0, len(texts))
	for i, text := range texts {
		v, err := r.Resolve(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i+1, err)
		}
		verdicts = append(verdicts, v)
	}
	return verdicts, nil
}

func verdictFor(text string, out models.Classification, threshold float64) models.StatementVerdict {
	if out.Confidence < threshold {
		return models.StatementVerdict{Text: text, Label: models.LabelNeutral, Score: 0.0}
	}
	if out.Polarity == models.PolarityPositive {
		return models.StatementVerdict{Text: text, Label: models.LabelPositive, Score: out.Confidence}
	}
	return models.StatementVerdict{Text: text, Label: models.LabelNegative, Score: -out.Confidence}
}
