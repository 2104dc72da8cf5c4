package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/spacesedan/sentichat/internal/models"
)

const (
	// deadZone bounds both the label and the trend: |x| < deadZone is Neutral/Stable.
	deadZone = 0.05

	emptyConfidence = 0.25
	baseConfidence  = 0.4
	confidenceSlope = 0.6
	maxConfidence   = 0.8
)

// StatementResolver is the Tier 2 dependency of the aggregator.
type StatementResolver interface {
	Resolve(ctx context.Context, text string) (models.StatementVerdict, error)
}

// Aggregator is the local, deterministic Tier 1 path.
type Aggregator struct {
	resolver StatementResolver
}

func NewAggregator(resolver StatementResolver) *Aggregator {
	return &Aggregator{resolver: resolver}
}

// EmptyConversationVerdict is returned when a transcript has no User lines.
func EmptyConversationVerdict() models.ConversationVerdict {
	return models.ConversationVerdict{
		OverallLabel: models.LabelNeutral,
		AverageScore: 0.0,
		Trend:        models.TrendStable,
		Reason:       "No user messages found in conversation.",
		Confidence:   emptyConfidence,
	}
}

func (a *Aggregator) AggregateTranscript(ctx context.Context, transcript string) (models.ConversationVerdict, error) {
	return a.Aggregate(ctx, ParseTranscript(transcript))
}

// Aggregate averages the statement scores of the User utterances. A classifier
// failure on any statement aborts the whole aggregation.
func (a *Aggregator) Aggregate(ctx context.Context, utterances []models.Utterance) (models.ConversationVerdict, error) {
	texts := models.UserTexts(utterances)
	if len(texts) == 0 {
		return EmptyConversationVerdict(), nil
	}

	scores := make([]float64, 0, len(texts))
	for i, text := range texts {
		v, err := a.resolver.Resolve(ctx, text)
		if err != nil {
			return models.ConversationVerdict{}, fmt.Errorf("aggregate user message %d: %w", i+1, err)
		}
		scores = append(scores, v.Score)
	}

	avg := mean(scores)
	return models.ConversationVerdict{
		OverallLabel: labelFor(avg),
		AverageScore: avg,
		Trend:        trendFor(scores),
		Reason:       fmt.Sprintf("Aggregated %d user messages; avg score %.3f.", len(scores), avg),
		Confidence:   math.Min(maxConfidence, baseConfidence+confidenceSlope*math.Abs(avg)),
	}, nil
}

func labelFor(avg float64) models.Label {
	switch {
	case avg >= deadZone:
		return models.LabelPositive
	case avg <= -deadZone:
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}

// trendFor compares the mean of the first floor(n/2) scores with the mean of the
// last floor(n/2). The middle score of an odd-length run is in neither half, and
// a single score is compared with itself.
func trendFor(scores []float64) models.Trend {
	n := len(scores)
	half := max(1, n/2)
	delta := mean(scores[n-half:]) - mean(scores[:half])

	switch {
	case delta >= deadZone:
		return models.TrendImproving
	case delta <= -deadZone:
		return models.TrendWorsening
	default:
		return models.TrendStable
	}
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
