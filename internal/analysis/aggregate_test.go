package analysis

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spacesedan/sentichat/internal/models"
	"github.com/spacesedan/sentichat/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func utterances(lines ...string) []models.Utterance {
	var out []models.Utterance
	for i, l := range lines {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAgent
		}
		out = append(out, models.Utterance{Role: role, Text: l})
	}
	return out
}

func TestAggregate_MixedConversation(t *testing.T) {
	res := &scriptedResolver{scores: map[string]float64{
		"I love this!":     0.95,
		"This is terrible": -0.90,
		"It's fine":        0.0,
	}}
	agg := NewAggregator(res)

	transcript := "User: I love this!\nBot: Glad!\nUser: This is terrible\nBot: Sorry.\nUser: It's fine\nBot: Ok."
	got, err := agg.AggregateTranscript(context.Background(), transcript)
	require.NoError(t, err)

	want := models.ConversationVerdict{
		OverallLabel: models.LabelNeutral,
		AverageScore: 0.05 / 3,
		Trend:        models.TrendWorsening,
		Reason:       "Aggregated 3 user messages; avg score 0.017.",
		Confidence:   0.4 + 0.6*(0.05/3),
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("verdict mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, res.calls, "agent lines are not resolved")
}

func TestAggregate_NoUserMessages(t *testing.T) {
	res := &scriptedResolver{}
	agg := NewAggregator(res)

	for _, transcript := range []string{"", "Bot: hello\nBot: anyone?", "\n\n  \n"} {
		got, err := agg.AggregateTranscript(context.Background(), transcript)
		require.NoError(t, err)
		assert.Equal(t, models.ConversationVerdict{
			OverallLabel: models.LabelNeutral,
			AverageScore: 0,
			Trend:        models.TrendStable,
			Reason:       "No user messages found in conversation.",
			Confidence:   0.25,
		}, got)
	}
	assert.Zero(t, res.calls)
}

func TestAggregate_SingleMessage(t *testing.T) {
	agg := NewAggregator(&scriptedResolver{scores: map[string]float64{"awful": -0.9}})

	got, err := agg.Aggregate(context.Background(), utterances("awful"))
	require.NoError(t, err)
	assert.Equal(t, models.LabelNegative, got.OverallLabel)
	assert.Equal(t, models.TrendStable, got.Trend, "one score is compared with itself")
	assert.InDelta(t, 0.8, got.Confidence, 1e-9, "confidence is capped")
}

func TestAggregate_LabelDeadZone(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  models.Label
	}{
		{"lower edge positive", 0.05, models.LabelPositive},
		{"just inside", 0.0499, models.LabelNeutral},
		{"zero", 0, models.LabelNeutral},
		{"negative edge", -0.05, models.LabelNegative},
		{"just inside negative", -0.0499, models.LabelNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, labelFor(tt.score))
		})
	}
}

func TestTrendFor(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   models.Trend
	}{
		{"single", []float64{0.9}, models.TrendStable},
		{"improving pair", []float64{-0.8, 0.7}, models.TrendImproving},
		{"worsening odd", []float64{0.95, -0.90, 0.0}, models.TrendWorsening},
		{"middle ignored for odd n", []float64{0.6, -0.9, 0.6}, models.TrendStable},
		{"flat", []float64{0.2, 0.22, 0.21, 0.2}, models.TrendStable},
		{"four improving", []float64{-0.9, -0.7, 0.6, 0.8}, models.TrendImproving},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trendFor(tt.scores))
		})
	}
}

func TestAggregate_ConfidenceBounds(t *testing.T) {
	res := &scriptedResolver{scores: map[string]float64{"a": 0.6, "b": 0.7, "c": -0.1}}
	agg := NewAggregator(res)

	got, err := agg.Aggregate(context.Background(), []models.Utterance{
		{Role: models.RoleUser, Text: "a"},
		{Role: models.RoleUser, Text: "b"},
		{Role: models.RoleUser, Text: "c"},
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.Confidence, 0.4)
	assert.LessOrEqual(t, got.Confidence, 0.8)
	assert.InDelta(t, 0.4, got.AverageScore, 1e-9)
	assert.InDelta(t, 0.64, got.Confidence, 1e-9)
}

func TestAggregate_Idempotent(t *testing.T) {
	res := &scriptedResolver{scores: map[string]float64{"good": 0.8, "bad": -0.6}}
	agg := NewAggregator(res)
	transcript := "User: good\nBot: nice\nUser: bad"

	first, err := agg.AggregateTranscript(context.Background(), transcript)
	require.NoError(t, err)
	second, err := agg.AggregateTranscript(context.Background(), transcript)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAggregate_AbortsOnClassifierFailure(t *testing.T) {
	res := &scriptedResolver{
		scores: map[string]float64{"fine": 0.9},
		fail:   map[string]bool{"broken": true},
	}
	agg := NewAggregator(res)

	_, err := agg.AggregateTranscript(context.Background(), "User: fine\nUser: broken\nUser: fine")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user message 2")
	assert.Equal(t, 2, res.calls, "stops at the first failure")
}

type tableClassifier map[string]models.Classification

func (c tableClassifier) Classify(_ context.Context, text string) (models.Classification, error) {
	return c[text], nil
}

func TestAggregate_ThroughResolverThreshold(t *testing.T) {
	classifier := tableClassifier{
		"I love this!":     {Polarity: models.PolarityPositive, Confidence: 0.95},
		"This is terrible": {Polarity: models.PolarityNegative, Confidence: 0.90},
		"It's fine":        {Polarity: models.PolarityPositive, Confidence: 0.40},
	}
	agg := NewAggregator(sentiment.NewResolver(classifier, sentiment.DefaultNeutralThreshold))

	got, err := agg.AggregateTranscript(context.Background(),
		"User: I love this!\nBot: ok\nUser: This is terrible\nBot: ok\nUser: It's fine")
	require.NoError(t, err)

	want := models.ConversationVerdict{
		OverallLabel: models.LabelNeutral,
		AverageScore: 0.05 / 3,
		Trend:        models.TrendWorsening,
		Reason:       "Aggregated 3 user messages; avg score 0.017.",
		Confidence:   0.4 + 0.6*(0.05/3),
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("verdict mismatch (-want +got):\n%s", diff)
	}
}
