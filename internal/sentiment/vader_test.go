package sentiment

import (
	"context"
	"testing"

	"github.com/spacesedan/sentichat/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMarkdownToText(t *testing.T) {
	in := "**Great** news, see [the docs](https://example.com/docs) & https://example.com"
	got := ConvertMarkdownToText(in)
	assert.Equal(t, "Great news, see the docs &", got)
}

func TestRemoveLinks(t *testing.T) {
	assert.Equal(t, "read this now", RemoveLinks("read [this](http://x.io/a) now"))
	assert.Equal(t, "visit ", RemoveLinks("visit www.example.com"))
}

func TestVaderClassifier_Polarity(t *testing.T) {
	v := NewVaderClassifier()
	ctx := context.Background()

	pos, err := v.Classify(ctx, "I love this, it is wonderful!")
	require.NoError(t, err)
	assert.Equal(t, models.PolarityPositive, pos.Polarity)
	assert.Greater(t, pos.Confidence, DefaultNeutralThreshold)

	neg, err := v.Classify(ctx, "This is terrible and I hate it.")
	require.NoError(t, err)
	assert.Equal(t, models.PolarityNegative, neg.Polarity)
	assert.Greater(t, neg.Confidence, DefaultNeutralThreshold)
}

func TestVaderClassifier_ConfidenceRange(t *testing.T) {
	v := NewVaderClassifier()
	for _, text := range []string{"ok", "the table is brown", "awful awful awful", "best day ever"} {
		out, err := v.Classify(context.Background(), text)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, out.Confidence, 0.5, text)
		assert.LessOrEqual(t, out.Confidence, 1.0, text)
	}
}
