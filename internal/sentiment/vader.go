package sentiment

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/sentichat/internal/models"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and drops the resulting tags so only prose is scored.
func ConvertMarkdownToText(input string) string {
	input = RemoveLinks(input)
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := tagPattern.ReplaceAllString(string(output), " ")
	plainText = strings.NewReplacer("&amp;", "&", "&quot;", `"`, "&#39;", "'", "&lt;", "<", "&gt;", ">").Replace(plainText)

	return strings.Join(strings.Fields(plainText), " ")
}

// VaderClassifier is an offline lexicon classifier. The compound score in [-1, 1]
// is folded into a polarity and a confidence in [0.5, 1].
type VaderClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderClassifier() *VaderClassifier {
	slog.Info("[VaderClassifier] Using lexicon classifier")
	return &VaderClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderClassifier) Classify(_ context.Context, text string) (models.Classification, error) {
	plainText := ConvertMarkdownToText(text)
	score := v.analyzer.PolarityScores(plainText).Compound

	polarity := models.PolarityPositive
	if score < 0 {
		polarity = models.PolarityNegative
	}

	return models.Classification{
		Polarity:   polarity,
		Confidence: (1 + math.Abs(score)) / 2,
	}, nil
}
