package models

// Label is the three-way sentiment judgment for a statement or a conversation.
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNegative Label = "Negative"
	LabelNeutral  Label = "Neutral"
)

// Polarity is what a binary classifier emits before neutrality thresholding.
// A classifier never reports Neutral.
type Polarity string

const (
	PolarityPositive Polarity = "Positive"
	PolarityNegative Polarity = "Negative"
)

type Trend string

const (
	TrendImproving Trend = "Improving"
	TrendWorsening Trend = "Worsening"
	TrendStable    Trend = "Stable"
)

// Classification is the raw output of a statement classifier.
type Classification struct {
	Polarity   Polarity `json:"polarity"`
	Confidence float64  `json:"confidence"`
}

// StatementVerdict is the Tier 2 judgment for one utterance.
// Score is the signed classifier confidence, or 0 when the label is Neutral.
type StatementVerdict struct {
	Text  string  `json:"text"`
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

// ConversationVerdict is the Tier 1 judgment for a whole conversation.
type ConversationVerdict struct {
	OverallLabel Label   `json:"overall_label"`
	AverageScore float64 `json:"average_score"`
	Trend        Trend   `json:"trend"`
	Reason       string  `json:"reason"`
	Confidence   float64 `json:"confidence"`
}
