package clients

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// openAIVerdict mirrors models.ConversationVerdict with the enum constraints the
// strict schema needs.
type openAIVerdict struct {
	OverallLabel string  `json:"overall_label" jsonschema:"enum=Positive,enum=Negative,enum=Neutral"`
	AverageScore float64 `json:"average_score" jsonschema:"description=Mean sentiment from -1.0 to 1.0"`
	Trend        string  `json:"trend" jsonschema:"enum=Improving,enum=Worsening,enum=Stable"`
	Reason       string  `json:"reason" jsonschema:"description=Short human-readable explanation"`
	Confidence   float64 `json:"confidence" jsonschema:"description=Confidence from 0 to 1"`
}

var openAIVerdictSchema = GenerateSchema[openAIVerdict]()

// OpenAIModel asks the Responses API for a verdict under a strict json_schema format.
type OpenAIModel struct {
	client *openai.Client
	model  string
}

func NewOpenAIModel(apiKey, model string, timeout time.Duration) (*OpenAIModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrMissingAPIKey)
	}
	if model == "" {
		model = OPENAI_DEFAULT_MODEL
	}
	if timeout <= 0 {
		timeout = JUDGE_REQUEST_TIMEOUT
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
		option.WithHeader("User-Agent", USER_AGENT),
	)
	slog.Info("[OpenAIModel] Client initialized",
		slog.String("model", model),
		slog.Duration("timeout", timeout))

	return &OpenAIModel{client: &client, model: model}, nil
}

func (o *OpenAIModel) Name() string {
	return "openai:" + o.model
}

func (o *OpenAIModel) GenerateVerdict(ctx context.Context, instructions, prompt string) (string, error) {
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "ConversationVerdict",
			Schema:      openAIVerdictSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Conversation sentiment verdict JSON"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(JUDGE_MAX_OUTPUT_TOKENS),
		Temperature:     openai.Float(JUDGE_TEMPERATURE),
		Instructions:    openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai responses: %w", err)
	}
	return resp.OutputText(), nil
}
