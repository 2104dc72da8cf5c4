package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/genai"
)

// GeminiModel asks Gemini for a conversation verdict constrained by a response schema.
type GeminiModel struct {
	client *genai.Client
	model  string
}

func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GOOGLE_API_KEY is not set", ErrMissingAPIKey)
	}
	if model == "" {
		model = GEMINI_DEFAULT_MODEL
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			Headers: http.Header{"User-Agent": []string{USER_AGENT}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	slog.Info("[GeminiModel] Client initialized", slog.String("model", model))
	return &GeminiModel{client: client, model: model}, nil
}

func (g *GeminiModel) Name() string {
	return "gemini:" + g.model
}

func (g *GeminiModel) GenerateVerdict(ctx context.Context, instructions, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instructions, genai.RoleUser),
		Temperature:       genai.Ptr[float32](JUDGE_TEMPERATURE),
		MaxOutputTokens:   JUDGE_MAX_OUTPUT_TOKENS,
		ResponseMIMEType:  "application/json",
		ResponseSchema:    geminiVerdictSchema(),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return resp.Text(), nil
}

func geminiVerdictSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"overall_label": {Type: genai.TypeString, Enum: verdictLabels},
			"average_score": {Type: genai.TypeNumber, Minimum: genai.Ptr(-1.0), Maximum: genai.Ptr(1.0)},
			"trend":         {Type: genai.TypeString, Enum: verdictTrends},
			"reason":        {Type: genai.TypeString},
			"confidence":    {Type: genai.TypeNumber, Minimum: genai.Ptr(0.0), Maximum: genai.Ptr(1.0)},
		},
		Required:         verdictKeys,
		PropertyOrdering: verdictKeys,
	}
}
