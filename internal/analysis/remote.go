package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/sentichat/internal/models"
)

// ErrRemoteJudge covers every way the hosted judge can fail: transport errors,
// missing credentials, disabled integration and unusable payloads.
var ErrRemoteJudge = errors.New("remote judge failed")

const JudgeInstructions = `You are an assistant that analyzes the emotional direction of a conversation.
Return output STRICTLY as JSON with the following keys:
  - overall_label: one of "Positive", "Negative", "Neutral"
  - average_score: a float in [-1.0, 1.0]
  - trend: one of "Improving", "Worsening", "Stable"
  - reason: short human-readable explanation
  - confidence: a float in [0, 1]
Do NOT output anything except valid JSON.`

// VerdictModel is a hosted LLM asked for a structured conversation verdict.
type VerdictModel interface {
	Name() string
	GenerateVerdict(ctx context.Context, instructions, prompt string) (string, error)
}

// RemoteJudge makes a single attempt at a remote verdict. It never retries.
type RemoteJudge struct {
	model   VerdictModel
	timeout time.Duration
}

func NewRemoteJudge(model VerdictModel, timeout time.Duration) *RemoteJudge {
	return &RemoteJudge{model: model, timeout: timeout}
}

func BuildJudgePrompt(transcript string) string {
	return "conversation:\n" + TruncateTranscript(transcript, MaxPromptChars) + "\n\nReturn ONLY the JSON."
}

func (r *RemoteJudge) JudgeConversation(ctx context.Context, transcript string) (models.ConversationVerdict, error) {
	if r == nil || r.model == nil {
		return models.ConversationVerdict{}, fmt.Errorf("%w: no remote judge configured", ErrRemoteJudge)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	output, err := r.model.GenerateVerdict(ctx, JudgeInstructions, BuildJudgePrompt(transcript))
	if err != nil {
		return models.ConversationVerdict{}, fmt.Errorf("%w: %s: %w", ErrRemoteJudge, r.model.Name(), err)
	}

	verdict, err := DecodeVerdict(output)
	if err != nil {
		return models.ConversationVerdict{}, fmt.Errorf("%w: %s: %w", ErrRemoteJudge, r.model.Name(), err)
	}

	slog.Info("[RemoteJudge] Verdict received",
		slog.String("model", r.model.Name()),
		slog.Duration("elapsed", time.Since(start)))
	return verdict, nil
}
