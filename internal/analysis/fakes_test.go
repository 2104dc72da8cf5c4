package analysis

import (
	"context"
	"errors"
	"strings"

	"github.com/spacesedan/sentichat/internal/models"
)

// scriptedResolver resolves statements from a fixed table of scores.
type scriptedResolver struct {
	scores map[string]float64
	fail   map[string]bool
	calls  int
}

func (s *scriptedResolver) Resolve(_ context.Context, text string) (models.StatementVerdict, error) {
	s.calls++
	text = strings.TrimSpace(text)
	if s.fail[text] {
		return models.StatementVerdict{}, errors.New("classifier unavailable")
	}
	score := s.scores[text]
	label := models.LabelNeutral
	switch {
	case score > 0:
		label = models.LabelPositive
	case score < 0:
		label = models.LabelNegative
	}
	return models.StatementVerdict{Text: text, Label: label, Score: score}, nil
}

// fakeModel returns a canned payload or error and records the prompt it was sent.
type fakeModel struct {
	output string
	err    error
	block  bool

	calls        int
	instructions string
	prompt       string
}

func (f *fakeModel) Name() string { return "fake" }

func (f *fakeModel) GenerateVerdict(ctx context.Context, instructions, prompt string) (string, error) {
	f.calls++
	f.instructions = instructions
	f.prompt = prompt
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.output, f.err
}
