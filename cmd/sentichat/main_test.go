package main

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spacesedan/sentichat/config"
	"github.com/spacesedan/sentichat/internal/chatbot"
	"github.com/spacesedan/sentichat/internal/models"
	"github.com/spacesedan/sentichat/internal/session"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoResolver struct{}

func (echoResolver) ResolveAll(_ context.Context, texts []string) ([]models.StatementVerdict, error) {
	out := make([]models.StatementVerdict, len(texts))
	for i, t := range texts {
		out[i] = models.StatementVerdict{Text: t, Label: models.LabelPositive, Score: 0.9}
	}
	return out, nil
}

type fixedJudge struct{}

func (fixedJudge) Judge(context.Context, string, bool) (models.ConversationVerdict, error) {
	return models.ConversationVerdict{
		OverallLabel: models.LabelPositive,
		AverageScore: 0.9,
		Trend:        models.TrendStable,
		Reason:       "fixed",
		Confidence:   0.8,
	}, nil
}

func newLoopSession() (*session.Session, *chatbot.Bot) {
	bot := chatbot.New(chatbot.WithRand(rand.New(rand.NewSource(1))))
	return session.New(bot, echoResolver{}, fixedJudge{}, false), bot
}

func ready() bool { return true }

func TestChatLoop_EndPrintsBothTiers(t *testing.T) {
	s, bot := newLoopSession()
	var out bytes.Buffer

	err := chatLoop(context.Background(), s, bot.Name, ready, strings.NewReader("hello\n\nI am happy\n/end\nignored\n"), &out)
	require.NoError(t, err)

	text := out.String()
	tier2 := strings.Index(text, "Tier 2")
	tier1 := strings.Index(text, "Tier 1")
	require.NotEqual(t, -1, tier2)
	require.NotEqual(t, -1, tier1)
	assert.Less(t, tier2, tier1, "statements are printed before the conversation verdict")
	assert.Contains(t, text, `02. "I am happy"`)
	assert.Contains(t, text, "Reason: fixed")
	assert.Equal(t, 4, bot.Conversation().Len())
}

func TestChatLoop_QuitSkipsAnalysis(t *testing.T) {
	s, bot := newLoopSession()
	var out bytes.Buffer

	err := chatLoop(context.Background(), s, bot.Name, ready, strings.NewReader("hello\n/quit\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Bye!")
	assert.NotContains(t, out.String(), "Tier 1")
}

func TestChatLoop_EOFExits(t *testing.T) {
	s, bot := newLoopSession()
	var out bytes.Buffer

	err := chatLoop(context.Background(), s, bot.Name, ready, strings.NewReader("hello"), &out)
	assert.NoError(t, err)
}

func TestChatLoop_CancelExitsWhileWaitingForInput(t *testing.T) {
	s, bot := newLoopSession()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var out bytes.Buffer
	go func() { done <- chatLoop(ctx, s, bot.Name, ready, pr, &out) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("chat loop kept blocking on input after cancellation")
	}
	assert.Contains(t, out.String(), "Exiting.")
	assert.Zero(t, bot.Conversation().Len())
}

func TestChatLoop_WarnsWhenClassifierNotReady(t *testing.T) {
	s, bot := newLoopSession()
	var out bytes.Buffer
	notReady := func() bool { return false }

	err := chatLoop(context.Background(), s, bot.Name, notReady, strings.NewReader("hello\n/end\n"), &out)
	require.NoError(t, err)

	text := out.String()
	notice := strings.Index(text, "not ready yet")
	require.NotEqual(t, -1, notice)
	assert.Less(t, notice, strings.Index(text, "Tier 2"))
	assert.Equal(t, 1, strings.Count(text, "not ready yet"))
}

func TestApplyFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&flagProvider, "provider", "", "")
	cmd.Flags().StringVar(&flagModel, "model", "", "")
	cmd.Flags().StringVar(&flagBackend, "backend", "", "")
	cmd.Flags().Float64Var(&flagThreshold, "threshold", 0, "")
	cmd.Flags().BoolVar(&flagLocal, "local", false, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--provider", "openai", "--threshold", "0.6", "--local"}))

	c := config.Config{JudgeProvider: config.ProviderGemini, ClassifierBackend: config.BackendHugot, NeutralThreshold: 0.55}
	applyFlags(cmd, &c)

	assert.Equal(t, config.ProviderOpenAI, c.JudgeProvider)
	assert.Equal(t, config.BackendHugot, c.ClassifierBackend, "unset flags keep the env value")
	assert.Equal(t, 0.6, c.NeutralThreshold)
	assert.True(t, c.ForceLocal)
}

func TestReadTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.txt")
	require.NoError(t, os.WriteFile(path, []byte("User: hi\nBot: hello"), 0o644))

	got, err := readTranscript(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "User: hi\nBot: hello", got)

	got, err = readTranscript(strings.NewReader("User: from stdin"), "-")
	require.NoError(t, err)
	assert.Equal(t, "User: from stdin", got)

	_, err = readTranscript(nil, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
