package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spacesedan/sentichat/internal/chatbot"
	"github.com/spacesedan/sentichat/internal/models"
)

const (
	CommandEnd  = "/end"
	CommandQuit = "/quit"
)

var ErrSessionEnded = errors.New("session has ended")

type StatementResolver interface {
	ResolveAll(ctx context.Context, texts []string) ([]models.StatementVerdict, error)
}

type ConversationJudge interface {
	Judge(ctx context.Context, transcript string, useRemote bool) (models.ConversationVerdict, error)
}

type Kind int

const (
	KindIgnored Kind = iota
	KindReply
	KindEnded
	KindQuit
)

type Result struct {
	Kind   Kind
	Reply  string
	Report *Report
}

// Report is produced once, when the conversation ends.
type Report struct {
	ConversationID string                     `json:"conversation_id"`
	Statements     []models.StatementVerdict  `json:"statements"`
	Conversation   models.ConversationVerdict `json:"conversation"`
}

// Session is one interactive conversation. It is not safe for concurrent use.
type Session struct {
	bot       *chatbot.Bot
	resolver  StatementResolver
	judge     ConversationJudge
	useRemote bool
	ended     bool
}

func New(bot *chatbot.Bot, resolver StatementResolver, judge ConversationJudge, useRemote bool) *Session {
	return &Session{bot: bot, resolver: resolver, judge: judge, useRemote: useRemote}
}

func (s *Session) ID() string {
	return s.bot.Conversation().ID
}

// Handle routes one line of input: commands end or quit the session, anything
// else goes to the responder.
func (s *Session) Handle(ctx context.Context, input string) (Result, error) {
	if s.ended {
		return Result{}, ErrSessionEnded
	}

	input = strings.TrimSpace(input)
	switch strings.ToLower(input) {
	case "":
		return Result{Kind: KindIgnored}, nil
	case CommandQuit:
		s.ended = true
		return Result{Kind: KindQuit}, nil
	case CommandEnd:
		report, err := s.End(ctx)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindEnded, Report: &report}, nil
	}

	return Result{Kind: KindReply, Reply: s.bot.HandleUser(input)}, nil
}

// End runs Tier 2 over every user message, then Tier 1 over the full transcript.
func (s *Session) End(ctx context.Context) (Report, error) {
	if s.ended {
		return Report{}, ErrSessionEnded
	}
	s.ended = true

	conv := s.bot.Conversation()
	log := slog.With(slog.String("conversation_id", conv.ID))
	log.Info("[Session] Conversation ended", slog.Int("utterances", conv.Len()))

	statements, err := s.resolver.ResolveAll(ctx, conv.UserMessages())
	if err != nil {
		return Report{}, fmt.Errorf("statement sentiment: %w", err)
	}

	verdict, err := s.judge.Judge(ctx, conv.AsText(true), s.useRemote)
	if err != nil {
		return Report{}, fmt.Errorf("conversation sentiment: %w", err)
	}

	log.Info("[Session] Analysis complete",
		slog.String("overall_label", string(verdict.OverallLabel)),
		slog.String("trend", string(verdict.Trend)))
	return Report{ConversationID: conv.ID, Statements: statements, Conversation: verdict}, nil
}
