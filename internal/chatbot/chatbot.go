// Package chatbot is a keyword-driven responder. It keeps the full transcript of
// the session it belongs to.
package chatbot

import (
	"math/rand"
	"time"

	"github.com/spacesedan/sentichat/internal/models"
)

const DefaultName = "LiaBot"

type Bot struct {
	Name         string
	conversation *models.Conversation
	rng          *rand.Rand
}

type Option func(*Bot)

// WithRand fixes the source used to pick phrasing, e.g. a seeded one in tests.
func WithRand(rng *rand.Rand) Option {
	return func(b *Bot) { b.rng = rng }
}

func WithName(name string) Option {
	return func(b *Bot) { b.Name = name }
}

func New(opts ...Option) *Bot {
	b := &Bot{
		Name:         DefaultName,
		conversation: models.NewConversation(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return b
}

func (b *Bot) Conversation() *models.Conversation {
	return b.conversation
}

// Respond picks a reply without touching the transcript.
func (b *Bot) Respond(text string) string {
	r, m := matchRule(text)
	return r.reply(b, m)
}

// HandleUser records the utterance, replies, and records the reply.
func (b *Bot) HandleUser(text string) string {
	b.conversation.Append(models.RoleUser, text)
	reply := b.Respond(text)
	b.conversation.Append(models.RoleAgent, reply)
	return reply
}

func (b *Bot) pick(pool []string) string {
	return pool[b.rng.Intn(len(pool))]
}
