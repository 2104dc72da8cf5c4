package models

import (
	"strings"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "User"
	RoleAgent Role = "Bot"
)

// Utterance is one line of a conversation. Role doubles as the transcript prefix.
type Utterance struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Line renders the utterance in the role-tagged transcript format ("User: hello").
func (u Utterance) Line() string {
	return string(u.Role) + ": " + u.Text
}

// Conversation is an append-only transcript owned by a single session.
type Conversation struct {
	ID         string
	utterances []Utterance
}

func NewConversation() *Conversation {
	return &Conversation{ID: uuid.New().String()}
}

func (c *Conversation) Append(role Role, text string) {
	c.utterances = append(c.utterances, Utterance{Role: role, Text: strings.TrimSpace(text)})
}

// History returns a copy of the transcript in order.
func (c *Conversation) History() []Utterance {
	return append([]Utterance(nil), c.utterances...)
}

func (c *Conversation) Len() int {
	return len(c.utterances)
}

func (c *Conversation) UserMessages() []string {
	return UserTexts(c.utterances)
}

func (c *Conversation) LastUserMessage() string {
	for i := len(c.utterances) - 1; i >= 0; i-- {
		if c.utterances[i].Role == RoleUser {
			return c.utterances[i].Text
		}
	}
	return ""
}

// AsText renders the transcript one role-tagged line per utterance.
func (c *Conversation) AsText(includeAgent bool) string {
	lines := make([]string, 0, len(c.utterances))
	for _, u := range c.utterances {
		if !includeAgent && u.Role == RoleAgent {
			continue
		}
		lines = append(lines, u.Line())
	}
	return strings.Join(lines, "\n")
}

// UserTexts keeps only the User-role texts, preserving order.
func UserTexts(utterances []Utterance) []string {
	var texts []string
	for _, u := range utterances {
		if u.Role == RoleUser {
			texts = append(texts, u.Text)
		}
	}
	return texts
}
