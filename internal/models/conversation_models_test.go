package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversation(t *testing.T) {
	c := NewConversation()
	_, err := uuid.Parse(c.ID)
	require.NoError(t, err)

	assert.Equal(t, "", c.LastUserMessage())
	assert.Empty(t, c.UserMessages())
	assert.Equal(t, "", c.AsText(true))

	c.Append(RoleUser, " hi ")
	c.Append(RoleAgent, "Hello!")
	c.Append(RoleUser, "I'm fine")

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"hi", "I'm fine"}, c.UserMessages())
	assert.Equal(t, "I'm fine", c.LastUserMessage())
	assert.Equal(t, "User: hi\nBot: Hello!\nUser: I'm fine", c.AsText(true))
	assert.Equal(t, "User: hi\nUser: I'm fine", c.AsText(false))
}

func TestConversation_HistoryIsACopy(t *testing.T) {
	c := NewConversation()
	c.Append(RoleUser, "one")

	h := c.History()
	h[0].Text = "changed"
	assert.Equal(t, "one", c.History()[0].Text)
}

func TestNewConversation_UniqueIDs(t *testing.T) {
	assert.NotEqual(t, NewConversation().ID, NewConversation().ID)
}
