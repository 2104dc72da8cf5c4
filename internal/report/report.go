// Package report renders tier results for a terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spacesedan/sentichat/internal/models"
)

var labelEmoji = map[models.Label]string{
	models.LabelPositive: "🙂",
	models.LabelNegative: "😞",
	models.LabelNeutral:  "😐",
}

var (
	headingStyle  = lipgloss.NewStyle().Bold(true)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	neutralStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const separatorWidth = 70

func Separator() string {
	return strings.Repeat("-", separatorWidth)
}

func Emoji(l models.Label) string {
	return labelEmoji[l]
}

func styledLabel(l models.Label) string {
	switch l {
	case models.LabelPositive:
		return positiveStyle.Render(string(l))
	case models.LabelNegative:
		return negativeStyle.Render(string(l))
	default:
		return neutralStyle.Render(string(l))
	}
}

// Statements renders the Tier 2 block, one numbered line per user message.
func Statements(verdicts []models.StatementVerdict) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Statement-level sentiment (Tier 2):"))
	b.WriteString("\n")
	for i, v := range verdicts {
		fmt.Fprintf(&b, "%02d. %q -> %s (score=%.3f) %s\n", i+1, v.Text, styledLabel(v.Label), v.Score, Emoji(v.Label))
	}
	return b.String()
}

// Conversation renders the Tier 1 block.
func Conversation(v models.ConversationVerdict) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Conversation-level sentiment (Tier 1):"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Overall label: %s %s\n", styledLabel(v.OverallLabel), Emoji(v.OverallLabel))
	fmt.Fprintf(&b, "Average score: %.3f\n", v.AverageScore)
	fmt.Fprintf(&b, "Trend: %s\n", v.Trend)
	fmt.Fprintf(&b, "Confidence: %.2f\n", v.Confidence)
	fmt.Fprintf(&b, "Reason: %s\n", v.Reason)
	return b.String()
}
