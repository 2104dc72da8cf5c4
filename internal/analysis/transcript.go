package analysis

import (
	"strings"

	"github.com/spacesedan/sentichat/internal/models"
)

const (
	MaxPromptChars  = 20000
	truncatedMarker = "\n... [truncated]"
)

// ParseTranscript reads role-tagged lines ("User: ...", "Bot: ...").
// Blank lines and lines without a known role prefix are skipped.
func ParseTranscript(text string) []models.Utterance {
	var utterances []models.Utterance
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, role := range []models.Role{models.RoleUser, models.RoleAgent} {
			prefix := string(role) + ":"
			if strings.HasPrefix(line, prefix) {
				utterances = append(utterances, models.Utterance{
					Role: role,
					Text: strings.TrimSpace(line[len(prefix):]),
				})
				break
			}
		}
	}
	return utterances
}

// TruncateTranscript keeps the first max characters and appends a marker when
// it cut anything. An invalid byte counts as one character and is kept.
func TruncateTranscript(text string, max int) string {
	n := 0
	for i := range text {
		if n == max {
			return text[:i] + truncatedMarker
		}
		n++
	}
	return text
}
