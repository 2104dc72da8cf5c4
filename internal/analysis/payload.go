package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spacesedan/sentichat/internal/models"
)

var requiredVerdictKeys = []string{"overall_label", "average_score", "trend", "reason", "confidence"}

var errNoJSONObject = errors.New("no JSON object found in model output")

// DecodeVerdict pulls the structured verdict out of raw model text. It checks that
// every required key is present but does not re-validate value ranges.
func DecodeVerdict(output string) (models.ConversationVerdict, error) {
	raw, err := extractJSONObject(output)
	if err != nil {
		return models.ConversationVerdict{}, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return models.ConversationVerdict{}, fmt.Errorf("unmarshal verdict payload: %w", err)
	}
	for _, key := range requiredVerdictKeys {
		if _, ok := fields[key]; !ok {
			return models.ConversationVerdict{}, fmt.Errorf("missing key %q in verdict payload", key)
		}
	}

	var verdict models.ConversationVerdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return models.ConversationVerdict{}, fmt.Errorf("decode verdict payload: %w", err)
	}
	return verdict, nil
}

// extractJSONObject returns the payload as-is when it is valid JSON, otherwise the
// span from the first '{' to the last '}'. Curly quotes are only repaired when
// neither parses, so typographic quotes inside string values survive.
func extractJSONObject(output string) (string, error) {
	s := stripCodeFences(output)
	if s == "" {
		return "", errNoJSONObject
	}
	if json.Valid([]byte(s)) {
		return s, nil
	}
	if obj, ok := braceSpan(s); ok && json.Valid([]byte(obj)) {
		return obj, nil
	}

	repaired := replaceCurlyQuotes(s)
	if json.Valid([]byte(repaired)) {
		return repaired, nil
	}
	obj, ok := braceSpan(repaired)
	if !ok {
		return "", fmt.Errorf("%w (len=%d)", errNoJSONObject, len(s))
	}
	return obj, nil
}

func braceSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func stripCodeFences(response string) string {
	response = strings.TrimSpace(response)

	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	return strings.TrimSpace(response)
}

func replaceCurlyQuotes(response string) string {
	response = strings.ReplaceAll(response, "“", `"`) // Left curly quote
	response = strings.ReplaceAll(response, "”", `"`) // Right curly quote
	return response
}
