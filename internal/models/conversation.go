package models

import (
	"errors"
	"sort"
	"strings"
)

// ConversationIDSeparator joins the two normalized participant identifiers.
const ConversationIDSeparator = "__"

// ErrEmptyParticipant is returned when a conversation id is requested for a
// blank identifier. Callers must not persist anything in that case.
var ErrEmptyParticipant = errors.New("participant identifier is empty")

// DeriveConversationID computes the stable identifier for a two-party
// conversation. Both identifiers (user ids or emails) are lowercased,
// sorted lexicographically and joined, so either party derives the same id:
// DeriveConversationID(a, b) == DeriveConversationID(b, a).
func DeriveConversationID(a, b string) (string, error) {
	first := strings.ToLower(strings.TrimSpace(a))
	second := strings.ToLower(strings.TrimSpace(b))
	if first == "" || second == "" {
		return "", ErrEmptyParticipant
	}
	if first > second {
		first, second = second, first
	}
	return first + ConversationIDSeparator + second, nil
}

// NormalizeParticipants lowercases, dedupes and sorts a participant list,
// matching the shape messages are persisted with. Order of the input does
// not matter; the result is always the same sorted set.
func NormalizeParticipants(participants []string) []string {
	seen := make(map[string]bool, len(participants))
	normalized := make([]string, 0, len(participants))
	for _, p := range participants {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		normalized = append(normalized, p)
	}
	sort.Strings(normalized)
	return normalized
}
