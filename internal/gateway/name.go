package gateway

import (
	"strings"
	"unicode"

	"github.com/finnbear/moderation"
)

// validateName enforces the player-name contract: trim, bounded
// length, alphanumeric-or-space, then profanity-filter the survivor.
func validateName(raw string, minLen, maxLen int) (string, bool) {
	name := strings.TrimSpace(raw)
	if len(name) < minLen || len(name) > maxLen {
		return "", false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' {
			return "", false
		}
	}

	result := moderation.Scan(name)
	if result.Is(moderation.Inappropriate) {
		if result.Is(moderation.Inappropriate & moderation.Moderate) {
			return "", false
		}
		name, _ = moderation.Censor(name, moderation.Inappropriate)
	}

	if len(name) < minLen {
		return "", false
	}
	return name, true
}

// nameTaken reports whether name collides case-insensitively with any
// live session's name.
func nameTaken(gw *Gateway, name string) bool {
	lower := strings.ToLower(name)
	for c := gw.clients.First; c != nil; c = c.Data().Next {
		if strings.ToLower(c.Data().Name) == lower {
			return true
		}
	}
	return false
}
