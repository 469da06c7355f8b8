// Package moderation masks forbidden words in posted messages.
package moderation

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"

	chaterrors "chat-room/errors"
)

// Moderator replaces every occurrence of a forbidden word with the mask
// rune. Matching is case-insensitive; message length is preserved.
type Moderator struct {
	matcher *goahocorasick.Machine
	mask    rune
}

// NewModerator builds the Aho-Corasick automaton once. Censor is then
// safe for concurrent use.
func NewModerator(words []string, mask rune) (*Moderator, error) {
	patterns := make([][]rune, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		patterns = append(patterns, []rune(w))
	}
	if len(patterns) == 0 {
		return nil, chaterrors.ErrEmptyCensorList
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: m, mask: mask}, nil
}

// Censor masks every forbidden word found in the original text.
func (m *Moderator) Censor(original string) string {
	runes := []rune(original)
	lowered := make([]rune, len(runes))
	for i, r := range runes {
		lowered[i] = unicode.ToLower(r)
	}

	spans := m.matcher.MultiPatternSearch(lowered, false)
	if len(spans) == 0 {
		return original
	}
	for _, span := range spans {
		end := span.Pos + len(span.Word)
		for i := span.Pos; i < end && i < len(runes); i++ {
			runes[i] = m.mask
		}
	}
	return string(runes)
}

// LoadWords reads one forbidden word per line, skipping blanks and
// comments.
func LoadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}
