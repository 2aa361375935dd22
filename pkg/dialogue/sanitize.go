package dialogue

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/animefmt/pkg/domain"
)

// DefaultMaxInputBytes bounds inbound text. Telegram caps a message at 4096
// characters, which is up to four times as many bytes.
const DefaultMaxInputBytes = 16 << 10

// sanitizeInput enforces the size limit, validates UTF-8 and strips control
// characters other than newline, tab and carriage return.
func sanitizeInput(input string, limit int) (string, error) {
	if len(input) > limit {
		// Reject rather than truncate: a cut block would fail to parse in confusing ways.
		return "", fmt.Errorf("%w: size=%d limit=%d", domain.ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", domain.ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	if strings.IndexFunc(input, isUnsafeControl) < 0 {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !isUnsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
