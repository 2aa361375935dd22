package format

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Policy selects how a synopsis is reduced to its display form.
type Policy string

const (
	// PolicyPack splits the text into sentences and greedily packs them into
	// lines of at most LineWidth characters, keeping at most MaxLines lines.
	// No ellipsis is added.
	PolicyPack Policy = "pack"

	// PolicyTruncate cuts the text after MaxChars characters and appends the
	// ellipsis marker.
	PolicyTruncate Policy = "truncate"
)

// Compactor defaults.
const (
	DefaultLineWidth = 70
	DefaultMaxLines  = 5
	DefaultMaxChars  = 500
	DefaultEllipsis  = "..."
)

// ParsePolicy converts a configuration value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyPack, "":
		return PolicyPack, nil
	case PolicyTruncate:
		return PolicyTruncate, nil
	default:
		return "", fmt.Errorf("unknown synopsis policy %q (want %q or %q)", s, PolicyPack, PolicyTruncate)
	}
}

var sourcePattern = regexp.MustCompile(`(?is)\(\s*Source\s*:.*?\)`)

// Compactor cleans and shortens free-text synopses.
// It holds only configuration and is safe for concurrent use.
type Compactor struct {
	policy    Policy
	lineWidth int
	maxLines  int
	maxChars  int
	ellipsis  string
	smallCaps bool
}

// CompactorOption configures a Compactor.
type CompactorOption func(*Compactor)

// WithPolicy selects the reduction policy.
func WithPolicy(p Policy) CompactorOption {
	return func(c *Compactor) {
		c.policy = p
	}
}

// WithLineWidth sets the maximum line width (in characters) for PolicyPack.
func WithLineWidth(n int) CompactorOption {
	return func(c *Compactor) {
		if n > 0 {
			c.lineWidth = n
		}
	}
}

// WithMaxLines sets the default line cap for PolicyPack.
func WithMaxLines(n int) CompactorOption {
	return func(c *Compactor) {
		if n > 0 {
			c.maxLines = n
		}
	}
}

// WithMaxChars sets the default character cap for PolicyTruncate.
func WithMaxChars(n int) CompactorOption {
	return func(c *Compactor) {
		if n > 0 {
			c.maxChars = n
		}
	}
}

// WithEllipsis sets the marker appended by PolicyTruncate.
func WithEllipsis(s string) CompactorOption {
	return func(c *Compactor) {
		c.ellipsis = s
	}
}

// WithSmallCaps enables the small-caps character transform on the output.
func WithSmallCaps(enabled bool) CompactorOption {
	return func(c *Compactor) {
		c.smallCaps = enabled
	}
}

// NewCompactor creates a Compactor. Without options it packs sentences into
// five 70-column lines.
func NewCompactor(opts ...CompactorOption) *Compactor {
	c := &Compactor{
		policy:    PolicyPack,
		lineWidth: DefaultLineWidth,
		maxLines:  DefaultMaxLines,
		maxChars:  DefaultMaxChars,
		ellipsis:  DefaultEllipsis,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the configured reduction policy.
func (c *Compactor) Policy() Policy {
	return c.policy
}

// Compact removes "(Source: ...)" annotations and reduces text to its display form.
// limit is the bound of the active policy: the line cap for PolicyPack, the
// character cap for PolicyTruncate. A limit <= 0 uses the configured default.
//
// Compact is idempotent: once the output is within limit and free of source
// annotations, compacting it again returns it unchanged.
func (c *Compactor) Compact(text string, limit int) string {
	text = strings.TrimSpace(sourcePattern.ReplaceAllString(text, ""))
	if text == "" {
		return ""
	}

	switch c.policy {
	case PolicyTruncate:
		if limit <= 0 {
			limit = c.maxChars
		}
		text = truncateRunes(text, limit, c.ellipsis)
	default:
		if limit <= 0 {
			limit = c.maxLines
		}
		text = packSentences(splitSentences(text), c.lineWidth, limit)
	}

	if c.smallCaps {
		text = SmallCaps(text)
	}
	return text
}

func truncateRunes(text string, limit int, ellipsis string) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + ellipsis
}

// splitSentences splits after '.', '!' or '?' when followed by whitespace.
// The whitespace run is dropped.
func splitSentences(text string) []string {
	var (
		sentences []string
		start     int
		prev      rune
	)
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if unicode.IsSpace(r) && (prev == '.' || prev == '!' || prev == '?') {
			sentences = append(sentences, string(runes[start:i]))
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			start = i
			i--
			prev = 0
			continue
		}
		prev = r
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

func packSentences(sentences []string, width, maxLines int) string {
	var (
		lines   []string
		current string
	)
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if current != "" && utf8.RuneCountInString(current)+1+utf8.RuneCountInString(sentence) > width {
			lines = append(lines, current)
			current = sentence
			if len(lines) >= maxLines {
				current = ""
				break
			}
			continue
		}
		if current == "" {
			current = sentence
		} else {
			current += " " + sentence
		}
	}
	if current != "" && len(lines) < maxLines {
		lines = append(lines, current)
	}
	return strings.Join(lines, " ")
}
