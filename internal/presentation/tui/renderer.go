package tui

import (
	"html"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

var (
	boldTag   = regexp.MustCompile(`<b>(.*?)</b>`)
	italicTag = regexp.MustCompile(`<i>(.*?)</i>`)
	anchorTag = regexp.MustCompile(`<a href="([^"]*)">(.*?)</a>`)
	anyTag    = regexp.MustCompile(`</?[a-z][^>]*>`)
)

// NewRenderer returns a function that renders markdown using glamour.
// An empty style detects a light or dark background automatically.
func NewRenderer(style string) func(string) (string, error) {
	opt := glamour.WithAutoStyle()
	if style != "" {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(0))
	if err != nil {
		return func(markdown string) (string, error) { return "", err }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// CardMarkdown converts the Telegram HTML subset used by cards into markdown
// so a card can be previewed in the terminal. Line breaks are kept as hard breaks.
func CardMarkdown(markup string) string {
	md := anchorTag.ReplaceAllString(markup, "[$2]($1)")
	md = boldTag.ReplaceAllString(md, "**$1**")
	md = italicTag.ReplaceAllString(md, "_${1}_")
	md = anyTag.ReplaceAllString(md, "")
	md = html.UnescapeString(md)

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = line + "  "
		}
	}
	return strings.Join(lines, "\n")
}

// PreviewCard renders card markup for the terminal. When width is positive the
// result is word-wrapped to that many cells; escape sequences do not count.
func PreviewCard(render func(string) (string, error), markup string, width int) (string, error) {
	out, err := render(CardMarkdown(markup))
	if err != nil || width <= 0 {
		return out, err
	}
	return wordwrap.String(out, width), nil
}
