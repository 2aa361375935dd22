package format

import (
	"regexp"
	"strings"

	"github.com/aretw0/animefmt/pkg/domain"
)

// Markers lists the bullet glyphs accepted in front of each label.
// The bot has shipped with "‣" and, earlier, "•"; the arrow variants are pasted
// often enough by channel editors to be worth accepting.
const Markers = "‣•▸►➤"

var markerClass = "[" + Markers + "]"

// blockFields lists the eight intermediate labels in their required order.
var blockFields = []struct {
	group string
	label string
}{
	{"genres", "Genres"},
	{"type", "Type"},
	{"rating", "Average Rating"},
	{"status", "Status"},
	{"first_aired", "First aired"},
	{"last_aired", "Last aired"},
	{"runtime", "Runtime"},
	{"episodes", "No of episodes"},
}

var (
	blockPattern = compileBlockPattern()
	cuePattern   = regexp.MustCompile(`(?i)` + markerClass + `\s*Genres\s*:`)
)

func labelPattern(label string) string {
	words := strings.Fields(label)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return markerClass + `[ \t]*` + strings.Join(words, `[ \t]+`) + `[ \t]*:[ \t]*`
}

func compileBlockPattern() *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`(?i)\A(?P<title>[^\n]*?)[ \t\r]*\n\s*`)
	for _, f := range blockFields {
		b.WriteString(labelPattern(f.label))
		b.WriteString(`(?P<` + f.group + `>[^\n]*?)[ \t\r]*\n\s*`)
	}
	b.WriteString(labelPattern("Synopsis"))
	b.WriteString(`(?P<synopsis>(?s:.*))\z`)
	return regexp.MustCompile(b.String())
}

// HasStructuredCue reports whether text contains a "Genres:" label preceded by
// one of the accepted markers. It is the cheap routing check used before Parse.
func HasStructuredCue(text string) bool {
	return cuePattern.MatchString(text)
}

// Parse extracts a FieldRecord from a structured block.
//
// The block is a title line followed by the eight labeled lines in fixed order
// and a Synopsis label whose value runs to the end of the input. Any structural
// deviation yields ok == false; this is the common case for free-form text and
// has no side effects.
func Parse(raw string) (record domain.FieldRecord, ok bool) {
	m := blockPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return domain.FieldRecord{}, false
	}

	get := func(group string) string {
		return strings.TrimSpace(m[blockPattern.SubexpIndex(group)])
	}

	return domain.FieldRecord{
		Title:      get("title"),
		Genres:     get("genres"),
		Type:       get("type"),
		Rating:     get("rating"),
		Status:     get("status"),
		FirstAired: get("first_aired"),
		LastAired:  get("last_aired"),
		Runtime:    get("runtime"),
		Episodes:   get("episodes"),
		Synopsis:   get("synopsis"),
	}, true
}
