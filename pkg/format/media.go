package format

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/aretw0/animefmt/pkg/domain"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sentinels used when a catalog entry lacks a value.
const (
	Unknown        = "Unknown"
	NotAvailable   = "N/A"
	NoSynopsis     = "No synopsis available."
	dateLayoutYMD  = "%d-%02d-%02d"
	defaultDateDay = 1
)

var stripTags = bluemonday.StrictPolicy()

// FromMedia adapts a catalog entry into a FieldRecord so that it is rendered by
// the same template as a hand-typed block.
func FromMedia(m domain.MediaDetail) domain.FieldRecord {
	genres := Unknown
	if len(m.Genres) > 0 {
		genres = strings.Join(m.Genres, ", ")
	}

	kind := m.Format
	if kind == "" {
		kind = Unknown
	}

	rating := NotAvailable
	if m.AverageScore != nil && *m.AverageScore > 0 {
		rating = strconv.Itoa(*m.AverageScore) + "%"
	}

	runtime := Unknown
	if m.Duration != nil && *m.Duration > 0 {
		runtime = strconv.Itoa(*m.Duration) + " min"
	}

	episodes := Unknown
	if m.Episodes != nil {
		episodes = strconv.Itoa(*m.Episodes)
	}

	return domain.FieldRecord{
		Title:      m.DisplayTitle(),
		Genres:     genres,
		Type:       kind,
		Rating:     rating,
		Status:     statusLabel(m.Status),
		FirstAired: FormatDate(m.StartDate),
		LastAired:  FormatDate(m.EndDate),
		Runtime:    runtime,
		Episodes:   episodes,
		Synopsis:   PlainText(m.Description),
	}
}

// FormatDate renders d as YYYY-MM-DD, defaulting a missing month or day to 1.
// It returns "Unknown" when the year is missing.
func FormatDate(d domain.FuzzyDate) string {
	if d.Year == nil || *d.Year == 0 {
		return Unknown
	}
	month, day := defaultDateDay, defaultDateDay
	if d.Month != nil && *d.Month > 0 {
		month = *d.Month
	}
	if d.Day != nil && *d.Day > 0 {
		day = *d.Day
	}
	return fmt.Sprintf(dateLayoutYMD, *d.Year, month, day)
}

// PlainText strips HTML tags from a catalog description and collapses line
// breaks into spaces.
func PlainText(description string) string {
	if strings.TrimSpace(description) == "" {
		return NoSynopsis
	}
	text := html.UnescapeString(stripTags.Sanitize(description))
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
	return strings.TrimSpace(text)
}

// statusLabel turns an API token like NOT_YET_RELEASED into "Not Yet Released".
func statusLabel(status string) string {
	if status == "" {
		return Unknown
	}
	return cases.Title(language.English).String(strings.ReplaceAll(status, "_", " "))
}
