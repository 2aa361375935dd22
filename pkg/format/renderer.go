package format

import (
	"fmt"
	"html"
	"strings"

	"github.com/aretw0/animefmt/pkg/domain"
)

// Presentation constants. These are a contract with the channel's audience and
// are reproduced verbatim.
const (
	Rule         = "────────────────────────"
	SeasonValue  = "1"
	AudioTracks  = "ᴊᴀᴘ | ᴇɴɢ | ᴛᴇʟ | ʜɪɴ | ᴛᴀᴍ"
	QualityTiers = "480ᴘ | 720ᴘ | 1080ᴘ | 4ᴋ"

	DefaultBrandName       = "Animes2u"
	DefaultBrandURL        = "https://t.me/Animes2u"
	DefaultEpisodeFallback = "0"
	UnknownTitle           = "Unknown Title"
)

const cardTemplate = `<b>%s</b>
` + Rule + `
<b>❃ Season :</b> ` + SeasonValue + `
<b>❃ Audio :</b> ` + AudioTracks + `
<b>❃ Quality :</b> ` + QualityTiers + `
<b>❃ Episodes :</b> %s

<b>‣ Synopsis :</b> %s
` + Rule + `
%s`

// Card is a rendered message: HTML markup plus the optional cover to attach.
type Card struct {
	Text     string
	CoverURL string
}

// Renderer turns a FieldRecord into the channel layout.
// It is a pure function of its inputs and configuration.
type Renderer struct {
	compactor       *Compactor
	brandName       string
	brandURL        string
	episodeFallback string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithCompactor sets the synopsis compactor.
func WithCompactor(c *Compactor) RendererOption {
	return func(r *Renderer) {
		r.compactor = c
	}
}

// WithBranding overrides the attribution line. Empty values keep the default.
func WithBranding(name, url string) RendererOption {
	return func(r *Renderer) {
		if name != "" {
			r.brandName = name
		}
		if url != "" {
			r.brandURL = url
		}
	}
}

// WithEpisodeFallback sets the sentinel shown when the episode count has no digits.
func WithEpisodeFallback(s string) RendererOption {
	return func(r *Renderer) {
		r.episodeFallback = s
	}
}

// NewRenderer creates a Renderer with the default compactor and branding.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		compactor:       NewCompactor(),
		brandName:       DefaultBrandName,
		brandURL:        DefaultBrandURL,
		episodeFallback: DefaultEpisodeFallback,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Attribution returns the constant "Powered By" line.
func (r *Renderer) Attribution() string {
	return fmt.Sprintf(`<b>💠 Powered By :</b> <a href="%s">%s</a>`,
		html.EscapeString(r.brandURL), html.EscapeString(r.brandName))
}

// Render produces the card markup for record. coverURL is passed through untouched.
func (r *Renderer) Render(record domain.FieldRecord, coverURL string) Card {
	title := record.Title
	if title == "" {
		title = UnknownTitle
	}

	text := fmt.Sprintf(cardTemplate,
		html.EscapeString(title),
		EpisodeCount(record.Episodes, r.episodeFallback),
		html.EscapeString(r.compactor.Compact(record.Synopsis, 0)),
		r.Attribution(),
	)
	return Card{Text: text, CoverURL: coverURL}
}

// EpisodeCount keeps only the digits of raw ("12 episodes" -> "12").
// It returns fallback when raw contains no digit.
func EpisodeCount(raw, fallback string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return fallback
	}
	return digits
}
