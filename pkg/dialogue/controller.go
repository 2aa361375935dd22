// Package dialogue routes chat events to the formatter and the catalog.
//
// Each inbound event is handled on its own: the Controller keeps no per-user
// state besides what lives in the SessionStore.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aretw0/animefmt/internal/logging"
	"github.com/aretw0/animefmt/pkg/callback"
	"github.com/aretw0/animefmt/pkg/domain"
	"github.com/aretw0/animefmt/pkg/format"
	"github.com/aretw0/animefmt/pkg/observability"
	"github.com/aretw0/animefmt/pkg/ports"
	"github.com/google/uuid"
)

// Controller defaults.
const (
	DefaultPerPage        = 10
	DefaultTimeout        = 10 * time.Second
	DefaultMinQueryLength = 3
)

// Controller handles /start, free text and button callbacks.
// Safe for concurrent use.
type Controller struct {
	gateway   ports.CatalogGateway
	sessions  ports.SessionStore
	messenger ports.Messenger
	probe     ports.CoverProbe
	renderer  *format.Renderer
	metrics   *observability.Metrics
	logger    *slog.Logger

	perPage        int
	timeout        time.Duration
	minQueryLength int
	maxInputBytes  int
	now            func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithRenderer replaces the default card renderer.
func WithRenderer(r *format.Renderer) Option {
	return func(c *Controller) {
		c.renderer = r
	}
}

// WithCoverProbe checks cover URLs before attaching them.
// Without a probe, photo delivery is attempted directly.
func WithCoverProbe(p ports.CoverProbe) Option {
	return func(c *Controller) {
		c.probe = p
	}
}

// WithPerPage sets the number of results per listing page.
func WithPerPage(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// WithTimeout bounds each catalog call.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMinQueryLength sets the shortest accepted search term, in characters.
func WithMinQueryLength(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.minQueryLength = n
		}
	}
}

// WithMaxInputBytes sets the inbound text size limit.
func WithMaxInputBytes(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxInputBytes = n
		}
	}
}

// New creates a Controller.
func New(gateway ports.CatalogGateway, sessions ports.SessionStore, messenger ports.Messenger, opts ...Option) *Controller {
	c := &Controller{
		gateway:        gateway,
		sessions:       sessions,
		messenger:      messenger,
		renderer:       format.NewRenderer(),
		logger:         logging.NewNop(),
		perPage:        DefaultPerPage,
		timeout:        DefaultTimeout,
		minQueryLength: DefaultMinQueryLength,
		maxInputBytes:  DefaultMaxInputBytes,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HandleStart delivers the usage text.
func (c *Controller) HandleStart(ctx context.Context, ev domain.TextEvent) (outcome Outcome) {
	logger := c.eventLogger("start", ev.UserID)
	defer c.finish("start", logger, &outcome, func() {
		c.send(ctx, logger, ev.ChatID, htmlMessage(msgGenericError))
	})

	c.send(ctx, logger, ev.ChatID, domain.Message{
		Text:           fmt.Sprintf(helpTemplate, c.renderer.Attribution()),
		HTML:           true,
		DisablePreview: true,
	})
	return OutcomeHelpShown
}

// HandleText classifies free text as a structured block or a search term.
func (c *Controller) HandleText(ctx context.Context, ev domain.TextEvent) (outcome Outcome) {
	logger := c.eventLogger("text", ev.UserID)
	defer c.finish("text", logger, &outcome, func() {
		c.send(ctx, logger, ev.ChatID, htmlMessage(msgGenericError))
	})

	text, err := sanitizeInput(ev.Text, c.maxInputBytes)
	if err != nil {
		logger.Warn("input rejected", "err", err)
		c.send(ctx, logger, ev.ChatID, htmlMessage(msgGenericError))
		return OutcomeInputRejected
	}

	if format.HasStructuredCue(text) {
		return c.formatBlock(ctx, logger, ev.ChatID, text)
	}
	return c.search(ctx, logger, ev.ChatID, ev.UserID, text)
}

// HandleCallback dispatches a button press.
func (c *Controller) HandleCallback(ctx context.Context, ev domain.CallbackEvent) (outcome Outcome) {
	logger := c.eventLogger("callback", ev.UserID).With("token", ev.Data)
	defer c.finish("callback", logger, &outcome, func() {
		c.edit(ctx, logger, ev.ChatID, ev.MessageID, plainMessage(msgCallbackFailed))
	})

	action, err := callback.Decode(ev.Data)
	if err != nil {
		logger.Warn("malformed callback token", "err", err)
		c.edit(ctx, logger, ev.ChatID, ev.MessageID, plainMessage(msgCallbackFailed))
		return OutcomeMalformedToken
	}

	switch a := action.(type) {
	case callback.Select:
		return c.selectItem(ctx, logger, ev, a.ItemID)
	case callback.ChangePage:
		return c.changePage(ctx, logger, ev, a)
	default:
		return OutcomeIgnored
	}
}

func (c *Controller) formatBlock(ctx context.Context, logger *slog.Logger, chatID int64, text string) Outcome {
	record, ok := format.Parse(text)
	if !ok {
		logger.Debug("structured block did not match")
		c.send(ctx, logger, chatID, htmlMessage(msgInvalidFormat))
		return OutcomeFormatRejected
	}

	card := c.renderer.Render(record, "")
	c.metrics.CardRendered("manual")
	c.send(ctx, logger, chatID, domain.Message{Text: card.Text, HTML: true, DisablePreview: true})
	logger.Info("formatted structured block", "title", record.Title)
	return OutcomeFormatted
}

func (c *Controller) search(ctx context.Context, logger *slog.Logger, chatID, userID int64, text string) Outcome {
	query := strings.TrimSpace(text)
	if utf8.RuneCountInString(query) < c.minQueryLength {
		c.send(ctx, logger, chatID, plainMessage(msgQueryTooShort))
		return OutcomeQueryTooShort
	}

	page, err := c.searchPage(ctx, query, 1)
	if err != nil {
		logger.Error("catalog search failed", "query", query, "err", err)
		c.send(ctx, logger, chatID, plainMessage(msgSearchFailed))
		return OutcomeSearchFailed
	}
	if len(page.Items) == 0 {
		c.send(ctx, logger, chatID, plainMessage(msgNoResults))
		return OutcomeNoResults
	}

	session := &domain.Session{
		OwnerID:     userID,
		Query:       query,
		CurrentPage: 1,
		LastResults: page.Items,
		UpdatedAt:   c.now(),
	}
	if err := c.sessions.Put(ctx, session); err != nil {
		logger.Error("storing session failed", "err", err)
		c.send(ctx, logger, chatID, plainMessage(msgSearchFailed))
		return OutcomeSearchFailed
	}

	c.send(ctx, logger, chatID, domain.Message{
		Text:     resultsHeader(len(page.Items), html.EscapeString(query)),
		HTML:     true,
		Keyboard: resultKeyboard(page.Items, userID, 1, page.PageInfo),
	})
	logger.Info("search results listed", "query", query, "count", len(page.Items), "total", page.PageInfo.Total)
	return OutcomeResultsListed
}

func (c *Controller) selectItem(ctx context.Context, logger *slog.Logger, ev domain.CallbackEvent, id int) Outcome {
	logger = logger.With("media_id", id)

	detail, err := c.media(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Info("media not found", "err", err)
		} else {
			logger.Error("media lookup failed", "err", err)
		}
		c.edit(ctx, logger, ev.ChatID, ev.MessageID, plainMessage(msgDetailsUnavailable))
		return OutcomeDetailsUnavailable
	}

	card := c.renderer.Render(format.FromMedia(*detail), detail.CoverImageURL)
	c.metrics.CardRendered("catalog")
	textCard := domain.Message{Text: card.Text, HTML: true, DisablePreview: true}

	if card.CoverURL == "" {
		c.edit(ctx, logger, ev.ChatID, ev.MessageID, textCard)
		return OutcomeCardDelivered
	}

	if err := c.sendCover(ctx, ev.ChatID, card); err != nil {
		logger.Warn("could not send cover, sending text only", "cover", card.CoverURL, "err", err)
		c.edit(ctx, logger, ev.ChatID, ev.MessageID, textCard)
		return OutcomeCardDegraded
	}

	c.edit(ctx, logger, ev.ChatID, ev.MessageID, plainMessage(msgFormatted))
	return OutcomeCardDelivered
}

func (c *Controller) sendCover(ctx context.Context, chatID int64, card format.Card) error {
	if c.probe != nil {
		probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
		reachable := c.probe.Reachable(probeCtx, card.CoverURL)
		cancel()
		if !reachable {
			return errors.New("cover is not reachable")
		}
	}
	return c.messenger.SendPhoto(ctx, chatID, card.CoverURL, domain.Message{Text: card.Text, HTML: true})
}

func (c *Controller) changePage(ctx context.Context, logger *slog.Logger, ev domain.CallbackEvent, a callback.ChangePage) Outcome {
	logger = logger.With("page", a.Page)

	if a.Owner != ev.UserID {
		logger.Warn("page change refused", "owner", a.Owner, "err", domain.ErrOwnership)
		c.edit(ctx, logger, ev.ChatID, ev.MessageID, plainMessage(msgNotYourSession))
		return OutcomeOwnershipRefused
	}

	session, err := c.sessions.Get(ctx, a.Owner)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			logger.Info("session not found")
			c.edit(ctx, logger, ev.ChatID, ev.MessageID, plainMessage(msgSessionExpired))
			return OutcomeSessionExpired
		}
		logger.Error("loading session failed", "err", err)
		c.edit(ctx, logger, ev.ChatID, ev.MessageID, plainMessage(msgCallbackFailed))
		return OutcomeFailed
	}

	page, err := c.searchPage(ctx, session.Query, a.Page)
	if err != nil {
		logger.Error("catalog search failed", "query", session.Query, "err", err)
		c.edit(ctx, logger, ev.ChatID, ev.MessageID, plainMessage(msgPageEmpty))
		return OutcomePageEmpty
	}
	if len(page.Items) == 0 {
		c.edit(ctx, logger, ev.ChatID, ev.MessageID, plainMessage(msgPageEmpty))
		return OutcomePageEmpty
	}

	// Last write wins: a slower, older page change may overwrite a newer one.
	session.CurrentPage = a.Page
	session.LastResults = page.Items
	session.UpdatedAt = c.now()
	if err := c.sessions.Put(ctx, session); err != nil {
		logger.Error("storing session failed", "err", err)
		c.edit(ctx, logger, ev.ChatID, ev.MessageID, plainMessage(msgCallbackFailed))
		return OutcomeFailed
	}

	c.edit(ctx, logger, ev.ChatID, ev.MessageID, domain.Message{
		Text:     pageHeader(html.EscapeString(session.Query)),
		HTML:     true,
		Keyboard: resultKeyboard(page.Items, a.Owner, a.Page, page.PageInfo),
	})
	return OutcomePageChanged
}

func (c *Controller) searchPage(ctx context.Context, query string, page int) (*domain.SearchPage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	result, err := c.gateway.Search(ctx, query, page, c.perPage)
	c.metrics.CatalogRequest("search", err, time.Since(start))
	if err == nil && result == nil {
		err = fmt.Errorf("%w: empty response", domain.ErrUpstreamUnavailable)
	}
	return result, err
}

func (c *Controller) media(ctx context.Context, id int) (*domain.MediaDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	result, err := c.gateway.Media(ctx, id)
	c.metrics.CatalogRequest("media", err, time.Since(start))
	if err == nil && result == nil {
		err = fmt.Errorf("media %d: %w", id, domain.ErrNotFound)
	}
	return result, err
}

func (c *Controller) send(ctx context.Context, logger *slog.Logger, chatID int64, msg domain.Message) {
	if err := c.messenger.Send(ctx, chatID, msg); err != nil {
		logger.Error("send failed", "chat_id", chatID, "err", err)
	}
}

func (c *Controller) edit(ctx context.Context, logger *slog.Logger, chatID int64, messageID int, msg domain.Message) {
	if err := c.messenger.Edit(ctx, chatID, messageID, msg); err != nil {
		logger.Error("edit failed", "chat_id", chatID, "message_id", messageID, "err", err)
	}
}

func (c *Controller) eventLogger(kind string, userID int64) *slog.Logger {
	return c.logger.With("event_id", uuid.NewString(), "kind", kind, "user_id", userID)
}

// finish records the outcome and turns a panic into OutcomeFailed after
// running report to tell the user.
func (c *Controller) finish(kind string, logger *slog.Logger, outcome *Outcome, report func()) {
	if r := recover(); r != nil {
		logger.Error("handler panicked", "panic", r, "stack", string(debug.Stack()))
		*outcome = OutcomeFailed
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("error report panicked", "panic", r)
				}
			}()
			report()
		}()
	}
	c.metrics.Event(kind, string(*outcome))
	logger.Debug("event handled", "outcome", *outcome)
}

func plainMessage(text string) domain.Message {
	return domain.Message{Text: text}
}

func htmlMessage(text string) domain.Message {
	return domain.Message{Text: text, HTML: true}
}
