package telegram

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/animefmt/internal/logging"
	"github.com/aretw0/animefmt/pkg/dialogue"
	"github.com/aretw0/animefmt/pkg/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DefaultPollTimeout is the long-poll timeout in seconds.
const DefaultPollTimeout = 60

// Handler receives transport-neutral events. *dialogue.Controller implements it.
type Handler interface {
	HandleStart(ctx context.Context, ev domain.TextEvent) dialogue.Outcome
	HandleText(ctx context.Context, ev domain.TextEvent) dialogue.Outcome
	HandleCallback(ctx context.Context, ev domain.CallbackEvent) dialogue.Outcome
}

// Listener long-polls for updates and dispatches each one on its own goroutine.
type Listener struct {
	api         API
	handler     Handler
	logger      *slog.Logger
	pollTimeout int
}

// ListenerOption configures a Listener.
type ListenerOption func(*Listener)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ListenerOption {
	return func(ln *Listener) {
		ln.logger = l
	}
}

// WithPollTimeout sets the long-poll timeout in seconds.
func WithPollTimeout(seconds int) ListenerOption {
	return func(ln *Listener) {
		if seconds > 0 {
			ln.pollTimeout = seconds
		}
	}
}

// NewListener creates a Listener.
func NewListener(api API, handler Handler, opts ...ListenerOption) *Listener {
	l := &Listener{
		api:         api,
		handler:     handler,
		logger:      logging.NewNop(),
		pollTimeout: DefaultPollTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run polls until ctx is cancelled, then stops polling and waits for the
// in-flight handlers. Handlers keep running after cancellation; their catalog
// calls are bounded by the controller's own timeout.
func (l *Listener) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = l.pollTimeout
	updates := l.api.GetUpdatesChan(u)

	handlerCtx := context.WithoutCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()

	l.logger.Info("listening for telegram updates", "poll_timeout", l.pollTimeout)
	for {
		select {
		case <-ctx.Done():
			l.api.StopReceivingUpdates()
			l.logger.Info("stopped listening, waiting for in-flight handlers")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				l.dispatch(handlerCtx, update)
			}()
		}
	}
}

func (l *Listener) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		l.dispatchCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		l.dispatchMessage(ctx, update.Message)
	}
}

func (l *Listener) dispatchMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil || msg.Text == "" {
		return
	}
	ev := domain.TextEvent{
		ChatID:    msg.Chat.ID,
		UserID:    msg.From.ID,
		MessageID: msg.MessageID,
		Text:      msg.Text,
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "help":
			l.handler.HandleStart(ctx, ev)
		default:
			l.logger.Debug("ignoring unknown command", "command", msg.Command())
		}
		return
	}
	l.handler.HandleText(ctx, ev)
}

func (l *Listener) dispatchCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	// Acknowledge first so the client stops its spinner even if handling is slow.
	if _, err := l.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		l.logger.Warn("answering callback failed", "err", err)
	}
	if q.From == nil || q.Message == nil || q.Message.Chat == nil {
		return
	}
	l.handler.HandleCallback(ctx, domain.CallbackEvent{
		ChatID:    q.Message.Chat.ID,
		UserID:    q.From.ID,
		MessageID: q.Message.MessageID,
		Data:      q.Data,
	})
}
