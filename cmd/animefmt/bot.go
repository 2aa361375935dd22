package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/animefmt"
	"github.com/aretw0/animefmt/internal/config"
	"github.com/aretw0/animefmt/internal/presentation/tui"
	"github.com/aretw0/animefmt/pkg/adapters/anilist"
	httpAdapter "github.com/aretw0/animefmt/pkg/adapters/http"
	"github.com/aretw0/animefmt/pkg/adapters/memory"
	"github.com/aretw0/animefmt/pkg/adapters/redis"
	"github.com/aretw0/animefmt/pkg/adapters/telegram"
	"github.com/aretw0/animefmt/pkg/dialogue"
	"github.com/aretw0/animefmt/pkg/observability"
	"github.com/aretw0/animefmt/pkg/ports"
	"github.com/avast/retry-go/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

const (
	connectAttempts = 5
	connectDelay    = 2 * time.Second
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	Long: `Long-polls Telegram for updates and answers them. Unless http.addr is empty,
an ops server exposes /healthz, /info, /metrics and /v1/render alongside.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := cfg.RequireToken(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if term.IsTerminal(int(os.Stdout.Fd())) {
			tui.PrintBanner(os.Stdout, animefmt.Version)
		}
		return runBot(ctx, cfg, logger)
	},
}

func runBot(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	renderer, err := cfg.Renderer()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)

	var gateway ports.CatalogGateway = anilist.New(
		anilist.WithEndpoint(cfg.AniList.Endpoint),
		anilist.WithTimeout(cfg.AniList.Timeout),
		anilist.WithLogger(logger),
	)
	if cfg.Cache.RedisAddr != "" {
		cache, err := redis.New(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, gateway,
			redis.WithTTL(cfg.Cache.TTL),
			redis.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		defer cache.Close()
		gateway = cache
		logger.Info("catalog cache enabled", "redis_addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	}

	api, err := connectTelegram(ctx, cfg.Telegram.Token, logger)
	if err != nil {
		return err
	}
	logger.Info("connected to telegram", "bot", api.Self.UserName)

	opts := []dialogue.Option{
		dialogue.WithLogger(logger),
		dialogue.WithMetrics(metrics),
		dialogue.WithRenderer(renderer),
		dialogue.WithPerPage(cfg.AniList.PerPage),
		dialogue.WithTimeout(cfg.AniList.Timeout),
	}
	if cfg.AniList.ProbeCovers {
		opts = append(opts, dialogue.WithCoverProbe(anilist.NewCoverProbe(nil, logger)))
	}
	controller := dialogue.New(gateway, memory.NewStore(memory.WithTTL(cfg.Session.TTL)), telegram.NewMessenger(api), opts...)

	listener := telegram.NewListener(api, controller,
		telegram.WithLogger(logger),
		telegram.WithPollTimeout(cfg.Telegram.PollTimeout),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listener.Run(gctx)
	})
	if cfg.HTTP.Addr != "" {
		handler := httpAdapter.NewHandler(renderer,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithGatherer(registry),
		)
		g.Go(func() error {
			return httpAdapter.Serve(gctx, cfg.HTTP.Addr, handler, logger)
		})
	}

	err = g.Wait()
	logger.Info("bot stopped")
	return err
}

// connectTelegram validates the token with getMe, retrying transient failures.
// Telegram rejecting the token is not retried.
func connectTelegram(ctx context.Context, token string, logger *slog.Logger) (*tgbotapi.BotAPI, error) {
	var api *tgbotapi.BotAPI
	err := retry.Do(
		func() error {
			var err error
			api, err = tgbotapi.NewBotAPI(token)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(connectAttempts),
		retry.Delay(connectDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("telegram connection failed, retrying", "attempt", n+1, "err", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return api, nil
}

func isTransient(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 500 || apiErr.Code == 429
	}
	return true
}

func init() {
	rootCmd.AddCommand(botCmd)
}
