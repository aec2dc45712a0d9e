package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"newswire/internal/config"
	"newswire/internal/domain/entity"
	telegramHandler "newswire/internal/handler/telegram"
	pgRepo "newswire/internal/infra/adapter/persistence/postgres"
	"newswire/internal/infra/db"
	"newswire/internal/infra/notifier"
	"newswire/internal/infra/scraper"
	workerPkg "newswire/internal/infra/worker"
	"newswire/internal/observability/logging"
	pkgconfig "newswire/internal/pkg/config"
	"newswire/internal/usecase/browse"
	"newswire/internal/usecase/dispatch"
	"newswire/internal/usecase/ingest"
)

func main() {
	// Missing .env is fine in containerized deployments.
	_ = godotenv.Load()

	botConfig, err := config.LoadBotConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := initLogger(botConfig.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database := initDatabase(ctx, logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	workerConfig := workerPkg.LoadConfigFromEnv(logger, pkgconfig.NewConfigMetrics("worker"))
	logger.Info("worker configuration loaded",
		slog.String("schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Int("content_parallelism", workerConfig.ContentParallelism),
		slog.Duration("cycle_timeout", workerConfig.CycleTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", workerConfig.HealthPort), logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	api, err := tgbotapi.NewBotAPI(botConfig.Token)
	if err != nil {
		logger.Error("failed to connect to the Bot API", slog.Any("error", err))
		os.Exit(1)
	}
	api.Debug = botConfig.Debug
	logger.Info("authorized on Telegram", slog.String("username", api.Self.UserName))

	articles := pgRepo.NewArticleRepo(database)
	subscribers := pgRepo.NewSubscriberRepo(database)

	limiter := notifier.NewRateLimiter(float64(workerConfig.NotifyRatePerSec), workerConfig.NotifyBurst)
	telegramNotifier := notifier.NewTelegram(api, limiter, logger)
	dispatcher := dispatch.NewService(subscribers, telegramNotifier, logger)

	adapters := buildAdapters(botConfig, logger)
	ingestService := ingest.NewService(adapters, articles, dispatcher,
		workerConfig.ContentParallelism, logger)

	scheduler, err := startScheduler(logger, ingestService, workerConfig)
	if err != nil {
		logger.Error("failed to start scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	defer scheduler.Stop()

	router := telegramHandler.NewRouter(api, subscribers,
		browse.NewPager(articles, browse.DefaultPageSize, logger),
		browse.NewToggler(articles),
		limiter, logger)

	healthServer.SetReady(true)
	logger.Info("bot started")

	router.Run(ctx)
	logger.Info("bot stopped")
}

func initLogger(debug bool) *slog.Logger {
	var logger *slog.Logger
	if debug {
		logger = logging.NewTextLogger()
	} else {
		logger = logging.NewLogger()
	}
	slog.SetDefault(logger)
	return logger
}

func initDatabase(ctx context.Context, logger *slog.Logger) *sql.DB {
	database, err := db.Open(ctx)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// buildAdapters creates one adapter per source. A source with a feed URL
// configured lists through RSS and keeps the scraper for article bodies;
// otherwise both listing and bodies come from the site's HTML.
func buildAdapters(cfg *config.BotConfig, logger *slog.Logger) []ingest.SourceAdapter {
	client := newScraperClient()

	informburo := scraper.NewInformburo(client)
	nur := scraper.NewNur(client, logger)

	adapters := make([]ingest.SourceAdapter, 0, len(entity.Sources()))
	for _, source := range entity.Sources() {
		var adapter ingest.SourceAdapter
		switch source {
		case entity.SourceInformburo:
			adapter = informburo
			if url, ok := cfg.FeedURLs[source]; ok {
				adapter = scraper.NewRSS(source, url, client, informburo)
			}
		case entity.SourceNur:
			adapter = nur
			if url, ok := cfg.FeedURLs[source]; ok {
				adapter = scraper.NewRSS(source, url, client, nur)
			}
		}
		logger.Info("source adapter configured",
			slog.String("source", source.String()),
			slog.Bool("rss", cfg.FeedURLs[source] != ""))
		adapters = append(adapters, adapter)
	}
	return adapters
}

func newScraperClient() *http.Client {
	return &http.Client{
		Timeout: 15 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// startScheduler registers the ingestion cycle with cron. Overlapping
// runs are skipped rather than queued, so a slow cycle never stacks.
func startScheduler(logger *slog.Logger, service *ingest.Service, cfg *workerPkg.WorkerConfig) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC",
			slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	if _, err := c.AddFunc(cfg.CronSchedule, func() {
		runCycle(service, cfg.CycleTimeout)
	}); err != nil {
		return nil, fmt.Errorf("startScheduler: %w", err)
	}
	c.Start()

	// First cycle right away so a fresh deploy has articles to browse.
	// The service is single-flight, so a scheduled run firing while this
	// one is still going gets skipped, not stacked.
	go runCycle(service, cfg.CycleTimeout)

	logger.Info("scheduler started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))
	return c, nil
}

// runCycle bounds one cycle with the configured timeout. The service
// logs the cycle summary itself.
func runCycle(service *ingest.Service, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	service.RunCycle(ctx)
}
