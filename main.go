package main

import (
	"LeadBot/config"
	"LeadBot/handler"
	"LeadBot/metrics"
	"LeadBot/notify"
	"LeadBot/repo"
	"LeadBot/wizard"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading configuration")
	}
	setupLogging(cfg)

	variant, err := cfg.Variant()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading flow variant")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sheet, err := newSheet(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing spreadsheet log")
	}

	store := repo.NewMemoryStore()
	registry := prometheus.NewRegistry()
	m := metrics.New(registry, store.Len)

	// The handler needs the bot for audit posts, the bot needs the handler.
	var intake *handler.IntakeBotHandler
	b, err := bot.New(cfg.BotToken, bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		intake.Handler(ctx, b, update)
	}))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating bot")
	}

	var audit notify.Audit = repo.LogAudit{}
	if cfg.AuditChatID != "" {
		audit = repo.NewTelegramAudit(b)
	}

	var crm notify.CRM
	if cfg.HighLevelAPIKey != "" {
		crm = repo.NewHighLevelClient(cfg.HighLevelAPIKey, cfg.HighLevelBaseURL, cfg.HTTPTimeout)
	} else {
		log.Warn().Msg("GHL_API_KEY not set, CRM deliveries will be reported as not configured")
	}

	notifier := notify.New(crm, sheet, audit,
		notify.WithAuditChannel(cfg.AuditChatID),
		notify.WithTags(cfg.HighLevelTag),
		notify.WithLocationID(cfg.HighLevelLocationID),
		notify.WithRecorder(m),
	)

	conversation := wizard.NewConversation(store, wizard.NewMachine(variant), notifier, wizard.WithObserver(m))
	intake, err = handler.NewIntakeBotHandler(conversation, handler.WithDuplicateHook(m.DuplicateUpdate))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating intake handler")
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, metrics.Router(registry)); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	log.Info().
		Str("restart", string(variant.Restart)).
		Bool("company_last", variant.CompanyLast).
		Msg("bot started")
	b.Start(ctx)
	log.Info().Msg("bot stopped")
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// newSheet picks the spreadsheet sink: a webhook, the Firebase lead log, or the application log.
func newSheet(ctx context.Context, cfg *config.Config) (notify.Sheet, error) {
	switch {
	case cfg.SheetWebhookURL != "":
		return repo.NewSheetWebhook(cfg.SheetWebhookURL, cfg.HTTPTimeout), nil
	case cfg.FirebaseDatabaseURL != "":
		return repo.NewFirebaseConnector(ctx, cfg.FirebaseKeyPath, cfg.FirebaseDatabaseURL)
	}
	return repo.LogSheet{}, nil
}
