package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdamBeresnev/brisa-tee-times/internal/catalog"
	"github.com/AdamBeresnev/brisa-tee-times/internal/config"
	"github.com/AdamBeresnev/brisa-tee-times/internal/db"
	"github.com/AdamBeresnev/brisa-tee-times/internal/metrics"
	"github.com/AdamBeresnev/brisa-tee-times/internal/notify"
	"github.com/AdamBeresnev/brisa-tee-times/internal/service"
	"github.com/AdamBeresnev/brisa-tee-times/internal/store"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg := config.MustLoad()

	level, _ := cfg.Logger.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Session.Lifetime

	reservationStore, cleanup, err := openStore(ctx, cfg, cat, sessionManager, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := routerOptions{Debug: cfg.Server.Debug}
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		opts.Metrics = reg
	}

	notifier := buildNotifier(cfg, m, logger)
	reservations := service.NewReservationService(cat, reservationStore, notifier, m, logger)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(reservations, sessionManager, opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", cfg.Server.Addr, "store", cfg.Store.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// openStore builds the configured backend. With SQLite the sessions live in the same database.
func openStore(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, sessionManager *scs.SessionManager, logger *slog.Logger) (service.ReservationStore, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.BackendSQLite:
		database, err := db.InitDB(cfg.Store.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		if err := db.RunMigrations(database.DB, cfg.Store.MigrationsDir); err != nil {
			database.Close()
			return nil, noop, fmt.Errorf("run migrations: %w", err)
		}
		sqlStore := store.NewSQLStore(database)
		if err := sqlStore.SeedSlots(ctx, cat.Slots()); err != nil {
			database.Close()
			return nil, noop, err
		}
		sessionManager.Store = sqlite3store.New(database.DB)
		return sqlStore, func() { database.Close() }, nil

	case config.BackendSheets:
		svc, err := store.NewSheetsService(ctx, cfg.Sheets.CredentialsFile)
		if err != nil {
			return nil, noop, err
		}
		id, err := store.ParseSpreadsheetID(cfg.Sheets.Spreadsheet)
		if err != nil {
			return nil, noop, err
		}
		sheetsStore := store.NewSheetsStore(svc, id, cfg.Sheets.Worksheet)
		if err := sheetsStore.EnsureHeader(ctx); err != nil {
			// Retried on first use.
			logger.Warn("Could not prepare worksheet header", "error", err)
		}
		return sheetsStore, noop, nil

	case config.BackendRedis:
		client := store.NewRedisClient(store.RedisConfig{
			Address:  cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := store.Ping(ctx, client); err != nil {
			client.Close()
			return nil, noop, err
		}
		return store.NewRedisStore(client), func() { client.Close() }, nil

	default:
		logger.Warn("Using in-memory store, reservations are lost on restart")
		return store.NewMemoryStore(), noop, nil
	}
}

// buildNotifier wires the channels that have credentials. The rest stay disabled.
func buildNotifier(cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *notify.Notifier {
	var (
		email notify.EmailSender
		sms   notify.SMSSender
		chat  notify.ChatSender
	)

	if cfg.SMTP.EmailEnabled() {
		sender, err := notify.NewSMTPSender(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		if err != nil {
			logger.Warn("Email disabled", "error", err)
		} else {
			email = sender
		}
	} else {
		logger.Info("Email disabled, EMAIL_USER or EMAIL_PASS not set")
	}

	if cfg.Twilio.SMSEnabled() {
		sms = notify.NewTwilioSender(notify.TwilioConfig{
			AccountSID: cfg.Twilio.AccountSID,
			AuthToken:  cfg.Twilio.AuthToken,
			From:       cfg.Twilio.From,
		})
	} else {
		logger.Info("SMS disabled, Twilio credentials not set")
	}

	if cfg.Telegram.ChatEnabled() {
		sender, err := notify.NewTelegramSender(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			logger.Warn("Telegram disabled", "error", err)
		} else {
			chat = sender
		}
	}

	return notify.New(logger, m, email, sms, chat)
}
