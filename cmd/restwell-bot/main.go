package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"restwell/config"
	"restwell/internal/bot"
	"restwell/internal/logging"
	"syscall"
	"time"
)

const (
	defaultConfigPath = "bot-config.json"
	shutdownTimeout   = 5 * time.Second
)

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	useEnv := flag.Bool("env", false, "Load configuration from RESTWELL_BOT_* environment variables")
	logFormat := flag.String("log-format", "json", "Log format (json or text)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	tz := flag.String("timezone", "", "IANA timezone for displayed times (default UTC)")
	flag.Parse()

	logger := logging.NewLogger(logging.LoggerConfig{
		Format: *logFormat,
		Level:  logging.ParseLevel(*logLevel),
	})

	logger.Info("Starting restwell Telegram bot",
		"config", *configPath,
	)

	var cfg *config.BotConfig
	var err error
	if *useEnv {
		cfg, err = config.LoadBotConfigFromEnv()
	} else {
		cfg, err = config.LoadBotConfig(*configPath)
	}
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *tz != "" {
		if err := bot.SetTimezone(*tz); err != nil {
			logger.Error("Failed to set timezone", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Configuration loaded",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"webhook_url", cfg.Telegram.WebhookURL,
		"restwell_url", cfg.Restwell.BaseURL,
		"allowed_users", len(cfg.Telegram.AllowedUsers),
	)

	telegramBot, botAPI, err := bot.NewBot(cfg, logger)
	if err != nil {
		logger.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	if err := bot.SetWebhook(botAPI, cfg.Telegram.WebhookURL, logger); err != nil {
		logger.Error("Failed to set webhook", "error", err)
		os.Exit(1)
	}

	router := bot.NewRouter(bot.RouterConfig{
		Bot:           telegramBot,
		WebhookSecret: cfg.Telegram.WebhookSecret,
		Logger:        logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down bot...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}

	logger.Info("Bot stopped")
}
