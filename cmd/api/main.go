package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-anon-inbox/internal/config"
	"github.com/go-anon-inbox/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-anon-inbox/internal/infrastructure/jwt"
	"github.com/go-anon-inbox/internal/infrastructure/mail"
	"github.com/go-anon-inbox/internal/pkg/otp"
	transporthttp "github.com/go-anon-inbox/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(newLogger(cfg))
	if envErr != nil {
		slog.Info("no .env file found, reading from environment")
	}

	// Storage handle shared by every repository. Tables are created if missing.
	conn := dynamo.NewConn(cfg)
	api, err := conn.Connect(context.Background())
	if err != nil {
		slog.Error("dynamodb unavailable", "err", err)
		os.Exit(1)
	}
	dynamo.Bootstrap(context.Background(), api, cfg.DynamoTables)

	// Sessions cannot be issued without signing keys.
	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		slog.Error("jwt provider not available", "err", err)
		os.Exit(1)
	}

	sender, err := mail.NewSender(cfg)
	if err != nil {
		slog.Error("mail sender not available", "err", err)
		os.Exit(1)
	}

	deps := &transporthttp.Deps{
		AccountRepo: dynamo.NewAccountRepo(conn, cfg.DynamoTables.Accounts),
		Tokens:      jwtProvider,
		Mailer:      mail.NewVerificationMailer(cfg, sender, otp.DefaultTTL),
		Issuer:      otp.NewIssuer(),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "mail", cfg.MailProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// newLogger logs JSON in production and text elsewhere, at the level named by LOG_LEVEL.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
