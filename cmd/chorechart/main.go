package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chorechart/internal/config"
	"chorechart/internal/database"
	"chorechart/internal/email"
	"chorechart/internal/logging"
	"chorechart/internal/server"
	"chorechart/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if len(os.Args) > 1 && os.Args[1] == "rebuild-totals" {
		if err := store.NewLedgerStore(db).RebuildTotals(); err != nil {
			logger.Error("rebuild totals", "error", err)
			os.Exit(1)
		}
		logger.Info("user point totals rebuilt from ledger")
		return
	}

	sender := email.NewSender(logger.With("component", "email"),
		email.NewAPIChannel(cfg.Mail.APIKey, cfg.Mail.DefaultSender, cfg.Mail.SenderName, cfg.Mail.APIURL),
		email.NewSMTPChannel(email.SMTPConfig{
			Host:      cfg.Mail.Server,
			Port:      cfg.Mail.Port,
			Username:  cfg.Mail.Username,
			Password:  cfg.Mail.Password,
			UseTLS:    cfg.Mail.UseTLS,
			FromEmail: cfg.Mail.DefaultSender,
			FromName:  cfg.Mail.SenderName,
		}),
		email.NewMockChannel(logger.With("component", "email")),
	)

	srv := server.New(db, sender, logger)

	// Expired rate-limit buckets accumulate otherwise
	go func() {
		for range time.Tick(10 * time.Minute) {
			srv.RateLimiter().Cleanup()
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("chorechart running", "addr", "http://localhost:"+cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
