package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ninedots/internal/auth"
	"ninedots/internal/config"
	"ninedots/internal/db"
	httpx "ninedots/internal/http"
	"ninedots/internal/mailer"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, _ := config.Load()

	gdb, err := db.Connect(cfg.DatabaseURL, cfg.DBPoolMax)
	if err != nil {
		logrus.WithError(err).Fatal("database connect failed")
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}

	gate := db.NewLimiter(cfg.DBPoolMax, cfg.DBPoolWait)
	tokens := auth.NewTokens(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)

	r := httpx.NewRouter(cfg, gdb, gate, tokens, mail)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logrus.WithField("addr", cfg.HTTPAddr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
