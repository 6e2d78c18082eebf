package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram-anon-relay/internal/config"
	"telegram-anon-relay/internal/domain/ports/adapter"
	tele "telegram-anon-relay/internal/infra/adapters/telegram"
	"telegram-anon-relay/internal/infra/logging"
	"telegram-anon-relay/internal/infra/metrics"
	"telegram-anon-relay/internal/infra/store"
	"telegram-anon-relay/internal/infra/web"
	"telegram-anon-relay/internal/usecase"
)

func main() {
	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, no real sends)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	// ---- Registries ----
	members, err := store.OpenMembership(cfg.Storage.Chats, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Storage.Chats).Msg("membership store")
	}
	targets, err := store.OpenRelayTargets(cfg.Storage.RelayTargets, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("relay target registry")
	}
	defer targets.Close()

	// ---- Sender ----
	var sender adapter.Sender
	if cfg.Runtime.Dev {
		sender = tele.NewNoopSender(logger)
	} else {
		sender, err = tele.NewRealSender(cfg.Bot.Token)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram")
		}
	}

	relayUC := usecase.NewRelayUseCase(members, targets, sender, logger)

	// ---- HTTP gateway ----
	metrics.MustRegister()
	srv := web.NewServer(relayUC, cfg.HTTP.SecretToken, logger)
	server := &http.Server{Addr: fmt.Sprintf(":%d", cfg.HTTP.Port), Handler: srv.Router()}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Bool("tls", cfg.HTTP.TLS.Cert != "").Msg("webhook gateway listening")
		if cfg.HTTP.TLS.Cert != "" {
			errCh <- server.ListenAndServeTLS(cfg.HTTP.TLS.Cert, cfg.HTTP.TLS.Key)
		} else {
			errCh <- server.ListenAndServe()
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server")
		}
	case <-sigc:
		logger.Info().Msg("shutdown requested, draining in-flight requests")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown did not complete cleanly")
		}
	}
}
