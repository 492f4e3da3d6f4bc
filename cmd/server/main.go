// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

// Command server runs the book exchange API with its recommendation
// engine and background model refresh loop.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/api"
	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/config"
	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/logging"
	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/recommend"
	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/storage"
	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/supervisor"
	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return err
	}
	logging.Init(cfg.Logging)
	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Msg("starting book exchange server")

	store, err := storage.Open(cfg.Database, logging.Logger())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("closing database failed")
		}
	}()

	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), store, logging.Logger())
	if err != nil {
		return err
	}

	handler := api.NewHandler(engine, store, cfg.Recommend, logging.Logger())
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(cfg, handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddBackgroundService(services.NewRefreshService(engine, services.RefreshServiceConfig{
		RefreshOnStartup: cfg.Recommend.RefreshOnStartup,
		RefreshInterval:  cfg.Recommend.RefreshInterval,
	}, logging.Logger()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = tree.Serve(ctx)
	if errors.Is(err, context.Canceled) {
		logging.Info().Msg("shutdown complete")
		return nil
	}
	return err
}
