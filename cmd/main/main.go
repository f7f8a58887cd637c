package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"lensfit-service/internal/catalog"
	"lensfit-service/internal/config"
	"lensfit-service/internal/lens/model"
	"lensfit-service/internal/lens/optics"
	"lensfit-service/internal/lens/service"
	"lensfit-service/internal/metrics"
	serverhttp "lensfit-service/server/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger := config.SetupLogger(cfg)

	// таблица материалов проверяется один раз при старте
	materials, err := optics.NewMaterialCatalog(optics.DefaultMaterials())
	if err != nil {
		logger.Fatal().Err(err).Msg("materials")
	}

	var seed []model.Frame
	if cfg.SeedDemo {
		seed = catalog.DemoFrames()
	}
	m := metrics.New()
	engine := service.NewEngine(
		materials,
		optics.DefaultPolicy(),
		catalog.NewStore(seed),
		service.Defaults{StoreName: cfg.StoreName, SafetyMargin: cfg.SafetyMargin, Allowance: cfg.Allowance},
		cfg.CacheTTL,
		m,
		logger,
	)

	r := serverhttp.NewRouter(cfg, logger, engine, m)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", cfg.Addr()).Int("frames", len(seed)).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
