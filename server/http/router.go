package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"lensfit-service/internal/catalog"
	"lensfit-service/internal/config"
	lensHnd "lensfit-service/internal/lens/handler"
	"lensfit-service/internal/lens/service"
	"lensfit-service/internal/metrics"
	"lensfit-service/internal/middleware"
	"lensfit-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, e *service.Engine, m *metrics.Collectors) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(cfg.MaxUploadBytes()))

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", m.Handler())

	// справочники
	r.Get("/materials", lensHnd.Materials(e))
	r.Get("/policy/min-ct", lensHnd.MinCT(e))

	// каталог оправ
	r.Route("/frames", func(r chi.Router) {
		r.Get("/", lensHnd.ListFrames(e))
		r.Post("/", lensHnd.AddFrame(e))
		r.Post("/import", lensHnd.ImportFrames(cfg, e, catalog.NewIngestor(), m))
	})

	// смета
	r.Post("/estimate", lensHnd.Estimate(e))
	r.Post("/estimate/export", lensHnd.Export(e))
	r.Post("/compare", lensHnd.Compare(e))

	return r
}
