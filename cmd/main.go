package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kdduha/uml-generator/internal/cache"
	"github.com/kdduha/uml-generator/internal/config"
	"github.com/kdduha/uml-generator/internal/handler"
	"github.com/kdduha/uml-generator/internal/logging"
	"github.com/kdduha/uml-generator/internal/metrics"
	"github.com/kdduha/uml-generator/internal/render"
	"github.com/kdduha/uml-generator/internal/service"
	"github.com/kdduha/uml-generator/internal/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/kdduha/uml-generator/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title UML Generator API
// @version 1.0
// @description Generate Mermaid class diagrams from natural-language descriptions.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, false).Fatal("config error", "err", err)
	}

	logger := logging.New(os.Stderr, cfg.Debug)

	defaultStrategy, err := service.ParseStrategy(cfg.DefaultProvider)
	if err != nil {
		logger.Fatal("config error", "err", err)
	}

	generator := service.NewGenerator(logger, defaultStrategy, map[service.Strategy]service.Provider{
		service.Offline:     service.NewOfflineProvider(logger),
		service.HuggingFace: service.NewHuggingFaceProvider(http.DefaultClient, cfg.HuggingFace),
		service.Groq:        service.NewGroqProvider(cfg.Groq),
	})

	if cfg.CacheEnable {
		redisCache := cache.NewRedisCache(
			cfg.RedisConfig.Addr,
			cfg.RedisConfig.Password,
			cfg.RedisConfig.DB,
			cfg.RedisConfig.TTL,
		)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis is not reachable, cache calls will fail", "addr", cfg.RedisConfig.Addr, "err", err)
		}
		generator.SetCacheClient(redisCache)
		logger.Info("set redis as cache", "addr", cfg.RedisConfig.Addr)
	}

	renderer := render.NewDefault(logger, cfg.Mermaid, &http.Client{Timeout: cfg.Mermaid.RenderTimeout})
	store := session.NewStore(cfg.Session.Lifetime, cfg.Session.CookieName, cfg.Debug)
	creds := handler.NewCredentials(cfg)

	api := handler.NewAPIHandler(generator, renderer, creds)
	page := handler.NewPageHandler(logger, generator, renderer, store, creds)

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger.StandardLog(), NoColor: true}),
		middleware.Recoverer,
		middleware.Throttle(cfg.Server.ThrottleLimit),
		middleware.Timeout(cfg.Server.Timeout),
		metrics.Middleware,
	}...)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", api.Generate)
		r.Post("/validate", api.Validate)
		r.Post("/clean", api.Clean)
		r.Post("/render", api.Render)
		r.Get("/samples", api.Samples)
	})
	r.Group(func(r chi.Router) {
		r.Use(store.Middleware)
		r.Get("/", page.Index)
		r.Post("/", page.Submit)
		r.Get("/diagram.mmd", page.Download)
		r.Get("/diagram/raw", page.Raw)
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.Server.Port, "provider", defaultStrategy)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen error", "err", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "err", err)
	}
	logger.Info("server stopped")
}
