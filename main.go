package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cinestash/src/config"
	catalogcontrollers "cinestash/src/modules/catalog/controllers"
	catalog "cinestash/src/modules/catalog/services"
	enrichment "cinestash/src/modules/enrichment/services"
	eventcontrollers "cinestash/src/modules/events/controllers"
	events "cinestash/src/modules/events/services"
	mediacontrollers "cinestash/src/modules/media/controllers"
	sitemapcontrollers "cinestash/src/modules/sitemap/controllers"
	sitemap "cinestash/src/modules/sitemap/services"
	"cinestash/src/routes"
	"cinestash/src/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Could not build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDatabase(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}

	var shared enrichment.SharedCache
	if rdb := config.ConnectRedis(ctx, cfg.Redis, logger.Named("redis")); rdb != nil {
		defer rdb.Close()
		shared = enrichment.NewRedisCache(rdb, "cinestash:")
	}

	store, minioStore, err := config.ConnectMedia(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("media store unavailable", zap.Error(err))
	}

	tmdbLogger := logger.Named("tmdb")
	tmdb := enrichment.NewClient(enrichment.Config{
		APIKey:    cfg.TMDB.APIKey,
		BaseURL:   cfg.TMDB.BaseURL,
		ImageBase: cfg.TMDB.ImageBase,
	}, enrichment.NewGenreCache(cfg.TMDB.GenreCacheTTL, shared, tmdbLogger), tmdbLogger)

	hub := events.NewHub(logger.Named("events"))
	deps := catalog.Deps{
		Media:    store,
		Enricher: tmdb,
		Events:   hub,
		Logger:   logger.Named("catalog"),
	}
	movies := catalog.NewMovieService(db, deps)
	series := catalog.NewSeriesService(db, deps)

	jobs, err := services.SetupBackgroundJobs(cfg.ReconcileSchedule, []services.NamedReconciler{
		{Name: "movie", Reconciler: movies},
		{Name: "series", Reconciler: series},
	}, logger)
	if err != nil {
		logger.Fatal("invalid RECONCILE_SCHEDULE", zap.Error(err))
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	// Enable CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"*"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	handlers := routes.Handlers{
		Movies: catalogcontrollers.NewMovieController(movies),
		Series: catalogcontrollers.NewSeriesController(series),
		Search: catalogcontrollers.NewSearchController(catalog.NewSearchService(movies, series)),
		Sitemap: sitemapcontrollers.NewSitemapController(sitemap.NewBuilder(cfg.SiteURL,
			sitemap.Section{Prefix: "/movie", Source: movies},
			sitemap.Section{Prefix: "/series", Source: series},
		)),
		Events: eventcontrollers.NewWebSocketController(hub, logger.Named("ws")),
		Ready: func(c *gin.Context) bool {
			return config.CheckConnection(c.Request.Context(), db, logger)
		},
	}
	if minioStore != nil {
		handlers.Files = mediacontrollers.NewFileController(minioStore)
	}
	routes.RegisterRoutes(router, handlers)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	if jobs != nil {
		<-jobs.Stop().Done()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
