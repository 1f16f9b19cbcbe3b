package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wellnessapi/docs"
	"wellnessapi/internal/asset"
	"wellnessapi/internal/cache"
	"wellnessapi/internal/config"
	"wellnessapi/internal/database"
	"wellnessapi/internal/database/migration"
	handlers "wellnessapi/internal/http/handler"
	"wellnessapi/internal/http/middleware"
	"wellnessapi/internal/otel"
	"wellnessapi/internal/payment"
	"wellnessapi/internal/repository/postgres"
	"wellnessapi/internal/service"
	"wellnessapi/internal/storage"
)

// @title Wellness API
// @version 1.0
// @BasePath /
func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// Configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Error("failed to initialize object storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis is optional; a nil client disables caching.
	redisCache, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		log.Warn("cache disabled", slog.String("error", err.Error()))
	}
	if redisCache != nil {
		defer redisCache.Close()
	}

	assets := asset.NewManager(objStore, nil)
	gateway := payment.NewCashfree(cfg.Cashfree)

	ebookRepo := postgres.NewEbookPostgres(db)
	planRepo := postgres.NewNutritionPlanPostgres(db)
	programRepo := postgres.NewProgramPostgres(db)
	programSeriesRepo := postgres.NewProgramSeriesPostgres(db)
	podcastSeriesRepo := postgres.NewPodcastSeriesPostgres(db)
	podcastEpisodeRepo := postgres.NewPodcastEpisodePostgres(db)
	blogRepo := postgres.NewBlogPostPostgres(db)
	appointmentRepo := postgres.NewAppointmentPostgres(db)
	settingRepo := postgres.NewSettingPostgres(db)
	orderRepo := postgres.NewPaymentOrderPostgres(db)

	h := handlers.Handlers{
		Ebooks:          handlers.NewEbookHandler(service.NewEbookService(ebookRepo, assets, objStore)),
		NutritionPlans:  handlers.NewNutritionPlanHandler(service.NewNutritionPlanService(planRepo, assets, objStore)),
		Programs:        handlers.NewProgramHandler(service.NewProgramService(programRepo, assets)),
		ProgramSeries:   handlers.NewProgramSeriesHandler(service.NewProgramSeriesService(programSeriesRepo, assets)),
		PodcastSeries:   handlers.NewPodcastSeriesHandler(service.NewPodcastSeriesService(podcastSeriesRepo, podcastEpisodeRepo, assets)),
		PodcastEpisodes: handlers.NewPodcastEpisodeHandler(service.NewPodcastEpisodeService(podcastEpisodeRepo, podcastSeriesRepo, assets)),
		Blogs:           handlers.NewBlogHandler(service.NewBlogService(blogRepo, assets)),
		Appointments:    handlers.NewAppointmentHandler(service.NewAppointmentService(appointmentRepo)),
		Settings:        handlers.NewSettingHandler(service.NewSettingService(settingRepo, redisCache)),
		Payments:        handlers.NewPaymentHandler(service.NewPaymentService(orderRepo, ebookRepo, planRepo, gateway)),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    64 * 1024 * 1024, // uploads carry full PDFs
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Error("failed to register metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, h)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown failed", slog.String("error", err.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown failed", slog.String("error", err.Error()))
	}
}
