package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Ebooks          *EbookHandler
	NutritionPlans  *NutritionPlanHandler
	Programs        *ProgramHandler
	ProgramSeries   *ProgramSeriesHandler
	PodcastSeries   *PodcastSeriesHandler
	PodcastEpisodes *PodcastEpisodeHandler
	Blogs           *BlogHandler
	Appointments    *AppointmentHandler
	Settings        *SettingHandler
	Payments        *PaymentHandler
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
//
// Slugged resources share a layout: the literal segments (downloads, id
// lookups) are registered before the catch-all /:slug so Fiber matches
// them first.
func RegisterRoutes(app *fiber.App, db *sql.DB, h Handlers) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoint: checks DB connectivity only
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).
				JSON(envelope{Success: false, Error: "dependency unavailable"})
		}
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	// Simple liveness probe
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	api := app.Group("/api")

	ebooks := api.Group("/ebooks")
	ebooks.Get("/", h.Ebooks.List)
	ebooks.Post("/", h.Ebooks.Create)
	ebooks.Get("/download/:id", h.Ebooks.Download)
	ebooks.Get("/id/:id", h.Ebooks.Get)
	ebooks.Get("/:slug", h.Ebooks.GetBySlug)
	ebooks.Put("/:id", h.Ebooks.Update)
	ebooks.Delete("/:id", h.Ebooks.Delete)

	plans := api.Group("/nutrition-plans")
	plans.Get("/", h.NutritionPlans.List)
	plans.Post("/", h.NutritionPlans.Create)
	plans.Get("/download/:id", h.NutritionPlans.Download)
	plans.Get("/id/:id", h.NutritionPlans.Get)
	plans.Get("/:slug", h.NutritionPlans.GetBySlug)
	plans.Put("/:id", h.NutritionPlans.Update)
	plans.Delete("/:id", h.NutritionPlans.Delete)

	programs := api.Group("/programs")
	programs.Get("/", h.Programs.List)
	programs.Post("/", h.Programs.Create)
	programs.Get("/id/:id", h.Programs.Get)
	programs.Get("/:slug", h.Programs.GetBySlug)
	programs.Put("/:id", h.Programs.Update)
	programs.Delete("/:id", h.Programs.Delete)

	programSeries := api.Group("/program-series")
	programSeries.Get("/", h.ProgramSeries.List)
	programSeries.Post("/", h.ProgramSeries.Create)
	programSeries.Get("/id/:id", h.ProgramSeries.Get)
	programSeries.Get("/:slug", h.ProgramSeries.GetBySlug)
	programSeries.Put("/:id", h.ProgramSeries.Update)
	programSeries.Delete("/:id", h.ProgramSeries.Delete)

	podcastSeries := api.Group("/podcast-series")
	podcastSeries.Get("/", h.PodcastSeries.List)
	podcastSeries.Post("/", h.PodcastSeries.Create)
	podcastSeries.Get("/id/:id", h.PodcastSeries.Get)
	podcastSeries.Get("/:slug", h.PodcastSeries.GetBySlug)
	podcastSeries.Put("/:id", h.PodcastSeries.Update)
	podcastSeries.Delete("/:id", h.PodcastSeries.Delete)

	episodes := api.Group("/podcast-episodes")
	episodes.Get("/", h.PodcastEpisodes.List)
	episodes.Post("/", h.PodcastEpisodes.Create)
	episodes.Get("/id/:id", h.PodcastEpisodes.Get)
	episodes.Get("/:slug", h.PodcastEpisodes.GetBySlug)
	episodes.Put("/:id", h.PodcastEpisodes.Update)
	episodes.Delete("/:id", h.PodcastEpisodes.Delete)

	blogs := api.Group("/blogs")
	blogs.Get("/", h.Blogs.List)
	blogs.Post("/", h.Blogs.Create)
	blogs.Get("/id/:id", h.Blogs.Get)
	blogs.Get("/:slug", h.Blogs.GetBySlug)
	blogs.Put("/:id", h.Blogs.Update)
	blogs.Delete("/:id", h.Blogs.Delete)

	appointments := api.Group("/appointments")
	appointments.Post("/", h.Appointments.Create)
	appointments.Get("/", h.Appointments.List)
	appointments.Get("/:id", h.Appointments.Get)
	appointments.Put("/:id", h.Appointments.UpdateStatus)
	appointments.Delete("/:id", h.Appointments.Delete)

	settings := api.Group("/settings")
	settings.Get("/", h.Settings.List)
	settings.Get("/:key", h.Settings.Get)
	settings.Put("/:key", h.Settings.Upsert)
	settings.Delete("/:key", h.Settings.Delete)

	payments := api.Group("/payment")
	payments.Post("/create-order", h.Payments.CreateOrder)
	payments.Post("/webhook", h.Payments.Webhook)
	payments.Get("/status/:orderID", h.Payments.Status)
}
