package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"healthvault/internal/auth"
	"healthvault/internal/http/middleware"
	"healthvault/internal/repository"
	"healthvault/internal/service"
)

// Services groups the use-case implementations injected into the routes.
type Services struct {
	Auth     service.AuthService
	Records  service.RecordService
	Wellness service.WellnessService
	Tips     service.TipService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; db may be nil when the memory
// backend is active.
func RegisterRoutes(app *fiber.App, db *sql.DB, tokens *auth.TokenManager, users repository.UserRepository, svcs Services) {
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

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Public routes
	api := app.Group("/api")
	api.Post("/auth/register", Register(svcs.Auth))
	api.Post("/auth/login", Login(svcs.Auth))
	api.Get("/health-tips", RandomTip(svcs.Tips))

	// Uploaded files; names are storage-assigned UUIDs
	app.Get("/uploads/:fileName", DownloadRecord(svcs.Records))

	// Authenticated routes
	authed := api.Group("", middleware.RequireAuth(tokens, users))
	authed.Get("/auth/me", Me())
	authed.Post("/medical-records", UploadRecord(svcs.Records))
	authed.Get("/medical-records", ListRecords(svcs.Records))
	authed.Delete("/medical-records/:id", DeleteRecord(svcs.Records))
	authed.Post("/wellness", CreateWellnessEntry(svcs.Wellness))
	authed.Get("/wellness", ListWellnessEntries(svcs.Wellness))
}
