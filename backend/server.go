package backend

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mektycoon/mekgold/backend/handlers"
	"github.com/mektycoon/mekgold/backend/middleware"
	"github.com/mektycoon/mekgold/backend/utils"
)

// NewApp builds the HTTP API around webApp.
func NewApp(webApp *handlers.WebApp, allowedOrigins []string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Mek Gold API",
		ServerHeader:          "mekgold",
		ErrorHandler:          middleware.CustomErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	if len(allowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(allowedOrigins, ","),
			AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
			AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		}))
	}
	app.Use(middleware.LoggingMiddleware())

	setupRoutes(app, webApp)

	app.Use(func(c *fiber.Ctx) error {
		return utils.SendNotFound(c, "Route not found", nil)
	})

	return app
}

func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	api := app.Group("/api", middleware.APIRateLimit())
	api.Get("/modifier-types", handlers.ModifierTypesList(webApp))
	api.Get("/modifier-types/:typeId", handlers.ModifierTypesDetail(webApp))
	api.Delete("/modifiers/:modifierId", handlers.ModifiersRevoke(webApp))

	accounts := api.Group("/accounts/:id")
	accounts.Put("/", handlers.AccountsEnsure(webApp))
	accounts.Get("/", handlers.AccountsDetail(webApp))
	accounts.Post("/collect", middleware.CollectRateLimit(), handlers.AccountsCollect(webApp))
	accounts.Post("/recompute", handlers.AccountsRecompute(webApp))
	accounts.Post("/spend", handlers.AccountsSpend(webApp))
	accounts.Get("/settlements", handlers.AccountsSettlements(webApp))
	accounts.Get("/assets", handlers.AssetsList(webApp))
	accounts.Post("/assets", handlers.AssetsAcquire(webApp))
	accounts.Put("/assets/:assetId", handlers.AssetsSetLevel(webApp))
	accounts.Get("/modifiers", handlers.ModifiersList(webApp))
	accounts.Post("/modifiers", handlers.ModifiersGrant(webApp))

	admin := app.Group("/admin", middleware.AdminRequired(webApp.AdminToken))
	admin.Put("/modifier-types", middleware.AuditLogMiddleware("upsert_modifier_type"), handlers.AdminUpsertModifierType(webApp))
	admin.Post("/modifier-types/seed", middleware.AuditLogMiddleware("seed_modifier_types"), handlers.AdminSeed(webApp))
	admin.Post("/accounts/:id/update", middleware.AuditLogMiddleware("account_update"), handlers.AdminAccountUpdate(webApp))
	admin.Post("/sweep", middleware.AuditLogMiddleware("sweep"), handlers.AdminSweep(webApp))
}
