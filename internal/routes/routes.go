package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Unknownlegend09/ff-tournament/internal/auth"
	"github.com/Unknownlegend09/ff-tournament/internal/handlers"
	"github.com/Unknownlegend09/ff-tournament/internal/middleware"
	"github.com/Unknownlegend09/ff-tournament/internal/models"
)

// Setup wires every route. The legacy flat-file intake stays top-level
// for backward compatibility; everything else lives under /api.
func Setup(
	app *fiber.App,
	tm *auth.TokenManager,
	authH *handlers.AuthHandler,
	tournamentH *handlers.TournamentHandler,
	uploadH *handlers.UploadHandler,
	legacyH *handlers.LegacyHandler,
) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Free Fire Tournament Server Running 🔥")
	})
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	// legacy intake, no auth
	app.Post("/register", legacyH.Submit)

	api := app.Group("/api")

	authGrp := api.Group("/auth")
	authGrp.Post("/register", authH.Register)
	authGrp.Post("/login", authH.Login)

	api.Get("/tournaments", tournamentH.List)

	requireAuth := middleware.RequireAuth(tm)
	requireAdmin := middleware.RequireRole(models.RoleAdmin)

	api.Post("/tournaments", requireAuth, requireAdmin, tournamentH.Create)
	api.Post("/tournaments/:id/register", requireAuth, tournamentH.Register)
	api.Post("/upload", requireAuth, uploadH.Upload)
	api.Get("/my-registrations", requireAuth, tournamentH.ListMyRegistrations)

	api.Get("/registrations", requireAuth, requireAdmin, tournamentH.ListRegistrations)
	api.Put("/registrations/:id/status", requireAuth, requireAdmin, tournamentH.UpdateStatus)
}
