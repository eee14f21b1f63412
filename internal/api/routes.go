package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/lang/:lang", handler.SetLanguage)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/catalog", handler.GetCatalog)
	api.Get("/dashboard", handler.AuthRequired, handler.GetDashboard)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("", handler.GetDays)
	days.Get("/:number", handler.GetDay)
	days.Patch("/:number/log", handler.UpdateDayLog)

	api.Patch("/tasks/:id", handler.AuthRequired, handler.UpdateTask)

	pms := api.Group("/pms", handler.AuthRequired)
	pms.Get("", handler.GetPMS)
	pms.Put("", handler.UpdatePMS)

	api.Get("/progress", handler.AuthRequired, handler.GetProgress)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("/profile", handler.GetProfile)
	settings.Put("/profile", handler.UpdateProfile)
	settings.Post("/change-password", handler.ChangePassword)
}
