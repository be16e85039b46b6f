package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	app.Post("/register", handler.Register)
	app.Post("/verify", handler.VerifyEmail)
	app.Post("/login", handler.Login)

	app.Get("/user", handler.AuthRequired, handler.GetProfile)
	app.Put("/user", handler.AuthRequired, handler.UpdateProfile)
	app.Delete("/user", handler.AuthRequired, handler.DeleteAccount)

	categories := app.Group("/categories", handler.AuthRequired)
	categories.Get("/", handler.ListCategories)
	categories.Post("/", handler.CreateCategory)
	categories.Get("/:id/form", handler.GetCategoryForm)
	categories.Put("/:id", handler.UpdateCategory)
	categories.Delete("/:id", handler.DeleteCategory)

	entries := app.Group("/entries", handler.AuthRequired)
	entries.Get("/", handler.ListEntries)
	entries.Post("/", handler.CreateEntry)
	entries.Put("/:id", handler.UpdateEntry)
	entries.Delete("/:id", handler.DeleteEntry)

	reports := app.Group("/reports", handler.AuthRequired)
	reports.Get("/overview", handler.ReportOverview)
	reports.Get("/rolling", handler.ReportRolling)
	reports.Get("/balance", handler.ReportBalance)

	app.Get("/lookup/food", handler.AuthRequired, handler.LookupFood)
}
