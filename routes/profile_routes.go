package routes

import (
	"github.com/brianodhiambo/driving_school/handlers"
	"github.com/brianodhiambo/driving_school/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)

	api.Get("/progress/me", middleware.Protected(), middleware.StudentRequired(), handlers.GetMyProgress)
}
