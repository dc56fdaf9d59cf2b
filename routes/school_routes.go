package routes

import (
	"github.com/brianodhiambo/driving_school/handlers"
	"github.com/brianodhiambo/driving_school/middleware"
	"github.com/gofiber/fiber/v2"
)

func SchoolRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	schools := api.Group("/schools", middleware.Protected())
	schools.Get("/available", handlers.GetAvailableSchools)
	schools.Get("/my-school", middleware.StudentRequired(), handlers.GetMySchool)
	schools.Get("/:schoolId/requests", middleware.AdminRequired(), handlers.GetSchoolRequests)
	schools.Post("", middleware.AdminRequired(), handlers.CreateSchool)
}
