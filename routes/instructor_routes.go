package routes

import (
	"github.com/brianodhiambo/driving_school/handlers"
	"github.com/brianodhiambo/driving_school/middleware"
	"github.com/gofiber/fiber/v2"
)

func InstructorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/instructors", middleware.Protected(), handlers.ListInstructors)

	me := api.Group("/instructors/me", middleware.Protected(), middleware.InstructorRequired())
	me.Get("", handlers.GetMyInstructorProfile)
	me.Put("", handlers.UpdateMyInstructorProfile)

	instructor := api.Group("/instructor", middleware.Protected(), middleware.InstructorRequired())
	instructor.Get("/pending-lessons", handlers.GetPendingLessons)
	instructor.Put("/lessons/:requestId/complete", handlers.CompleteLesson)
}
