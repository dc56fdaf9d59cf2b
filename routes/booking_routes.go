package routes

import (
	"github.com/brianodhiambo/driving_school/handlers"
	"github.com/brianodhiambo/driving_school/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/booking", middleware.Protected())
	booking.Get("/my-requests", handlers.GetMyBookingRequests)

	lesson := booking.Group("/lesson")
	lesson.Post("", middleware.StudentRequired(), handlers.BookLesson)
	lesson.Put("/:requestId/accept", middleware.InstructorRequired(), handlers.AcceptLesson)
	lesson.Put("/:requestId/reject", middleware.InstructorRequired(), handlers.RejectLesson)
	lesson.Put("/:requestId/cancel", middleware.StudentRequired(), handlers.CancelLesson)
	lesson.Post("/:requestId/review", middleware.StudentRequired(), handlers.CreateLessonReview)

	school := booking.Group("/school")
	school.Post("/join", middleware.StudentRequired(), handlers.JoinSchool)
	school.Put("/:requestId/approve", middleware.AdminRequired(), handlers.ApproveJoinRequest)
	school.Put("/:requestId/reject", middleware.AdminRequired(), handlers.RejectJoinRequest)
}
