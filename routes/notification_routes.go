package routes

import (
	"github.com/brianodhiambo/driving_school/handlers"
	"github.com/brianodhiambo/driving_school/middleware"
	"github.com/gofiber/fiber/v2"
)

func NotificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	notifications := api.Group("/notifications", middleware.Protected())
	notifications.Get("", handlers.GetMyNotifications)
	notifications.Put("/:notificationId/read", handlers.MarkNotificationRead)
}
