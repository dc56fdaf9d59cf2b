package handlers

import (
	"github.com/brianodhiambo/driving_school/database"
	"github.com/brianodhiambo/driving_school/middleware"
	"github.com/brianodhiambo/driving_school/models"
	"github.com/gofiber/fiber/v2"
)

// GetMyNotifications lists the caller's notifications, newest first.
func GetMyNotifications(c *fiber.Ctx) error {
	userID := middleware.CallerID(c)

	var notifications []models.Notification
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(100).
		Find(&notifications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch notifications"})
	}
	return c.JSON(notifications)
}

// MarkNotificationRead flags one of the caller's notifications as read.
func MarkNotificationRead(c *fiber.Ctx) error {
	userID := middleware.CallerID(c)
	notificationID := c.Params("notificationId")

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notification"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}

	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}
