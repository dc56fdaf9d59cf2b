package handlers

import (
	"github.com/brianodhiambo/driving_school/database"
	"github.com/brianodhiambo/driving_school/middleware"
	"github.com/brianodhiambo/driving_school/models"
	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	FullName          *string `json:"full_name"`
	Phone             *string `json:"phone"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

func GetProfile(c *fiber.Ctx) error {
	userID := middleware.CallerID(c)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.CallerID(c)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.ProfilePictureURL != nil {
		user.ProfilePictureURL = req.ProfilePictureURL
	}

	database.DB.Save(&user)

	return c.JSON(user)
}

// GetMyProgress summarizes the calling student's completed lessons.
func GetMyProgress(c *fiber.Ctx) error {
	studentID := middleware.CallerID(c)

	var totalLessons int64
	database.DB.Model(&models.LessonRequest{}).
		Where("student_id = ? AND status = ?", studentID, models.LessonCompleted).
		Count(&totalLessons)

	var totalMinutes int64
	database.DB.Model(&models.LessonRequest{}).
		Where("student_id = ? AND status = ?", studentID, models.LessonCompleted).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Row().Scan(&totalMinutes)

	type typeCount struct {
		LessonType models.LessonType `json:"lesson_type"`
		Count      int64             `json:"count"`
	}
	var byType []typeCount
	database.DB.Model(&models.LessonRequest{}).
		Where("student_id = ? AND status = ?", studentID, models.LessonCompleted).
		Select("lesson_type, count(*) as count").
		Group("lesson_type").
		Scan(&byType)

	return c.JSON(fiber.Map{
		"total_lessons_completed": totalLessons,
		"total_hours_driven":      float64(totalMinutes) / 60.0,
		"lessons_by_type":         byType,
	})
}
