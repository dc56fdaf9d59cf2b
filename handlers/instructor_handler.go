package handlers

import (
	"github.com/brianodhiambo/driving_school/database"
	"github.com/brianodhiambo/driving_school/middleware"
	"github.com/brianodhiambo/driving_school/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetPendingLessons lists the calling instructor's open lesson requests,
// earliest scheduled first.
func GetPendingLessons(c *fiber.Ctx) error {
	instructorID := middleware.CallerID(c)

	requests, err := bookingService().ListPendingForInstructor(instructorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(requests)
}

// CompleteLesson marks an accepted lesson as held once it has ended.
func CompleteLesson(c *fiber.Ctx) error {
	instructorID := middleware.CallerID(c)
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	request, err := bookingService().Complete(requestID, instructorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(request)
}

// ListInstructors is the directory students pick an instructor from.
func ListInstructors(c *fiber.Ctx) error {
	var instructors []models.Instructor
	if err := database.DB.
		Preload("User").
		Preload("School").
		Joins("JOIN users ON users.id = instructors.user_id").
		Where("users.is_active = ?", true).
		Order("instructors.avg_rating desc").
		Find(&instructors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch instructors"})
	}
	return c.JSON(instructors)
}

// GetMyInstructorProfile returns the calling instructor's profile.
func GetMyInstructorProfile(c *fiber.Ctx) error {
	instructorID := middleware.CallerID(c)

	var instructor models.Instructor
	if err := database.DB.
		Preload("User").
		Preload("School").
		First(&instructor, "user_id = ?", instructorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor profile not found"})
	}
	return c.JSON(instructor)
}

type UpdateInstructorProfileRequest struct {
	Bio             *string `json:"bio"`
	VehicleType     *string `json:"vehicle_type" validate:"omitempty,oneof=manual automatic"`
	YearsExperience *int    `json:"years_experience" validate:"omitempty,min=0"`
}

// UpdateMyInstructorProfile updates the calling instructor's profile.
func UpdateMyInstructorProfile(c *fiber.Ctx) error {
	instructorID := middleware.CallerID(c)

	var instructor models.Instructor
	if err := database.DB.First(&instructor, "user_id = ?", instructorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor profile not found"})
	}

	var req UpdateInstructorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Bio != nil {
		instructor.Bio = req.Bio
	}
	if req.VehicleType != nil {
		instructor.VehicleType = req.VehicleType
	}
	if req.YearsExperience != nil {
		instructor.YearsExperience = *req.YearsExperience
	}

	database.DB.Save(&instructor)

	return c.JSON(instructor)
}
