package handlers

import (
	"errors"
	"time"

	"github.com/brianodhiambo/driving_school/database"
	"github.com/brianodhiambo/driving_school/middleware"
	"github.com/brianodhiambo/driving_school/models"
	"github.com/brianodhiambo/driving_school/notifications"
	"github.com/brianodhiambo/driving_school/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookLessonRequest struct {
	InstructorID    string  `json:"instructor_id" validate:"required,uuid"`
	LessonType      string  `json:"lesson_type" validate:"required"`
	VehicleType     *string `json:"vehicle_type" validate:"omitempty,oneof=manual automatic"`
	ScheduledDate   string  `json:"scheduled_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	DurationMinutes int     `json:"duration_minutes" validate:"required"`
	Message         *string `json:"message"`
}

// BookLesson submits a lesson booking request for the calling student.
func BookLesson(c *fiber.Ctx) error {
	studentID := middleware.CallerID(c)

	var req BookLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	instructorID, _ := uuid.Parse(req.InstructorID)
	scheduledDate, _ := time.Parse(time.RFC3339, req.ScheduledDate)

	request, err := bookingService().Create(studentID, services.CreateLessonInput{
		InstructorID:    instructorID,
		LessonType:      models.LessonType(req.LessonType),
		VehicleType:     req.VehicleType,
		ScheduledDate:   scheduledDate,
		DurationMinutes: req.DurationMinutes,
		Message:         req.Message,
	})
	if err != nil {
		return serviceError(c, err)
	}

	go notifyInstructorByEmail(request.InstructorID, "New Lesson Request",
		"<h1>New Lesson Request</h1><p>A student has requested a lesson with you. Log in to accept or reject it.</p>")

	return c.Status(fiber.StatusCreated).JSON(request)
}

// AcceptLesson lets the named instructor confirm a pending request.
func AcceptLesson(c *fiber.Ctx) error {
	instructorID := middleware.CallerID(c)
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	request, err := bookingService().Accept(requestID, instructorID)
	if err != nil {
		return serviceError(c, err)
	}

	go notifyStudentByEmail(request.StudentID, "Lesson Confirmed",
		"<h1>Lesson Confirmed</h1><p>Your lesson for "+request.ScheduledDate.Format(time.RFC1123)+" has been confirmed by your instructor.</p>")

	return c.JSON(request)
}

type RejectLessonRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// RejectLesson lets the named instructor decline a pending request.
func RejectLesson(c *fiber.Ctx) error {
	instructorID := middleware.CallerID(c)
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	var req RejectLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	request, err := bookingService().Reject(requestID, instructorID, req.Reason)
	if err != nil {
		return serviceError(c, err)
	}

	go notifyStudentByEmail(request.StudentID, "Lesson Rejected",
		"<h1>Lesson Rejected</h1><p>Your lesson request was rejected. Reason: "+req.Reason+"</p>")

	return c.JSON(request)
}

// CancelLesson lets the owning student withdraw a pending or accepted request.
func CancelLesson(c *fiber.Ctx) error {
	studentID := middleware.CallerID(c)
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	request, err := bookingService().Cancel(requestID, studentID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(request)
}

// GetMyBookingRequests returns all of the calling student's requests.
func GetMyBookingRequests(c *fiber.Ctx) error {
	studentID := middleware.CallerID(c)

	requests, err := bookingService().ListForStudent(studentID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(requests)
}

type ReviewRequest struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateLessonReview records a student's rating of the instructor for a
// completed lesson and refreshes the instructor's average.
func CreateLessonReview(c *fiber.Ctx) error {
	studentID := middleware.CallerID(c)
	requestID := c.Params("requestId")

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var newRating models.Rating
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var request models.LessonRequest
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			return errors.New("lesson request not found")
		}
		if request.StudentID != studentID {
			return errors.New("you are not the student for this lesson")
		}
		if request.Status != models.LessonCompleted {
			return errors.New("reviews can only be submitted for completed lessons")
		}

		var existing models.Rating
		if err := tx.Where("lesson_request_id = ?", requestID).First(&existing).Error; err == nil {
			return errors.New("a review for this lesson has already been submitted")
		}

		newRating = models.Rating{
			LessonRequestID: request.ID,
			StudentID:       studentID,
			InstructorID:    request.InstructorID,
			Score:           req.Score,
			Comment:         req.Comment,
		}
		if err := tx.Create(&newRating).Error; err != nil {
			return err
		}

		var result struct {
			Avg float64
		}
		tx.Model(&models.Rating{}).Where("instructor_id = ?", request.InstructorID).Select("avg(score) as avg").Scan(&result)

		return tx.Model(&models.Instructor{}).
			Where("user_id = ?", request.InstructorID).
			Update("avg_rating", result.Avg).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(newRating)
}

func notifyStudentByEmail(studentID uuid.UUID, subject, html string) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", studentID).Error; err != nil {
		return
	}
	notifications.SendEmail(user.FullName, user.Email, subject, html)
}

func notifyInstructorByEmail(instructorID uuid.UUID, subject, html string) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", instructorID).Error; err != nil {
		return
	}
	notifications.SendEmail(user.FullName, user.Email, subject, html)
}
