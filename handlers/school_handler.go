package handlers

import (
	"github.com/brianodhiambo/driving_school/database"
	"github.com/brianodhiambo/driving_school/middleware"
	"github.com/brianodhiambo/driving_school/models"
	"github.com/brianodhiambo/driving_school/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type JoinSchoolRequest struct {
	SchoolID     string  `json:"school_id" validate:"required,uuid"`
	Message      *string `json:"message"`
	StudentName  string  `json:"student_name" validate:"required"`
	StudentEmail string  `json:"student_email" validate:"required,email"`
	StudentPhone string  `json:"student_phone"`
}

// JoinSchool submits the calling student's request to join a school.
func JoinSchool(c *fiber.Ctx) error {
	studentID := middleware.CallerID(c)

	var req JoinSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	schoolID, _ := uuid.Parse(req.SchoolID)

	request, err := membershipService().RequestJoin(studentID, services.JoinInput{
		SchoolID:     schoolID,
		Message:      req.Message,
		StudentName:  req.StudentName,
		StudentEmail: req.StudentEmail,
		StudentPhone: req.StudentPhone,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// ApproveJoinRequest lets the administering admin approve a pending request.
func ApproveJoinRequest(c *fiber.Ctx) error {
	return decideJoinRequest(c, true)
}

// RejectJoinRequest lets the administering admin reject a pending request.
func RejectJoinRequest(c *fiber.Ctx) error {
	return decideJoinRequest(c, false)
}

func decideJoinRequest(c *fiber.Ctx, approve bool) error {
	adminID := middleware.CallerID(c)
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	request, err := membershipService().Decide(requestID, adminID, approve)
	if err != nil {
		return serviceError(c, err)
	}

	if approve {
		go notifyStudentByEmail(request.StudentID, "School Application Approved",
			"<h1>Application Approved</h1><p>Your application to join the school has been approved! You can now book lessons.</p>")
	} else {
		go notifyStudentByEmail(request.StudentID, "School Application Rejected",
			"<h1>Application Rejected</h1><p>Your application to join the school was not approved.</p>")
	}

	return c.JSON(request)
}

// GetMySchool reports the calling student's membership status and school.
func GetMySchool(c *fiber.Ctx) error {
	studentID := middleware.CallerID(c)

	status, err := membershipService().GetStatusForStudent(studentID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(status)
}

// GetAvailableSchools lists active schools students can apply to.
func GetAvailableSchools(c *fiber.Ctx) error {
	var schools []models.School
	if err := database.DB.
		Where("status = ?", models.SchoolStatusActive).
		Order("name asc").
		Find(&schools).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch schools"})
	}

	summaries := make([]models.SchoolSummary, 0, len(schools))
	for _, school := range schools {
		summaries = append(summaries, school.Summary())
	}
	return c.JSON(fiber.Map{"schools": summaries})
}

// GetSchoolRequests lists a school's pending join requests for its admin.
func GetSchoolRequests(c *fiber.Ctx) error {
	adminID := middleware.CallerID(c)
	schoolID, err := uuid.Parse(c.Params("schoolId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid school id"})
	}

	requests, err := membershipService().ListPendingForSchool(schoolID, adminID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(requests)
}

type CreateSchoolRequest struct {
	Name        string  `json:"name" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email" validate:"omitempty,email"`
	Description *string `json:"description"`
	Services    *string `json:"services"`
}

// CreateSchool registers a new school administered by the calling admin.
func CreateSchool(c *fiber.Ctx) error {
	adminID := middleware.CallerID(c)

	var req CreateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	school := models.School{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Description: req.Description,
		Services:    req.Services,
		Status:      models.SchoolStatusActive,
		AdminID:     adminID,
	}
	if err := database.DB.Create(&school).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create school"})
	}

	return c.Status(fiber.StatusCreated).JSON(school)
}
