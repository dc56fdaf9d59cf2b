package services

import (
	"errors"
	"log"
	"time"

	"github.com/brianodhiambo/driving_school/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingService governs the lifecycle of lesson booking requests:
// creation, the instructor's accept/reject decision, student cancellation
// and completion. Every mutation goes through a guarded update on the
// request's current status, so concurrent decisions on the same request
// resolve to exactly one winner.
type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

type CreateLessonInput struct {
	InstructorID    uuid.UUID
	LessonType      models.LessonType
	VehicleType     *string
	ScheduledDate   time.Time
	DurationMinutes int
	Message         *string
}

// Create submits a new lesson booking request for a student. The student
// must hold an approved school membership; the request starts out pending.
func (s *BookingService) Create(studentID uuid.UUID, in CreateLessonInput) (*models.LessonRequest, error) {
	if !in.LessonType.Valid() {
		return nil, errInvalidInput("unknown lesson type %q", in.LessonType)
	}
	if !models.ValidLessonDuration(in.DurationMinutes) {
		return nil, errInvalidInput("duration must be one of %v minutes, got %d", models.LessonDurations, in.DurationMinutes)
	}
	if !in.ScheduledDate.After(time.Now()) {
		return nil, errInvalidInput("scheduled date must be in the future")
	}

	var membership models.MembershipRequest
	err := s.db.
		Where("student_id = ? AND status = ?", studentID, models.MembershipApproved).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotApproved("you must be approved by a school before booking lessons")
		}
		return nil, err
	}

	var instructor models.Instructor
	if err := s.db.First(&instructor, "user_id = ?", in.InstructorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("instructor not found")
		}
		return nil, err
	}

	request := models.LessonRequest{
		StudentID:       studentID,
		InstructorID:    in.InstructorID,
		SchoolID:        membership.SchoolID,
		LessonType:      in.LessonType,
		VehicleType:     in.VehicleType,
		ScheduledDate:   in.ScheduledDate,
		DurationMinutes: in.DurationMinutes,
		Status:          models.LessonPending,
		Message:         in.Message,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}

	s.notify(in.InstructorID, "New Lesson Request",
		"A student has requested a lesson with you.",
		models.NotificationLessonRequest, request.ID)

	return &request, nil
}

// Accept confirms a pending request. Only the named instructor may accept,
// and only while the request is still pending.
func (s *BookingService) Accept(requestID, callerInstructorID uuid.UUID) (*models.LessonRequest, error) {
	request, err := s.get(requestID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(models.RoleInstructor, callerInstructorID, ActionAccept, Target{
		OwnerStudentID: request.StudentID,
		InstructorID:   request.InstructorID,
	}); err != nil {
		return nil, err
	}

	updated, err := s.transition(requestID, []models.LessonStatus{models.LessonPending}, map[string]interface{}{
		"status": models.LessonAccepted,
	})
	if err != nil {
		return nil, err
	}

	s.notify(updated.StudentID, "Lesson Confirmed",
		"Your lesson has been confirmed by the instructor.",
		models.NotificationLessonAccepted, updated.ID)

	return updated, nil
}

// Reject declines a pending request with a reason, under the same guards
// as Accept. Rejected is terminal.
func (s *BookingService) Reject(requestID, callerInstructorID uuid.UUID, reason string) (*models.LessonRequest, error) {
	request, err := s.get(requestID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(models.RoleInstructor, callerInstructorID, ActionReject, Target{
		OwnerStudentID: request.StudentID,
		InstructorID:   request.InstructorID,
	}); err != nil {
		return nil, err
	}

	updated, err := s.transition(requestID, []models.LessonStatus{models.LessonPending}, map[string]interface{}{
		"status":           models.LessonRejected,
		"rejection_reason": reason,
	})
	if err != nil {
		return nil, err
	}

	s.notify(updated.StudentID, "Lesson Rejected",
		"Your lesson request was rejected. Reason: "+reason,
		models.NotificationLessonRejected, updated.ID)

	return updated, nil
}

// Cancel lets the owning student withdraw a request while it is pending
// or accepted. The record stays around as audit history.
func (s *BookingService) Cancel(requestID, callerStudentID uuid.UUID) (*models.LessonRequest, error) {
	request, err := s.get(requestID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(models.RoleStudent, callerStudentID, ActionCancel, Target{
		OwnerStudentID: request.StudentID,
		InstructorID:   request.InstructorID,
	}); err != nil {
		return nil, err
	}

	updated, err := s.transition(requestID,
		[]models.LessonStatus{models.LessonPending, models.LessonAccepted},
		map[string]interface{}{"status": models.LessonCancelled})
	if err != nil {
		return nil, err
	}

	s.notify(updated.InstructorID, "Lesson Cancelled",
		"A student has cancelled a lesson request.",
		models.NotificationLessonCancelled, updated.ID)

	return updated, nil
}

// Complete marks an accepted lesson as held. Only the named instructor may
// complete it, and not before the scheduled slot has ended.
func (s *BookingService) Complete(requestID, callerInstructorID uuid.UUID) (*models.LessonRequest, error) {
	request, err := s.get(requestID)
	if err != nil {
		return nil, err
	}
	if request.InstructorID != callerInstructorID {
		return nil, errForbidden("you are not the instructor for this lesson")
	}

	lessonEnd := request.ScheduledDate.Add(time.Duration(request.DurationMinutes) * time.Minute)
	if lessonEnd.After(time.Now()) {
		return nil, errInvalidState("cannot complete a lesson before it has ended")
	}

	return s.transition(requestID, []models.LessonStatus{models.LessonAccepted}, map[string]interface{}{
		"status": models.LessonCompleted,
	})
}

// ListPendingForInstructor returns the instructor's open requests, earliest
// scheduled first, creation order breaking ties.
func (s *BookingService) ListPendingForInstructor(instructorID uuid.UUID) ([]models.LessonRequest, error) {
	var requests []models.LessonRequest
	err := s.db.
		Preload("Student").
		Where("instructor_id = ? AND status = ?", instructorID, models.LessonPending).
		Order("scheduled_date asc, created_at asc").
		Find(&requests).Error
	return requests, err
}

// ListForStudent returns all of a student's requests, newest first.
func (s *BookingService) ListForStudent(studentID uuid.UUID) ([]models.LessonRequest, error) {
	var requests []models.LessonRequest
	err := s.db.
		Preload("Instructor").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&requests).Error
	return requests, err
}

func (s *BookingService) get(requestID uuid.UUID) (*models.LessonRequest, error) {
	var request models.LessonRequest
	if err := s.db.First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("lesson request not found")
		}
		return nil, err
	}
	return &request, nil
}

// transition performs the compare-and-set that makes decisions race-safe:
// the UPDATE only applies while the row is still in one of the expected
// statuses. Zero rows affected means somebody else committed first (or the
// row never existed), and the caller gets InvalidState or NotFound.
func (s *BookingService) transition(requestID uuid.UUID, from []models.LessonStatus, updates map[string]interface{}) (*models.LessonRequest, error) {
	updates["updated_at"] = time.Now()

	result := s.db.Model(&models.LessonRequest{}).
		Where("id = ? AND status IN ?", requestID, from).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		request, err := s.get(requestID)
		if err != nil {
			return nil, err
		}
		return nil, errInvalidState("request is %s, expected one of %v", request.Status, from)
	}

	return s.get(requestID)
}

func (s *BookingService) notify(userID uuid.UUID, title, body, kind string, requestID uuid.UUID) {
	notification := models.Notification{
		UserID:          userID,
		Title:           title,
		Body:            body,
		Type:            kind,
		LessonRequestID: &requestID,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("Failed to create notification for %s: %v", userID, err)
	}
}
