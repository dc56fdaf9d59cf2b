package services

import (
	"errors"
	"log"
	"time"

	"github.com/brianodhiambo/driving_school/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MembershipService governs a student's request to join a driving school
// and the school admin's approval decision. A student holds at most one
// pending or approved membership at a time.
type MembershipService struct {
	db *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

type JoinInput struct {
	SchoolID     uuid.UUID
	Message      *string
	StudentName  string
	StudentEmail string
	StudentPhone string
}

// RequestJoin submits a join request for a student. Fails with
// AlreadyMember while the student has any pending or approved membership.
func (s *MembershipService) RequestJoin(studentID uuid.UUID, in JoinInput) (*models.MembershipRequest, error) {
	var school models.School
	if err := s.db.First(&school, "id = ?", in.SchoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("school not found")
		}
		return nil, err
	}
	if school.Status != models.SchoolStatusActive {
		return nil, errInvalidInput("school is not accepting students")
	}

	var existing int64
	err := s.db.Model(&models.MembershipRequest{}).
		Where("student_id = ? AND status IN ?", studentID,
			[]models.MembershipStatus{models.MembershipPending, models.MembershipApproved}).
		Count(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, errAlreadyMember("you already have an open or approved school membership")
	}

	request := models.MembershipRequest{
		StudentID:    studentID,
		SchoolID:     in.SchoolID,
		Status:       models.MembershipPending,
		Message:      in.Message,
		StudentName:  in.StudentName,
		StudentEmail: in.StudentEmail,
		StudentPhone: in.StudentPhone,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}

	s.notify(school.AdminID, "New Student Request",
		request.StudentName+" wants to join your school.",
		models.NotificationJoinRequest, request.ID)

	return &request, nil
}

// Decide approves or rejects a pending join request. Only the admin of the
// target school may decide, and only while the request is pending; the
// first decision to commit wins.
func (s *MembershipService) Decide(requestID, callerAdminID uuid.UUID, approve bool) (*models.MembershipRequest, error) {
	request, err := s.get(requestID)
	if err != nil {
		return nil, err
	}

	var school models.School
	if err := s.db.First(&school, "id = ?", request.SchoolID).Error; err != nil {
		return nil, err
	}
	if err := Authorize(models.RoleAdmin, callerAdminID, ActionDecide, Target{
		OwnerStudentID: request.StudentID,
		SchoolAdminID:  school.AdminID,
	}); err != nil {
		return nil, err
	}

	next := models.MembershipApproved
	if !approve {
		next = models.MembershipRejected
	}

	result := s.db.Model(&models.MembershipRequest{}).
		Where("id = ? AND status = ?", requestID, models.MembershipPending).
		Updates(map[string]interface{}{"status": next, "updated_at": time.Now()})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		request, err = s.get(requestID)
		if err != nil {
			return nil, err
		}
		return nil, errInvalidState("request is %s, expected pending", request.Status)
	}

	if approve {
		s.notify(request.StudentID, "School Application Approved",
			"Your application to join "+school.Name+" has been approved!",
			models.NotificationJoinApproved, requestID)
	} else {
		s.notify(request.StudentID, "School Application Rejected",
			"Your application to join "+school.Name+" was not approved.",
			models.NotificationJoinRejected, requestID)
	}

	return s.get(requestID)
}

// StudentStatus is the answer to "what school am I in?".
type StudentStatus struct {
	Status models.MembershipStatus `json:"status"`
	School *models.SchoolSummary   `json:"school"`
}

// GetStatusForStudent reports the student's current membership status and
// the school it points at. Students with no request at all are no_school.
func (s *MembershipService) GetStatusForStudent(studentID uuid.UUID) (*StudentStatus, error) {
	var request models.MembershipRequest
	err := s.db.
		Where("student_id = ?", studentID).
		Order("created_at desc").
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &StudentStatus{Status: models.MembershipNoSchool}, nil
		}
		return nil, err
	}

	var school models.School
	if err := s.db.First(&school, "id = ?", request.SchoolID).Error; err != nil {
		return nil, err
	}
	summary := school.Summary()
	return &StudentStatus{Status: request.Status, School: &summary}, nil
}

// ListPendingForSchool returns a school's open join requests for its admin.
func (s *MembershipService) ListPendingForSchool(schoolID, callerAdminID uuid.UUID) ([]models.MembershipRequest, error) {
	var school models.School
	if err := s.db.First(&school, "id = ?", schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("school not found")
		}
		return nil, err
	}
	if school.AdminID != callerAdminID {
		return nil, errForbidden("you do not administer this school")
	}

	var requests []models.MembershipRequest
	err := s.db.
		Where("school_id = ? AND status = ?", schoolID, models.MembershipPending).
		Order("created_at asc").
		Find(&requests).Error
	return requests, err
}

func (s *MembershipService) get(requestID uuid.UUID) (*models.MembershipRequest, error) {
	var request models.MembershipRequest
	if err := s.db.First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("membership request not found")
		}
		return nil, err
	}
	return &request, nil
}

func (s *MembershipService) notify(userID uuid.UUID, title, body, kind string, requestID uuid.UUID) {
	notification := models.Notification{
		UserID:              userID,
		Title:               title,
		Body:                body,
		Type:                kind,
		MembershipRequestID: &requestID,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("Failed to create notification for %s: %v", userID, err)
	}
}
