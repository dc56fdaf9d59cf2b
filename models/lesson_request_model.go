package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonStatus is the closed set of states a lesson booking request moves
// through. Rejected, completed and cancelled are terminal.
type LessonStatus string

const (
	LessonPending   LessonStatus = "pending"
	LessonAccepted  LessonStatus = "accepted"
	LessonRejected  LessonStatus = "rejected"
	LessonCompleted LessonStatus = "completed"
	LessonCancelled LessonStatus = "cancelled"
)

// lessonTransitions holds the only legal status edges. Anything not listed
// here is an illegal transition, checked once in CanTransitionTo rather
// than re-validated at every call site.
var lessonTransitions = map[LessonStatus][]LessonStatus{
	LessonPending:  {LessonAccepted, LessonRejected, LessonCancelled},
	LessonAccepted: {LessonCompleted, LessonCancelled},
}

func (s LessonStatus) CanTransitionTo(next LessonStatus) bool {
	for _, allowed := range lessonTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s LessonStatus) IsTerminal() bool {
	return len(lessonTransitions[s]) == 0
}

type LessonType string

const (
	LessonDriving  LessonType = "driving"
	LessonTheory   LessonType = "theory"
	LessonHighway  LessonType = "highway"
	LessonParking  LessonType = "parking"
	LessonMockTest LessonType = "mock_test"
)

func (t LessonType) Valid() bool {
	switch t {
	case LessonDriving, LessonTheory, LessonHighway, LessonParking, LessonMockTest:
		return true
	}
	return false
}

// LessonDurations are the only bookable lesson lengths, in minutes.
var LessonDurations = []int{45, 60, 90, 120}

func ValidLessonDuration(minutes int) bool {
	for _, d := range LessonDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// LessonRequest is a student's proposal for a lesson with a specific
// instructor, time and duration, subject to the instructor's approval.
// Requests are never deleted; cancellation is a state.
type LessonRequest struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	InstructorID uuid.UUID `gorm:"type:uuid;not null;index" json:"instructor_id"`
	SchoolID     uuid.UUID `gorm:"type:uuid;not null" json:"school_id"`

	LessonType      LessonType `gorm:"size:20;not null" json:"lesson_type"`
	VehicleType     *string    `gorm:"size:20" json:"vehicle_type"`
	ScheduledDate   time.Time  `gorm:"not null" json:"scheduled_date"`
	DurationMinutes int        `gorm:"not null" json:"duration_minutes"`

	Status          LessonStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	RejectionReason *string      `gorm:"type:text" json:"rejection_reason,omitempty"`
	Message         *string      `gorm:"type:text" json:"message,omitempty"`

	Student    User `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Instructor User `gorm:"foreignkey:InstructorID" json:"instructor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *LessonRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
