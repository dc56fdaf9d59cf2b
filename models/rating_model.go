package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is a student's review of an instructor after a completed lesson.
// One rating per lesson request.
type Rating struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	LessonRequestID uuid.UUID `gorm:"type:uuid;not null;unique" json:"lesson_request_id"`
	StudentID       uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	InstructorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"instructor_id"`
	Score           int       `gorm:"not null" json:"score"`
	Comment         string    `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
