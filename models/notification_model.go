package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationLessonRequest   = "lesson_request"
	NotificationLessonAccepted  = "lesson_accepted"
	NotificationLessonRejected  = "lesson_rejected"
	NotificationLessonCancelled = "lesson_cancelled"
	NotificationJoinRequest     = "school_join_request"
	NotificationJoinApproved    = "school_approval"
	NotificationJoinRejected    = "school_rejection"
)

type Notification struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title  string    `gorm:"size:255;not null" json:"title"`
	Body   string    `gorm:"type:text;not null" json:"body"`
	Type   string    `gorm:"size:40;not null" json:"type"`

	LessonRequestID     *uuid.UUID `gorm:"type:uuid" json:"lesson_request_id,omitempty"`
	MembershipRequestID *uuid.UUID `gorm:"type:uuid" json:"membership_request_id,omitempty"`

	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
