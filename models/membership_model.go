package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MembershipStatus is the state of a student's request to join a school.
// StatusNoSchool is never stored: it is the derived answer for a student
// with no membership request at all.
type MembershipStatus string

const (
	MembershipNoSchool MembershipStatus = "no_school"
	MembershipPending  MembershipStatus = "pending"
	MembershipApproved MembershipStatus = "approved"
	MembershipRejected MembershipStatus = "rejected"
)

func (s MembershipStatus) IsTerminal() bool {
	return s == MembershipRejected
}

// MembershipRequest is a student's proposal to join a driving school,
// subject to the school admin's approval. A student holds at most one
// pending or approved request at a time.
type MembershipRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	SchoolID  uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`

	Status  MembershipStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	Message *string          `gorm:"type:text" json:"message,omitempty"`

	// Contact snapshot taken at request time, shown to the school admin
	// on the pending-requests list.
	StudentName  string `gorm:"size:255" json:"student_name"`
	StudentEmail string `gorm:"size:255" json:"student_email"`
	StudentPhone string `gorm:"size:30" json:"student_phone"`

	Student User   `gorm:"foreignkey:StudentID" json:"-"`
	School  School `gorm:"foreignkey:SchoolID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *MembershipRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
