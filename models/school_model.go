package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SchoolStatusActive    = "active"
	SchoolStatusInactive  = "inactive"
	SchoolStatusSuspended = "suspended"
)

// School is a driving school. Each school is administered by exactly one
// admin user, who decides its membership requests.
type School struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Address     string    `gorm:"size:255" json:"address"`
	Phone       string    `gorm:"size:30" json:"phone"`
	Email       string    `gorm:"size:255" json:"email"`
	Description *string   `gorm:"type:text" json:"description"`
	Services    *string   `gorm:"type:text" json:"services"`
	Status      string    `gorm:"size:20;not null;default:'active'" json:"status"`

	AdminID uuid.UUID `gorm:"type:uuid;not null" json:"admin_id"`
	Admin   User      `gorm:"foreignkey:AdminID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *School) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SchoolSummary is the public slice of a school returned to students.
type SchoolSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Description *string   `json:"description"`
	Services    *string   `json:"services"`
}

func (s *School) Summary() SchoolSummary {
	return SchoolSummary{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		Phone:       s.Phone,
		Email:       s.Email,
		Description: s.Description,
		Services:    s.Services,
	}
}
