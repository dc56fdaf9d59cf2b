package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	VehicleManual    = "manual"
	VehicleAutomatic = "automatic"
)

type Instructor struct {
	UserID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"user_id"`
	SchoolID        *uuid.UUID `gorm:"type:uuid" json:"school_id"`
	Bio             *string    `gorm:"type:text" json:"bio"`
	VehicleType     *string    `gorm:"size:20" json:"vehicle_type"`
	YearsExperience int        `gorm:"default:0" json:"years_experience"`
	AvgRating       float32    `gorm:"default:0" json:"avg_rating"`

	User   User    `gorm:"foreignkey:UserID" json:"user"`
	School *School `gorm:"foreignkey:SchoolID" json:"school,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
