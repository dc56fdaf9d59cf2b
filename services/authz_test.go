package services

import (
	"testing"

	"github.com/brianodhiambo/driving_school/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	student := uuid.New()
	instructor := uuid.New()
	admin := uuid.New()
	stranger := uuid.New()

	target := Target{
		OwnerStudentID: student,
		InstructorID:   instructor,
		SchoolAdminID:  admin,
	}

	tests := []struct {
		name    string
		role    string
		caller  uuid.UUID
		action  Action
		allowed bool
	}{
		{"student creates own request", models.RoleStudent, student, ActionCreate, true},
		{"student cancels own request", models.RoleStudent, student, ActionCancel, true},
		{"student reads own request", models.RoleStudent, student, ActionRead, true},
		{"student cannot accept", models.RoleStudent, student, ActionAccept, false},
		{"other student cannot cancel", models.RoleStudent, stranger, ActionCancel, false},
		{"named instructor accepts", models.RoleInstructor, instructor, ActionAccept, true},
		{"named instructor rejects", models.RoleInstructor, instructor, ActionReject, true},
		{"other instructor cannot accept", models.RoleInstructor, stranger, ActionAccept, false},
		{"instructor cannot cancel", models.RoleInstructor, instructor, ActionCancel, false},
		{"school admin decides", models.RoleAdmin, admin, ActionDecide, true},
		{"other admin cannot decide", models.RoleAdmin, stranger, ActionDecide, false},
		{"admin cannot accept lessons", models.RoleAdmin, admin, ActionAccept, false},
		{"unknown role denied", "superuser", admin, ActionDecide, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.role, tt.caller, tt.action, target)
			if tt.allowed {
				require.Nil(t, err)
			} else {
				require.NotNil(t, err)
				require.Equal(t, KindForbidden, err.Kind)
			}
		})
	}
}
