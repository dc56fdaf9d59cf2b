package services

import (
	"github.com/brianodhiambo/driving_school/models"
	"github.com/google/uuid"
)

// Action is a workflow operation subject to the access control gate.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionCancel Action = "cancel"
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
	ActionDecide Action = "decide"
)

// Target carries the ownership facts of the entity an action is aimed at.
// Fields that do not apply to the entity stay zero.
type Target struct {
	OwnerStudentID uuid.UUID
	InstructorID   uuid.UUID
	SchoolAdminID  uuid.UUID
}

// Authorize is the single gate consulted before every mutating workflow
// call. Rules are evaluated in order, first match wins; anything that
// falls through is forbidden. Returns nil when the caller may proceed.
func Authorize(callerRole string, callerID uuid.UUID, action Action, target Target) *Error {
	switch {
	case callerRole == models.RoleStudent &&
		(action == ActionCreate || action == ActionCancel || action == ActionRead) &&
		callerID == target.OwnerStudentID:
		return nil

	case callerRole == models.RoleInstructor &&
		(action == ActionAccept || action == ActionReject) &&
		callerID == target.InstructorID:
		return nil

	case callerRole == models.RoleAdmin &&
		action == ActionDecide &&
		callerID == target.SchoolAdminID:
		return nil
	}

	return errForbidden("%s is not permitted to %s this request", callerRole, action)
}
