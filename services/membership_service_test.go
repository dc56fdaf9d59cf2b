package services

import (
	"sync"
	"testing"

	"github.com/brianodhiambo/driving_school/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func membershipFixture(t *testing.T) (*MembershipService, *gorm.DB, models.School, models.User) {
	t.Helper()
	db := newTestDB(t)
	school, admin := seedSchool(t, db, "admin@school.test")
	return NewMembershipService(db), db, school, admin
}

func joinInput(schoolID uuid.UUID) JoinInput {
	return JoinInput{
		SchoolID:     schoolID,
		StudentName:  "Jane Doe",
		StudentEmail: "jane@school.test",
		StudentPhone: "+1-555-0100",
	}
}

func TestRequestJoin(t *testing.T) {
	svc, db, school, _ := membershipFixture(t)
	student := seedUser(t, db, models.RoleStudent, "jane@school.test")

	request, err := svc.RequestJoin(student.ID, joinInput(school.ID))
	require.NoError(t, err)
	require.Equal(t, models.MembershipPending, request.Status)
	require.Equal(t, "Jane Doe", request.StudentName)

	_, err = svc.RequestJoin(student.ID, joinInput(school.ID))
	requireKind(t, err, KindAlreadyMember)
}

func TestRequestJoinUnknownOrInactiveSchool(t *testing.T) {
	svc, db, _, _ := membershipFixture(t)
	student := seedUser(t, db, models.RoleStudent, "jane@school.test")

	_, err := svc.RequestJoin(student.ID, joinInput(uuid.New()))
	requireKind(t, err, KindNotFound)

	suspended := models.School{
		Name:    "Closed School",
		Status:  models.SchoolStatusSuspended,
		AdminID: uuid.New(),
	}
	require.NoError(t, db.Create(&suspended).Error)
	_, err = svc.RequestJoin(student.ID, joinInput(suspended.ID))
	requireKind(t, err, KindInvalidInput)
}

func TestApprovedMembershipBlocksNewJoin(t *testing.T) {
	svc, db, school, admin := membershipFixture(t)
	student := seedUser(t, db, models.RoleStudent, "jane@school.test")

	request, err := svc.RequestJoin(student.ID, joinInput(school.ID))
	require.NoError(t, err)

	approved, err := svc.Decide(request.ID, admin.ID, true)
	require.NoError(t, err)
	require.Equal(t, models.MembershipApproved, approved.Status)

	// Approved counts as a live membership: no second school.
	other, _ := seedSchool(t, db, "admin2@school.test")
	_, err = svc.RequestJoin(student.ID, joinInput(other.ID))
	requireKind(t, err, KindAlreadyMember)
}

func TestRejectedStudentMayApplyAgain(t *testing.T) {
	svc, db, school, admin := membershipFixture(t)
	student := seedUser(t, db, models.RoleStudent, "jane@school.test")

	request, err := svc.RequestJoin(student.ID, joinInput(school.ID))
	require.NoError(t, err)

	rejected, err := svc.Decide(request.ID, admin.ID, false)
	require.NoError(t, err)
	require.Equal(t, models.MembershipRejected, rejected.Status)

	// Rejection is terminal for that request but not for the student.
	again, err := svc.RequestJoin(student.ID, joinInput(school.ID))
	require.NoError(t, err)
	require.Equal(t, models.MembershipPending, again.Status)
}

func TestDecideGuards(t *testing.T) {
	svc, db, school, admin := membershipFixture(t)
	student := seedUser(t, db, models.RoleStudent, "jane@school.test")

	request, err := svc.RequestJoin(student.ID, joinInput(school.ID))
	require.NoError(t, err)

	_, err = svc.Decide(uuid.New(), admin.ID, true)
	requireKind(t, err, KindNotFound)

	// Only the admin of the target school may decide.
	otherAdmin := seedUser(t, db, models.RoleAdmin, "other@school.test")
	_, err = svc.Decide(request.ID, otherAdmin.ID, true)
	requireKind(t, err, KindForbidden)

	_, err = svc.Decide(request.ID, admin.ID, true)
	require.NoError(t, err)

	// Decisions are one-shot.
	_, err = svc.Decide(request.ID, admin.ID, false)
	requireKind(t, err, KindInvalidState)
}

func TestConcurrentDecideExactlyOneWins(t *testing.T) {
	svc, db, school, admin := membershipFixture(t)
	student := seedUser(t, db, models.RoleStudent, "jane@school.test")

	request, err := svc.RequestJoin(student.ID, joinInput(school.ID))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var approveErr, rejectErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, approveErr = svc.Decide(request.ID, admin.ID, true)
	}()
	go func() {
		defer wg.Done()
		_, rejectErr = svc.Decide(request.ID, admin.ID, false)
	}()
	wg.Wait()

	if approveErr == nil {
		requireKind(t, rejectErr, KindInvalidState)
	} else {
		requireKind(t, approveErr, KindInvalidState)
		require.NoError(t, rejectErr)
	}
}

func TestGetStatusForStudent(t *testing.T) {
	svc, db, school, admin := membershipFixture(t)

	// A student with no request at all is no_school.
	stranger := seedUser(t, db, models.RoleStudent, "stranger@school.test")
	status, err := svc.GetStatusForStudent(stranger.ID)
	require.NoError(t, err)
	require.Equal(t, models.MembershipNoSchool, status.Status)
	require.Nil(t, status.School)

	student := seedUser(t, db, models.RoleStudent, "jane@school.test")
	request, err := svc.RequestJoin(student.ID, joinInput(school.ID))
	require.NoError(t, err)

	status, err = svc.GetStatusForStudent(student.ID)
	require.NoError(t, err)
	require.Equal(t, models.MembershipPending, status.Status)
	require.NotNil(t, status.School)
	require.Equal(t, school.Name, status.School.Name)

	_, err = svc.Decide(request.ID, admin.ID, true)
	require.NoError(t, err)

	status, err = svc.GetStatusForStudent(student.ID)
	require.NoError(t, err)
	require.Equal(t, models.MembershipApproved, status.Status)
}

func TestListPendingForSchool(t *testing.T) {
	svc, db, school, admin := membershipFixture(t)

	first := seedUser(t, db, models.RoleStudent, "first@school.test")
	second := seedUser(t, db, models.RoleStudent, "second@school.test")
	_, err := svc.RequestJoin(first.ID, joinInput(school.ID))
	require.NoError(t, err)
	_, err = svc.RequestJoin(second.ID, joinInput(school.ID))
	require.NoError(t, err)

	_, err = svc.ListPendingForSchool(school.ID, uuid.New())
	requireKind(t, err, KindForbidden)

	requests, err := svc.ListPendingForSchool(school.ID, admin.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	require.Equal(t, first.ID, requests[0].StudentID)
	require.Equal(t, second.ID, requests[1].StudentID)
}
