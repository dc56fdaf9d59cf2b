package services

import (
	"sync"
	"testing"
	"time"

	"github.com/brianodhiambo/driving_school/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func bookingFixture(t *testing.T) (*BookingService, models.User, models.User, models.School) {
	t.Helper()
	db := newTestDB(t)
	school, _ := seedSchool(t, db, "admin@school.test")
	instructor := seedInstructor(t, db, school, "instructor@school.test")
	student := seedUser(t, db, models.RoleStudent, "student@school.test")
	approveStudent(t, db, student, school)
	return NewBookingService(db), student, instructor, school
}

func validInput(instructorID uuid.UUID) CreateLessonInput {
	return CreateLessonInput{
		InstructorID:    instructorID,
		LessonType:      models.LessonDriving,
		ScheduledDate:   futureDate(48),
		DurationMinutes: 60,
	}
}

func TestCreateLessonRequest(t *testing.T) {
	svc, student, instructor, school := bookingFixture(t)

	request, err := svc.Create(student.ID, validInput(instructor.ID))
	require.NoError(t, err)
	require.Equal(t, models.LessonPending, request.Status)
	require.Equal(t, student.ID, request.StudentID)
	require.Equal(t, instructor.ID, request.InstructorID)
	require.Equal(t, school.ID, request.SchoolID)
}

func TestCreateRequiresApprovedMembership(t *testing.T) {
	db := newTestDB(t)
	school, _ := seedSchool(t, db, "admin@school.test")
	instructor := seedInstructor(t, db, school, "instructor@school.test")
	svc := NewBookingService(db)

	// No membership at all.
	noSchool := seedUser(t, db, models.RoleStudent, "noschool@school.test")
	_, err := svc.Create(noSchool.ID, validInput(instructor.ID))
	requireKind(t, err, KindNotApproved)

	// Pending membership is not enough.
	pending := seedUser(t, db, models.RoleStudent, "pending@school.test")
	require.NoError(t, db.Create(&models.MembershipRequest{
		StudentID: pending.ID,
		SchoolID:  school.ID,
		Status:    models.MembershipPending,
	}).Error)
	_, err = svc.Create(pending.ID, validInput(instructor.ID))
	requireKind(t, err, KindNotApproved)

	// Rejected membership is not enough either.
	rejected := seedUser(t, db, models.RoleStudent, "rejected@school.test")
	require.NoError(t, db.Create(&models.MembershipRequest{
		StudentID: rejected.ID,
		SchoolID:  school.ID,
		Status:    models.MembershipRejected,
	}).Error)
	_, err = svc.Create(rejected.ID, validInput(instructor.ID))
	requireKind(t, err, KindNotApproved)
}

func TestCreateValidatesInput(t *testing.T) {
	svc, student, instructor, _ := bookingFixture(t)

	in := validInput(instructor.ID)
	in.DurationMinutes = 50
	_, err := svc.Create(student.ID, in)
	requireKind(t, err, KindInvalidInput)

	in = validInput(instructor.ID)
	in.ScheduledDate = time.Now().Add(-time.Hour)
	_, err = svc.Create(student.ID, in)
	requireKind(t, err, KindInvalidInput)

	in = validInput(instructor.ID)
	in.LessonType = "karting"
	_, err = svc.Create(student.ID, in)
	requireKind(t, err, KindInvalidInput)

	in = validInput(instructor.ID)
	in.InstructorID = uuid.New()
	_, err = svc.Create(student.ID, in)
	requireKind(t, err, KindNotFound)
}

func TestAcceptGuards(t *testing.T) {
	svc, student, instructor, _ := bookingFixture(t)

	request, err := svc.Create(student.ID, validInput(instructor.ID))
	require.NoError(t, err)

	_, err = svc.Accept(uuid.New(), instructor.ID)
	requireKind(t, err, KindNotFound)

	_, err = svc.Accept(request.ID, uuid.New())
	requireKind(t, err, KindForbidden)

	accepted, err := svc.Accept(request.ID, instructor.ID)
	require.NoError(t, err)
	require.Equal(t, models.LessonAccepted, accepted.Status)
	require.True(t, accepted.UpdatedAt.After(request.UpdatedAt) || accepted.UpdatedAt.Equal(request.UpdatedAt))

	// Accepted is no longer pending; a second decision loses.
	_, err = svc.Accept(request.ID, instructor.ID)
	requireKind(t, err, KindInvalidState)
	_, err = svc.Reject(request.ID, instructor.ID, "too late")
	requireKind(t, err, KindInvalidState)
}

func TestRejectSetsReason(t *testing.T) {
	svc, student, instructor, _ := bookingFixture(t)

	request, err := svc.Create(student.ID, validInput(instructor.ID))
	require.NoError(t, err)

	rejected, err := svc.Reject(request.ID, instructor.ID, "fully booked that day")
	require.NoError(t, err)
	require.Equal(t, models.LessonRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	require.Equal(t, "fully booked that day", *rejected.RejectionReason)

	// Rejected is terminal.
	_, err = svc.Accept(request.ID, instructor.ID)
	requireKind(t, err, KindInvalidState)
	_, err = svc.Cancel(request.ID, student.ID)
	requireKind(t, err, KindInvalidState)
}

func TestCancelOwnershipAndStates(t *testing.T) {
	svc, student, instructor, _ := bookingFixture(t)

	request, err := svc.Create(student.ID, validInput(instructor.ID))
	require.NoError(t, err)

	// A non-owning caller is forbidden regardless of status.
	_, err = svc.Cancel(request.ID, uuid.New())
	requireKind(t, err, KindForbidden)

	// Student books, instructor accepts, student cancels: cancel is legal
	// from accepted, so it must succeed.
	_, err = svc.Accept(request.ID, instructor.ID)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(request.ID, student.ID)
	require.NoError(t, err)
	require.Equal(t, models.LessonCancelled, cancelled.Status)

	// Cancelled is terminal.
	_, err = svc.Cancel(request.ID, student.ID)
	requireKind(t, err, KindInvalidState)
	_, err = svc.Accept(request.ID, instructor.ID)
	requireKind(t, err, KindInvalidState)
}

func TestConcurrentAcceptRejectExactlyOneWins(t *testing.T) {
	svc, student, instructor, _ := bookingFixture(t)

	request, err := svc.Create(student.ID, validInput(instructor.ID))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var acceptErr, rejectErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, acceptErr = svc.Accept(request.ID, instructor.ID)
	}()
	go func() {
		defer wg.Done()
		_, rejectErr = svc.Reject(request.ID, instructor.ID, "raced")
	}()
	wg.Wait()

	// Exactly one decision commits; the loser observes InvalidState.
	if acceptErr == nil {
		requireKind(t, rejectErr, KindInvalidState)
	} else {
		requireKind(t, acceptErr, KindInvalidState)
		require.NoError(t, rejectErr)
	}

	final, err := svc.get(request.ID)
	require.NoError(t, err)
	if acceptErr == nil {
		require.Equal(t, models.LessonAccepted, final.Status)
	} else {
		require.Equal(t, models.LessonRejected, final.Status)
	}
}

func TestCompleteLifecycle(t *testing.T) {
	svc, student, instructor, _ := bookingFixture(t)

	request, err := svc.Create(student.ID, validInput(instructor.ID))
	require.NoError(t, err)

	// Pending lessons cannot be completed directly.
	_, err = svc.Complete(request.ID, instructor.ID)
	requireKind(t, err, KindInvalidState)

	_, err = svc.Accept(request.ID, instructor.ID)
	require.NoError(t, err)

	// Still in the future.
	_, err = svc.Complete(request.ID, instructor.ID)
	requireKind(t, err, KindInvalidState)

	// Backdate the lesson so it has ended, then complete it.
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, svc.db.Model(&models.LessonRequest{}).
		Where("id = ?", request.ID).
		Update("scheduled_date", past).Error)

	_, err = svc.Complete(request.ID, uuid.New())
	requireKind(t, err, KindForbidden)

	completed, err := svc.Complete(request.ID, instructor.ID)
	require.NoError(t, err)
	require.Equal(t, models.LessonCompleted, completed.Status)

	// Completed is terminal.
	_, err = svc.Cancel(request.ID, student.ID)
	requireKind(t, err, KindInvalidState)
}

func TestListPendingForInstructorOrdering(t *testing.T) {
	svc, student, instructor, _ := bookingFixture(t)

	later := validInput(instructor.ID)
	later.ScheduledDate = futureDate(72)
	requestLater, err := svc.Create(student.ID, later)
	require.NoError(t, err)

	sooner := validInput(instructor.ID)
	sooner.ScheduledDate = futureDate(24)
	requestSooner, err := svc.Create(student.ID, sooner)
	require.NoError(t, err)

	// Same slot as requestLater but created afterwards: creation order
	// breaks the tie.
	time.Sleep(5 * time.Millisecond)
	tied := validInput(instructor.ID)
	tied.ScheduledDate = later.ScheduledDate
	requestTied, err := svc.Create(student.ID, tied)
	require.NoError(t, err)

	// Decided requests stay off the pending list.
	decided := validInput(instructor.ID)
	decided.ScheduledDate = futureDate(12)
	requestDecided, err := svc.Create(student.ID, decided)
	require.NoError(t, err)
	_, err = svc.Reject(requestDecided.ID, instructor.ID, "unavailable")
	require.NoError(t, err)

	pending, err := svc.ListPendingForInstructor(instructor.ID)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	require.Equal(t, requestSooner.ID, pending[0].ID)
	require.Equal(t, requestLater.ID, pending[1].ID)
	require.Equal(t, requestTied.ID, pending[2].ID)
}
