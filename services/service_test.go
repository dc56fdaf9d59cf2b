package services

import (
	"testing"
	"time"

	"github.com/brianodhiambo/driving_school/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database shared and makes
	// concurrent writes serialize instead of failing with SQLITE_BUSY.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.School{},
		&models.Instructor{},
		&models.MembershipRequest{},
		&models.LessonRequest{},
		&models.Rating{},
		&models.Notification{},
		&models.Conversation{},
		&models.Message{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role, email string) models.User {
	t.Helper()
	user := models.User{
		FullName: "Test " + role,
		Email:    email,
		Password: "hashed",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedSchool(t *testing.T, db *gorm.DB, adminEmail string) (models.School, models.User) {
	t.Helper()
	admin := seedUser(t, db, models.RoleAdmin, adminEmail)
	school := models.School{
		Name:    "Test Driving School",
		Address: "1 Test Lane",
		Status:  models.SchoolStatusActive,
		AdminID: admin.ID,
	}
	require.NoError(t, db.Create(&school).Error)
	return school, admin
}

func seedInstructor(t *testing.T, db *gorm.DB, school models.School, email string) models.User {
	t.Helper()
	user := seedUser(t, db, models.RoleInstructor, email)
	instructor := models.Instructor{UserID: user.ID, SchoolID: &school.ID}
	require.NoError(t, db.Create(&instructor).Error)
	return user
}

func approveStudent(t *testing.T, db *gorm.DB, student models.User, school models.School) {
	t.Helper()
	membership := models.MembershipRequest{
		StudentID:    student.ID,
		SchoolID:     school.ID,
		Status:       models.MembershipApproved,
		StudentName:  student.FullName,
		StudentEmail: student.Email,
	}
	require.NoError(t, db.Create(&membership).Error)
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	werr, ok := err.(*Error)
	require.True(t, ok, "expected workflow error, got %T: %v", err, err)
	require.Equal(t, kind, werr.Kind)
}

func futureDate(hours int) time.Time {
	return time.Now().Add(time.Duration(hours) * time.Hour).Truncate(time.Second)
}
