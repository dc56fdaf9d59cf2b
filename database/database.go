package database

import (
	"fmt"
	"log"

	config "github.com/brianodhiambo/driving_school/configs"
	"github.com/brianodhiambo/driving_school/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.School{},
		&models.Instructor{},
		&models.MembershipRequest{},
		&models.LessonRequest{},
		&models.Rating{},
		&models.Notification{},
		&models.Conversation{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedSchools creates a few starter schools owned by the seeded admin so a
// fresh install has something for students to join.
func SeedSchools() {
	var count int64
	if err := DB.Model(&models.School{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for schools: %v", err)
		return
	}
	if count > 0 {
		return
	}

	var admin models.User
	if err := DB.Where("role = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		log.Println("⚠️ No admin user found, skipping school seed")
		return
	}

	describe := func(s string) *string { return &s }
	schools := []models.School{
		{
			Name:        "DriveRight Academy",
			Address:     "123 Main Street, New York, NY 10001",
			Phone:       "+1-555-0101",
			Email:       "info@driveright.com",
			Description: describe("Premier driving school with experienced instructors"),
			Services:    describe("Manual Transmission, Automatic Transmission, Defensive Driving"),
			Status:      models.SchoolStatusActive,
			AdminID:     admin.ID,
		},
		{
			Name:        "SafeDrive Institute",
			Address:     "456 Oak Avenue, Los Angeles, CA 90210",
			Phone:       "+1-555-0202",
			Email:       "contact@safedrive.com",
			Description: describe("Safety-focused driving education since 2010"),
			Services:    describe("Beginner Lessons, Advanced Driving, Highway Training"),
			Status:      models.SchoolStatusActive,
			AdminID:     admin.ID,
		},
		{
			Name:        "City Driving School",
			Address:     "789 Pine Road, Chicago, IL 60601",
			Phone:       "+1-555-0303",
			Email:       "admin@citydriving.com",
			Description: describe("Urban driving specialists"),
			Services:    describe("City Driving, Parallel Parking, Night Driving"),
			Status:      models.SchoolStatusActive,
			AdminID:     admin.ID,
		},
	}

	if err := DB.Create(&schools).Error; err != nil {
		log.Fatalf("🔥 Failed to seed schools: %v", err)
		return
	}
	log.Printf("✅ Seeded %d schools", len(schools))
}
