package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/brianodhiambo/driving_school/database"
	"github.com/brianodhiambo/driving_school/models"
	"github.com/brianodhiambo/driving_school/notifications"
)

// SendLessonReminders emails both parties of every accepted lesson
// starting in roughly one hour. Runs every five minutes; the window is
// five minutes wide so each lesson is picked up once.
func SendLessonReminders() {
	log.Println("Running job: SendLessonReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcoming []models.LessonRequest
	err := database.DB.
		Preload("Student").
		Preload("Instructor").
		Where("status = ? AND scheduled_date BETWEEN ? AND ?", models.LessonAccepted, lowerBound, upperBound).
		Find(&upcoming).Error
	if err != nil {
		log.Printf("Error checking for upcoming lessons: %v", err)
		return
	}

	for _, lesson := range upcoming {
		emailSubject := "Reminder: Your Lesson Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Lesson Reminder</h1><p>This is a friendly reminder that your %s lesson is scheduled to start at %s.</p>",
			lesson.LessonType,
			lesson.ScheduledDate.Format(time.Kitchen),
		)

		go notifications.SendEmail(lesson.Student.FullName, lesson.Student.Email, emailSubject, emailBody)
		go notifications.SendEmail(lesson.Instructor.FullName, lesson.Instructor.Email, emailSubject, emailBody)
	}
}
