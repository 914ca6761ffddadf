package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
)

// ConnectPostgres opens the primary database. Driver errors are translated
// so unique-constraint violations surface as gorm.ErrDuplicatedKey; student
// registration relies on that to detect a reused appointment.
func ConnectPostgres(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database url is not configured")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return db, nil
}

// Migrate applies the schema for every persisted aggregate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Submission{},
		&models.Appointment{},
		&models.TimeSlot{},
		&models.InterviewEvaluation{},
		&models.Student{},
		&models.Assignment{},
		&models.AssignmentSubmission{},
		&models.Payment{},
		&models.Notice{},
		&models.Team{},
		&models.TeamMembership{},
		&models.TeamNotice{},
		&models.PrayerSlot{},
		&models.AttendanceSession{},
		&models.AttendanceRecord{},
		&models.SessionNote{},
		&models.Setting{},
		&models.Resource{},
	)
}
