package database

import (
	"fmt"
	"lms/models"
	"lms/models/course"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	// Build the PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)   // Maximum open connections
	sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0) // No timeout

	// Run database migrations
	runMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	if err := db.AutoMigrate(AllModels()...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// AllModels lists every persisted entity; shared with test fixtures and scripts
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&course.Module{},
		&course.Lesson{},
		&course.LessonCompletion{},
		&course.UserProgress{},
		&course.Quiz{},
		&course.QuizQuestion{},
		&course.QuizAttempt{},
		&course.LessonQuiz{},
		&course.LessonQuizQuestion{},
		&course.LessonQuizAttempt{},
		&course.ExamVersion{},
		&course.ExamQuestion{},
		&course.ExamSimulationAttempt{},
		&course.PhaseUnlock{},
		&course.Entitlement{},
		&course.AdminActionLog{},
		&course.Certificate{},
		&course.Flashcard{},
		&course.StateSyllabus{},
		&course.CourseMaterial{},
		&course.TeacherAnswerKey{},
	}
}
