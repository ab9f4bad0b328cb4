package progressController

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RecordCompletion inserts a lesson completion for the user. The unique
// (user, lesson) index makes concurrent duplicates benign: a duplicate-key
// failure is reported as alreadyCompleted, any other failure is returned.
func RecordCompletion(db *gorm.DB, userID, lessonID uint) (alreadyCompleted bool, err error) {
	completion := courseModels.LessonCompletion{
		UserID:   userID,
		LessonID: lessonID,
	}

	if err := db.Create(&completion).Error; err != nil {
		if isDuplicateKeyError(err) {
			return true, nil
		}
		return false, err
	}

	return false, nil
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Driver-specific unique violation messages (postgres 23505, sqlite)
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// CheckModuleLessonsComplete reports whether every active lesson of the module
// has a completion for the user. Modules with no active lessons are never complete.
func CheckModuleLessonsComplete(db *gorm.DB, userID, moduleID uint) (bool, error) {
	var moduleLessons []courseModels.Lesson
	if err := db.Where("module_id = ? AND is_active = ? AND is_deleted = ?", moduleID, true, false).
		Find(&moduleLessons).Error; err != nil {
		return false, err
	}

	if len(moduleLessons) == 0 {
		return false, nil
	}

	lessonIDs := make([]uint, len(moduleLessons))
	for i, l := range moduleLessons {
		lessonIDs[i] = l.ID
	}

	var completedCount int64
	if err := db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Count(&completedCount).Error; err != nil {
		return false, err
	}

	return completedCount == int64(len(moduleLessons)), nil
}

// MarkLessonComplete records a lesson completion and returns the refreshed aggregate.
// Idempotent: completing an already-completed lesson is a no-op success.
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := uint(c.Locals("lessonID").(int))
	moduleID := uint(c.Locals("moduleID").(int))

	db := database.Database.Db

	state, err := BuildProgress(db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	current, found := state.Lessons[lessonID]
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if current.Completed {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson already completed!", fiber.Map{
			"progress":        state,
			"module_complete": false,
		})
	}

	if _, err := RecordCompletion(db, userID, lessonID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
	}

	// A failed module check is tolerated; the next aggregation self-heals
	moduleComplete, err := CheckModuleLessonsComplete(db, userID, moduleID)
	if err != nil {
		moduleComplete = false
	}

	refreshed, err := BuildProgress(db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to refresh progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as complete!", fiber.Map{
		"progress":        refreshed,
		"module_complete": moduleComplete,
	})
}
