package adminController

import (
	"encoding/json"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// logAdminAction appends an immutable audit record for an admin-triggered change
func logAdminAction(db *gorm.DB, adminID uint, actionType, targetType string, targetID uint, details map[string]interface{}) {
	detailsJSON, _ := json.Marshal(details)
	entry := courseModels.AdminActionLog{
		AdminUserID: adminID,
		ActionType:  actionType,
		TargetType:  targetType,
		TargetID:    targetID,
		Details:     detailsJSON,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("Error writing admin action log: %v", err)
	}
}

// UnlockModuleForUser upserts the module gate open for a user. Idempotent:
// repeated calls leave exactly one row with is_unlocked true. A soft-deleted
// row still occupies the (user_id, module_id) unique index, so the conflict
// update clears deleted_at to bring it back.
func UnlockModuleForUser(db *gorm.DB, userID, moduleID uint) error {
	now := time.Now()
	progress := courseModels.UserProgress{
		UserID:     userID,
		ModuleID:   moduleID,
		IsUnlocked: true,
		UnlockedAt: &now,
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_unlocked": true,
			"unlocked_at": now,
			"updated_at":  now,
			"deleted_at":  nil,
		}),
	}).Create(&progress).Error
}

// UnlockModule is the admin override for a single module gate
func UnlockModule(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	userID := uint(c.Locals("targetUserID").(int))
	moduleID := uint(c.Locals("moduleID").(int))

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if err := UnlockModuleForUser(db, userID, moduleID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unlock module!", nil)
	}

	logAdminAction(db, adminID, "module_unlocked", "student", userID, map[string]interface{}{
		"module_id":    moduleID,
		"phase_number": module.PhaseNumber,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module unlocked successfully!", nil)
}

// UnlockAllModules fans the unlock upsert out over every module for a user
func UnlockAllModules(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	userID := uint(c.Locals("targetUserID").(int))

	db := database.Database.Db

	var modules []courseModels.Module
	if err := db.Where("is_deleted = ?", false).Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	for _, module := range modules {
		if err := UnlockModuleForUser(db, userID, module.ID); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unlock modules!", nil)
		}
	}

	logAdminAction(db, adminID, "all_modules_unlocked", "student", userID, map[string]interface{}{
		"module_count": len(modules),
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All modules unlocked successfully!", nil)
}

// ResetUserProgress removes every progression row for the user and re-seeds
// a single unlocked UserProgress row for the first module. Deletes are
// Unscoped: soft-deleted rows would keep holding the (user_id, module_id)
// and (user_id, lesson_id) unique indexes, blocking the re-seed and every
// later lesson completion.
func ResetUserProgress(db *gorm.DB, userID uint) error {
	if err := db.Unscoped().Where("user_id = ?", userID).Delete(&courseModels.UserProgress{}).Error; err != nil {
		return err
	}
	if err := db.Unscoped().Where("user_id = ?", userID).Delete(&courseModels.LessonCompletion{}).Error; err != nil {
		return err
	}
	if err := db.Unscoped().Where("user_id = ?", userID).Delete(&courseModels.QuizAttempt{}).Error; err != nil {
		return err
	}
	if err := db.Unscoped().Where("user_id = ?", userID).Delete(&courseModels.LessonQuizAttempt{}).Error; err != nil {
		return err
	}

	var firstModule courseModels.Module
	err := db.Where("is_deleted = ?", false).Order("order_index asc").First(&firstModule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	now := time.Now()
	seed := courseModels.UserProgress{
		UserID:     userID,
		ModuleID:   firstModule.ID,
		IsUnlocked: true,
		UnlockedAt: &now,
	}
	return db.Create(&seed).Error
}

// ResetProgress is the admin reset for one student
func ResetProgress(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	userID := uint(c.Locals("targetUserID").(int))

	db := database.Database.Db

	if err := ResetUserProgress(db, userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset progress!", nil)
	}

	logAdminAction(db, adminID, "student_progress_reset", "student", userID, map[string]interface{}{})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress reset successfully!", nil)
}
