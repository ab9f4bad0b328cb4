package controllers

import (
	"fmt"
	progressController "lms/controllers/progress"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ModuleWithState is a module plus the caller's gate state and lock reason
type ModuleWithState struct {
	courseModels.Module
	IsUnlocked  bool   `json:"is_unlocked"`
	IsCompleted bool   `json:"is_completed"`
	LockReason  string `json:"lock_reason,omitempty"`
}

// GetModules lists all modules with the caller's per-module unlock state
func GetModules(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db

	var modules []courseModels.Module
	if err := db.Where("is_deleted = ?", false).Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	var progressRows []courseModels.UserProgress
	if err := db.Where("user_id = ?", userID).Find(&progressRows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	progressByModule := make(map[uint]courseModels.UserProgress, len(progressRows))
	for _, p := range progressRows {
		progressByModule[p.ModuleID] = p
	}

	result := make([]ModuleWithState, len(modules))
	for i, mod := range modules {
		row, hasRow := progressByModule[mod.ID]
		state := ModuleWithState{Module: mod}
		if hasRow {
			state.IsUnlocked = row.IsUnlocked
			state.IsCompleted = row.IsCompleted
		}
		if !state.IsUnlocked {
			state.LockReason = lockReason(db, userID, mod)
		}
		result[i] = state
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", result)
}

// lockReason explains which gating rule is currently unsatisfied for a locked module
func lockReason(db *gorm.DB, userID uint, mod courseModels.Module) string {
	if mod.PhaseNumber != progressController.ProofGatePhase {
		return "Complete the previous phase to unlock this phase."
	}

	var passedExamCount int64
	db.Model(&courseModels.ExamSimulationAttempt{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Count(&passedExamCount)

	var unlock courseModels.PhaseUnlock
	err := db.Where("user_id = ? AND phase_number = ?", userID, progressController.ProofGatePhase).First(&unlock).Error

	if err != nil || unlock.UploadedAt == nil {
		return fmt.Sprintf("Complete Phase %d exam and upload your proof to unlock this phase.", mod.PhaseNumber-1)
	}

	if unlock.Status == "REJECTED" {
		return fmt.Sprintf("Your exam proof was rejected: %s. Please upload a new proof.", unlock.RejectionReason)
	}

	if unlock.Status == "PENDING" {
		return "Your exam proof is under review. You will be notified once it is approved."
	}

	if passedExamCount == 0 {
		return "Pass the exam simulation to unlock this phase."
	}

	return "Complete the previous phase to unlock this phase."
}

// GetModuleDetail returns one module with its active lessons and the caller's lesson states
func GetModuleDetail(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	moduleID := c.Locals("moduleID").(int)
	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var lessons []courseModels.Lesson
	if err := db.Where("module_id = ? AND is_active = ? AND is_deleted = ?", moduleID, true, false).
		Order("order_index asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	state, err := progressController.BuildProgress(db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	type lessonWithState struct {
		courseModels.Lesson
		Completed bool `json:"completed"`
		Unlocked  bool `json:"unlocked"`
	}

	lessonStates := make([]lessonWithState, len(lessons))
	for i, lesson := range lessons {
		ls := state.Lessons[lesson.ID]
		lessonStates[i] = lessonWithState{Lesson: lesson, Completed: ls.Completed, Unlocked: ls.Unlocked}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully!", fiber.Map{
		"module":  module,
		"lessons": lessonStates,
	})
}

// GetLessonDetail returns one lesson; locked lessons are refused with a reason
func GetLessonDetail(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)
	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_active = ? AND is_deleted = ?", lessonID, true, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	state, err := progressController.BuildProgress(db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	ls, found := state.Lessons[lesson.ID]
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if !ls.Unlocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the previous lesson to unlock this one!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson":    lesson,
		"completed": ls.Completed,
	})
}
