package uploadController

import (
	progressController "lms/controllers/progress"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UploadProof stores a student's exam proof for the gated phase. A re-upload
// replaces the stored file and resets the review status to PENDING.
func UploadProof(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db
	phaseNumber := progressController.ProofGatePhase

	// The previous phase must be completed before a proof can be submitted
	var prevModule courseModels.Module
	if err := db.Where("phase_number = ? AND is_deleted = ?", phaseNumber-1, false).First(&prevModule).Error; err == nil {
		var prevProgress courseModels.UserProgress
		err := db.Where("user_id = ? AND module_id = ?", userID, prevModule.ID).First(&prevProgress).Error
		if err != nil || !prevProgress.IsCompleted {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false,
				"Complete the previous phase before uploading your exam proof!", nil)
		}
	}

	fileHeader := c.Locals("validatedProofFile").(*multipart.FileHeader)

	// Replace any previously stored file
	var existing courseModels.PhaseUnlock
	if err := db.Where("user_id = ? AND phase_number = ?", userID, phaseNumber).First(&existing).Error; err == nil {
		if existing.ScreenshotURL != "" {
			storedPath := storedPathFromURL(existing.ScreenshotURL)
			if err := utils.RemoveStoredFile(storedPath); err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to replace previous proof!", nil)
			}
		}
	}

	savedPath, err := utils.SaveUploadedFile(fileHeader, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded file!", nil)
	}

	now := time.Now()
	unlock := courseModels.PhaseUnlock{
		UserID:          userID,
		PhaseNumber:     phaseNumber,
		ScreenshotURL:   utils.GetFileURL(savedPath),
		UploadedAt:      &now,
		Status:          "PENDING",
		RejectionReason: "",
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "phase_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"screenshot_url", "uploaded_at", "status", "rejection_reason", "updated_at"}),
	}).Create(&unlock).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save proof record!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true,
		"Proof uploaded successfully! The phase will unlock once the exam is passed and the proof is on file.", unlock)
}

// storedPathFromURL maps a public upload URL back to its on-disk path
func storedPathFromURL(url string) string {
	idx := strings.LastIndex(url, "/uploads/")
	if idx < 0 {
		return ""
	}
	return config.AppConfig.UploadDir + "/" + url[idx+len("/uploads/"):]
}

// GetProofStatus returns the user's proof upload and review state
func GetProofStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var unlock courseModels.PhaseUnlock
	err := database.Database.Db.
		Where("user_id = ? AND phase_number = ?", userID, progressController.ProofGatePhase).
		First(&unlock).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "No proof uploaded yet.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch proof status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Proof status fetched successfully!", unlock)
}
