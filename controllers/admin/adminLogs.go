package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// ListActionLogs returns the admin audit trail, newest first
func ListActionLogs(c *fiber.Ctx) error {
	db := database.Database.Db

	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 500 {
		limit = 100
	}

	var logs []courseModels.AdminActionLog
	err := db.Order("created_at desc").Limit(limit).Find(&logs).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch action logs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Action logs fetched successfully!", logs)
}

// SetStudentBlocked toggles login access for a student account
func SetStudentBlocked(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	userID := uint(c.Locals("targetUserID").(int))
	payload := c.Locals("validatedBlock").(*struct {
		Blocked *bool `json:"blocked" validate:"required"`
	})

	db := database.Database.Db

	var student models.User
	err := db.Where("id = ? AND role = ? AND is_deleted = ?", userID, "STUDENT", false).First(&student).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	student.IsBlocked = *payload.Blocked
	if student.IsBlocked {
		student.FailedLoginAttempts = 0
	}
	if err := db.Save(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update student!", nil)
	}

	actionType := "student_unblocked"
	if student.IsBlocked {
		actionType = "student_blocked"
	}
	logAdminAction(db, adminID, actionType, "student", student.ID, map[string]interface{}{})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student updated successfully!", nil)
}
