package certificateController

import (
	"fmt"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetCertificate returns the user's completion certificate if one was issued
func GetCertificate(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	var cert courseModels.Certificate
	err := db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&cert).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate not issued yet!", fiber.Map{
			"issued": false,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", fiber.Map{
		"issued":      true,
		"certificate": cert,
	})
}

// IssueCertificate issues the completion certificate once every module is
// completed. Repeated calls return the existing certificate.
func IssueCertificate(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	var existing courseModels.Certificate
	err := db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&existing).Error
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", existing)
	}

	var totalModules int64
	db.Model(&courseModels.Module{}).Where("is_deleted = ?", false).Count(&totalModules)
	if totalModules == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course content is not available yet!", nil)
	}

	var completedModules int64
	db.Model(&courseModels.UserProgress{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&completedModules)

	if completedModules < totalModules {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Complete all modules to receive your certificate!", fiber.Map{
			"completed_modules": completedModules,
			"total_modules":     totalModules,
		})
	}

	certNumber := fmt.Sprintf("MM-%d-%s", time.Now().Year(),
		strings.ToUpper(strings.ReplaceAll(uuid.New().String()[:13], "-", "")))

	cert := courseModels.Certificate{
		UserID:            userID,
		CertificateNumber: certNumber,
		IssuedAt:          time.Now(),
	}
	if err := db.Create(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", cert)
}
