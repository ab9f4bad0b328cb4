package middleware

import (
	"lms/database"
	"lms/models"
	"lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminOnly checks the stored role of the authenticated user; fails closed
func AdminOnly(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Unauthorized: User ID not found",
			"data":    nil,
		})
	}

	var user models.User
	err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  false,
				"message": "You do not have permission to access this resource!",
				"data":    nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  false,
			"message": "Server error while checking permissions!",
			"data":    nil,
		})
	}

	if user.Role != "ADMIN" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  false,
			"message": "You do not have permission to access this resource!",
			"data":    nil,
		})
	}

	return c.Next()
}

// RequireEntitlement gates paid content; unpaid users get an enrollment prompt, not an error
func RequireEntitlement(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Unauthorized: User ID not found",
			"data":    nil,
		})
	}

	// Admins bypass the payment gate
	if role, _ := c.Locals("userRole").(string); role == "ADMIN" {
		return c.Next()
	}

	var entitlement course.Entitlement
	err := database.Database.Db.Where("user_id = ?", userID).First(&entitlement).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return JsonResponse(c, fiber.StatusPaymentRequired, false, "Enroll to access the course content.", fiber.Map{
				"enrollment_required": true,
			})
		}
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking access!", nil)
	}

	if !entitlement.HasActiveAccess {
		return JsonResponse(c, fiber.StatusPaymentRequired, false, "Enroll to access the course content.", fiber.Map{
			"enrollment_required": true,
		})
	}

	return c.Next()
}
