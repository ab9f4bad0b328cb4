package contentController

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetFlashcards returns flashcards, optionally filtered by module
func GetFlashcards(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("is_deleted = ?", false).Order("order_index asc")
	if moduleID := c.QueryInt("module_id", 0); moduleID > 0 {
		query = query.Where("module_id = ?", moduleID)
	}

	var cards []courseModels.Flashcard
	if err := query.Find(&cards).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch flashcards!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Flashcards fetched successfully!", cards)
}

// GetStateSyllabus returns licensing syllabus entries, optionally by state
func GetStateSyllabus(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("is_deleted = ?", false).Order("state_name asc, order_index asc")
	if state := c.Query("state"); state != "" {
		query = query.Where("state_name = ?", state)
	}

	var entries []courseModels.StateSyllabus
	if err := query.Find(&entries).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch syllabus!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Syllabus fetched successfully!", entries)
}

// GetCourseMaterials returns downloadable study material links
func GetCourseMaterials(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("is_deleted = ?", false).Order("created_at asc")
	if moduleID := c.QueryInt("module_id", 0); moduleID > 0 {
		query = query.Where("module_id = ?", moduleID)
	}

	var materials []courseModels.CourseMaterial
	if err := query.Find(&materials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully!", materials)
}

// GetTeacherAnswerKeys returns instructor answer-key documents; admin only
func GetTeacherAnswerKeys(c *fiber.Ctx) error {
	db := database.Database.Db

	var keys []courseModels.TeacherAnswerKey
	err := db.Where("is_deleted = ?", false).Order("created_at desc").Find(&keys).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch answer keys!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer keys fetched successfully!", keys)
}

// CreateFlashcard adds a flashcard; admin only
func CreateFlashcard(c *fiber.Ctx) error {
	payload := c.Locals("validatedFlashcard").(*struct {
		ModuleID   *uint  `json:"module_id"`
		FrontText  string `json:"front_text" validate:"required"`
		BackText   string `json:"back_text" validate:"required"`
		Category   string `json:"category"`
		OrderIndex int    `json:"order_index" validate:"min=0"`
	})

	db := database.Database.Db

	if payload.ModuleID != nil {
		var module courseModels.Module
		if err := db.Where("id = ? AND is_deleted = ?", *payload.ModuleID, false).First(&module).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
	}

	card := courseModels.Flashcard{
		ModuleID:   payload.ModuleID,
		FrontText:  payload.FrontText,
		BackText:   payload.BackText,
		Category:   payload.Category,
		OrderIndex: payload.OrderIndex,
	}
	if err := db.Create(&card).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create flashcard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Flashcard created successfully!", card)
}

// CreateCourseMaterial adds a study material link; admin only
func CreateCourseMaterial(c *fiber.Ctx) error {
	payload := c.Locals("validatedMaterial").(*struct {
		ModuleID *uint  `json:"module_id"`
		Title    string `json:"title" validate:"required,min=2"`
		FileURL  string `json:"file_url" validate:"required,url"`
		FileType string `json:"file_type"`
	})

	db := database.Database.Db

	if payload.ModuleID != nil {
		var module courseModels.Module
		if err := db.Where("id = ? AND is_deleted = ?", *payload.ModuleID, false).First(&module).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
	}

	material := courseModels.CourseMaterial{
		ModuleID: payload.ModuleID,
		Title:    payload.Title,
		FileURL:  payload.FileURL,
		FileType: payload.FileType,
	}
	if err := db.Create(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Material created successfully!", material)
}
