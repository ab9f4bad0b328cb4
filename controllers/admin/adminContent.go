package adminController

import (
	"encoding/json"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// CreateModule adds a course module at the given phase and order position
func CreateModule(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	payload := c.Locals("validatedModule").(*struct {
		Title       string `json:"title" validate:"required,min=2"`
		Description string `json:"description"`
		PhaseNumber int    `json:"phase_number" validate:"required,min=1,max=5"`
		OrderIndex  int    `json:"order_index" validate:"min=0"`
	})

	db := database.Database.Db

	module := courseModels.Module{
		Title:       payload.Title,
		Description: payload.Description,
		PhaseNumber: payload.PhaseNumber,
		OrderIndex:  payload.OrderIndex,
	}
	if err := db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	logAdminAction(db, adminID, "module_created", "module", module.ID, map[string]interface{}{
		"title":        module.Title,
		"phase_number": module.PhaseNumber,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// UpdateModule edits title, description, phase or ordering of a module
func UpdateModule(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	moduleID := uint(c.Locals("moduleID").(int))
	payload := c.Locals("validatedModule").(*struct {
		Title       string `json:"title" validate:"required,min=2"`
		Description string `json:"description"`
		PhaseNumber int    `json:"phase_number" validate:"required,min=1,max=5"`
		OrderIndex  int    `json:"order_index" validate:"min=0"`
	})

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	module.Title = payload.Title
	module.Description = payload.Description
	module.PhaseNumber = payload.PhaseNumber
	module.OrderIndex = payload.OrderIndex
	if err := db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	logAdminAction(db, adminID, "module_updated", "module", module.ID, map[string]interface{}{
		"title": module.Title,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule soft-deletes a module so existing progress rows stay intact
func DeleteModule(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	moduleID := uint(c.Locals("moduleID").(int))

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	module.IsDeleted = true
	if err := db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	logAdminAction(db, adminID, "module_deleted", "module", module.ID, map[string]interface{}{
		"title": module.Title,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// CreateLesson adds a lesson under a module
func CreateLesson(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	moduleID := uint(c.Locals("moduleID").(int))
	payload := c.Locals("validatedLesson").(*struct {
		Title       string `json:"title" validate:"required,min=2"`
		Description string `json:"description"`
		Content     string `json:"content"`
		VideoURL    string `json:"video_url"`
		OrderIndex  int    `json:"order_index" validate:"min=0"`
		IsActive    *bool  `json:"is_active"`
	})

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	lesson := courseModels.Lesson{
		ModuleID:    moduleID,
		Title:       payload.Title,
		Description: payload.Description,
		Content:     payload.Content,
		VideoURL:    payload.VideoURL,
		OrderIndex:  payload.OrderIndex,
		IsActive:    true,
	}
	if payload.IsActive != nil {
		lesson.IsActive = *payload.IsActive
	}
	if err := db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	logAdminAction(db, adminID, "lesson_created", "lesson", lesson.ID, map[string]interface{}{
		"module_id": moduleID,
		"title":     lesson.Title,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// UpdateLesson edits a lesson. Toggling is_active off removes the lesson
// from the ordered progression walk without losing completion history.
func UpdateLesson(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	lessonID := uint(c.Locals("lessonID").(int))
	payload := c.Locals("validatedLesson").(*struct {
		Title       string `json:"title" validate:"required,min=2"`
		Description string `json:"description"`
		Content     string `json:"content"`
		VideoURL    string `json:"video_url"`
		OrderIndex  int    `json:"order_index" validate:"min=0"`
		IsActive    *bool  `json:"is_active"`
	})

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.Title = payload.Title
	lesson.Description = payload.Description
	lesson.Content = payload.Content
	lesson.VideoURL = payload.VideoURL
	lesson.OrderIndex = payload.OrderIndex
	if payload.IsActive != nil {
		lesson.IsActive = *payload.IsActive
	}
	if err := db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	logAdminAction(db, adminID, "lesson_updated", "lesson", lesson.ID, map[string]interface{}{
		"title":     lesson.Title,
		"is_active": lesson.IsActive,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson soft-deletes a lesson
func DeleteLesson(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	lessonID := uint(c.Locals("lessonID").(int))

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsDeleted = true
	if err := db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	logAdminAction(db, adminID, "lesson_deleted", "lesson", lesson.ID, map[string]interface{}{
		"title": lesson.Title,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// UpsertModuleQuiz creates or replaces the quiz for a module, questions included
func UpsertModuleQuiz(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	moduleID := uint(c.Locals("moduleID").(int))
	payload := c.Locals("validatedQuiz").(*struct {
		Title        string `json:"title" validate:"required,min=2"`
		PassingScore int    `json:"passing_score" validate:"required,min=1,max=100"`
		Questions    []struct {
			QuestionText  string   `json:"question_text" validate:"required"`
			Options       []string `json:"options" validate:"required,min=2"`
			CorrectAnswer int      `json:"correct_answer" validate:"min=0"`
		} `json:"questions" validate:"required,min=1,dive"`
	})

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	for _, question := range payload.Questions {
		if question.CorrectAnswer >= len(question.Options) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Correct answer index is out of range!", nil)
		}
	}

	var quiz courseModels.Quiz
	err := db.Where("module_id = ?", moduleID).First(&quiz).Error
	if err != nil {
		quiz = courseModels.Quiz{ModuleID: moduleID}
	}
	quiz.Title = payload.Title
	quiz.PassingScore = payload.PassingScore
	if err := db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz!", nil)
	}

	if err := db.Where("quiz_id = ?", quiz.ID).Delete(&courseModels.QuizQuestion{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz questions!", nil)
	}
	for index, question := range payload.Questions {
		optionsJSON, _ := json.Marshal(question.Options)
		row := courseModels.QuizQuestion{
			QuizID:        quiz.ID,
			QuestionText:  question.QuestionText,
			Options:       optionsJSON,
			CorrectAnswer: question.CorrectAnswer,
			OrderIndex:    index,
		}
		if err := db.Create(&row).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz questions!", nil)
		}
	}

	logAdminAction(db, adminID, "quiz_saved", "quiz", quiz.ID, map[string]interface{}{
		"module_id":      moduleID,
		"question_count": len(payload.Questions),
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz saved successfully!", quiz)
}

// UpsertLessonQuiz creates or replaces the short knowledge check for a lesson
func UpsertLessonQuiz(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	lessonID := uint(c.Locals("lessonID").(int))
	payload := c.Locals("validatedQuiz").(*struct {
		Title        string `json:"title" validate:"required,min=2"`
		PassingScore int    `json:"passing_score" validate:"required,min=1,max=100"`
		Questions    []struct {
			QuestionText  string   `json:"question_text" validate:"required"`
			Options       []string `json:"options" validate:"required,min=2"`
			CorrectAnswer int      `json:"correct_answer" validate:"min=0"`
		} `json:"questions" validate:"required,min=1,dive"`
	})

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	for _, question := range payload.Questions {
		if question.CorrectAnswer >= len(question.Options) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Correct answer index is out of range!", nil)
		}
	}

	var quiz courseModels.LessonQuiz
	err := db.Where("lesson_id = ?", lessonID).First(&quiz).Error
	if err != nil {
		quiz = courseModels.LessonQuiz{LessonID: lessonID}
	}
	quiz.Title = payload.Title
	quiz.PassingScore = payload.PassingScore
	if err := db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz!", nil)
	}

	if err := db.Where("lesson_quiz_id = ?", quiz.ID).Delete(&courseModels.LessonQuizQuestion{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz questions!", nil)
	}
	for index, question := range payload.Questions {
		optionsJSON, _ := json.Marshal(question.Options)
		row := courseModels.LessonQuizQuestion{
			LessonQuizID:  quiz.ID,
			QuestionText:  question.QuestionText,
			Options:       optionsJSON,
			CorrectAnswer: question.CorrectAnswer,
			OrderIndex:    index,
		}
		if err := db.Create(&row).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz questions!", nil)
		}
	}

	logAdminAction(db, adminID, "lesson_quiz_saved", "lesson_quiz", quiz.ID, map[string]interface{}{
		"lesson_id":      lessonID,
		"question_count": len(payload.Questions),
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz saved successfully!", quiz)
}
