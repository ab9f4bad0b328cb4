package courseValidator

import (
	examController "lms/controllers/exam"
	quizController "lms/controllers/quiz"
	"lms/middleware"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const maxProofFileSize = 10 * 1024 * 1024

var allowedProofExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".pdf":  true,
}

// ModuleParam validates the :moduleId path parameter
func ModuleParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, err := c.ParamsInt("moduleId")
		if err != nil || moduleID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
		}

		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// LessonParam validates the :lessonId path parameter
func LessonParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, err := c.ParamsInt("lessonId")
		if err != nil || lessonID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
		}

		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

// QuizSubmission validator middleware. Completeness of answers is checked by
// the handler against the served question order, not here.
func QuizSubmission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(quizController.QuizSubmission)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.QuestionOrder) == 0 {
			errors["question_order"] = "Question order is required!"
		}
		if reqData.Answers == nil {
			errors["answers"] = "Answers are required!"
		}
		for _, optionIndex := range reqData.Answers {
			if optionIndex < 0 {
				errors["answers"] = "Answer option index cannot be negative!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuizSubmission", reqData)
		return c.Next()
	}
}

// ExamSubmission validator middleware
func ExamSubmission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(examController.ExamSubmission)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.VersionNumber < 1 {
			errors["version_number"] = "Version number is required!"
		}
		if len(reqData.QuestionOrder) == 0 {
			errors["question_order"] = "Question order is required!"
		}
		if reqData.Answers == nil {
			reqData.Answers = quizController.AnswerSheet{}
		}
		if reqData.TimeRemaining < 0 {
			reqData.TimeRemaining = 0
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExamSubmission", reqData)
		return c.Next()
	}
}

// ProofFile validates the multipart screenshot upload
func ProofFile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("screenshot")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Screenshot file is required!", nil)
		}

		errors := make(map[string]string)

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !allowedProofExtensions[ext] {
			errors["screenshot"] = "File must be an image or PDF!"
		}
		if fileHeader.Size > maxProofFileSize {
			errors["screenshot"] = "File must be smaller than 10MB!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProofFile", fileHeader)
		return c.Next()
	}
}
