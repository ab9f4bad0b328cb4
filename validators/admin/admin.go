package adminValidator

import (
	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

// TargetUserParam validates the :userId path parameter for student-scoped actions
func TargetUserParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := c.ParamsInt("userId")
		if err != nil || userID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
		}

		c.Locals("targetUserID", userID)
		return c.Next()
	}
}

// ModuleBody validator middleware for module create/update
func ModuleBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=2"`
			Description string `json:"description"`
			PhaseNumber int    `json:"phase_number" validate:"required,min=1,max=5"`
			OrderIndex  int    `json:"order_index" validate:"min=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Validate(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// LessonBody validator middleware for lesson create/update
func LessonBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=2"`
			Description string `json:"description"`
			Content     string `json:"content"`
			VideoURL    string `json:"video_url"`
			OrderIndex  int    `json:"order_index" validate:"min=0"`
			IsActive    *bool  `json:"is_active"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Validate(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// QuizBody validator middleware for quiz upserts, module and lesson alike
func QuizBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title" validate:"required,min=2"`
			PassingScore int    `json:"passing_score" validate:"required,min=1,max=100"`
			Questions    []struct {
				QuestionText  string   `json:"question_text" validate:"required"`
				Options       []string `json:"options" validate:"required,min=2"`
				CorrectAnswer int      `json:"correct_answer" validate:"min=0"`
			} `json:"questions" validate:"required,min=1,dive"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Validate(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// ProofReview validator middleware
func ProofReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ProofID         uint   `json:"proof_id" validate:"required"`
			Approve         *bool  `json:"approve" validate:"required"`
			RejectionReason string `json:"rejection_reason"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Validate(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProofReview", reqData)
		return c.Next()
	}
}

// BlockBody validator middleware for block/unblock toggles
func BlockBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Blocked *bool `json:"blocked" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Validate(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBlock", reqData)
		return c.Next()
	}
}

// FlashcardBody validator middleware
func FlashcardBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleID   *uint  `json:"module_id"`
			FrontText  string `json:"front_text" validate:"required"`
			BackText   string `json:"back_text" validate:"required"`
			Category   string `json:"category"`
			OrderIndex int    `json:"order_index" validate:"min=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Validate(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFlashcard", reqData)
		return c.Next()
	}
}

// MaterialBody validator middleware
func MaterialBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleID *uint  `json:"module_id"`
			Title    string `json:"title" validate:"required,min=2"`
			FileURL  string `json:"file_url" validate:"required,url"`
			FileType string `json:"file_type"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Validate(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMaterial", reqData)
		return c.Next()
	}
}
