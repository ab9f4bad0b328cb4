package quizController

import (
	"encoding/json"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"math/rand"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ServedOption carries the canonical option index alongside the display text,
// so a shuffled rendering still submits stable identities
type ServedOption struct {
	OptionIndex int    `json:"option_index"`
	Text        string `json:"text"`
}

// ServedQuestion is one question as delivered to the client, shuffled for display
type ServedQuestion struct {
	ID           uint           `json:"id"`
	QuestionText string         `json:"question_text"`
	Options      []ServedOption `json:"options"`
}

// shuffleForDisplay randomizes question order and per-question option order
func shuffleForDisplay(questions []ServedQuestion, rng *rand.Rand) {
	rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	for _, q := range questions {
		rng.Shuffle(len(q.Options), func(i, j int) {
			q.Options[i], q.Options[j] = q.Options[j], q.Options[i]
		})
	}
}

// GetModuleQuiz serves the quiz for a module with shuffled questions and options
func GetModuleQuiz(c *fiber.Ctx) error {
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

	var quiz courseModels.Quiz
	if err := db.Where("module_id = ? AND is_deleted = ?", moduleID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var questions []courseModels.QuizQuestion
	if err := db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	served := make([]ServedQuestion, 0, len(questions))
	for _, q := range questions {
		var optionTexts []string
		if err := json.Unmarshal(q.Options, &optionTexts); err != nil {
			continue
		}
		options := make([]ServedOption, len(optionTexts))
		for i, text := range optionTexts {
			options[i] = ServedOption{OptionIndex: i, Text: text}
		}
		served = append(served, ServedQuestion{ID: q.ID, QuestionText: q.QuestionText, Options: options})
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	shuffleForDisplay(served, rng)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": served,
	})
}

// QuizSubmission is the validated submit payload
type QuizSubmission struct {
	Answers       AnswerSheet `json:"answers"`
	QuestionOrder []uint      `json:"question_order"`
}

// SubmitModuleQuiz evaluates a module quiz submission, records the attempt and,
// on a pass, marks the module completed and unlocks the next ungated module
func SubmitModuleQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	moduleID := c.Locals("moduleID").(int)
	submission := c.Locals("validatedQuizSubmission").(*QuizSubmission)
	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("module_id = ? AND is_deleted = ?", moduleID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var questions []courseModels.QuizQuestion
	if err := db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz has no questions!", nil)
	}

	questionIDs := make([]uint, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	if missing := MissingAnswers(questionIDs, submission.QuestionOrder, submission.Answers); len(missing) > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please answer all questions before submitting!", fiber.Map{
			"unanswered_questions": missing,
		})
	}

	correctByQuestion := make(map[uint]int, len(questions))
	for _, q := range questions {
		correctByQuestion[q.ID] = q.CorrectAnswer
	}

	score, correctCount := ScoreAnswers(correctByQuestion, submission.Answers)
	passed := score >= quiz.PassingScore

	answersJSON, _ := json.Marshal(submission.Answers)
	orderJSON, _ := json.Marshal(submission.QuestionOrder)

	attempt := courseModels.QuizAttempt{
		UserID:        userID,
		QuizID:        quiz.ID,
		Score:         score,
		Passed:        passed,
		Answers:       answersJSON,
		QuestionOrder: orderJSON,
	}

	if err := db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}

	if passed {
		if err := CompleteModuleAndUnlockNext(db, userID, quiz.ModuleID); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module progress!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"attempt":       attempt,
		"score":         score,
		"correct_count": correctCount,
		"passed":        passed,
		"passing_score": quiz.PassingScore,
	})
}

// CompleteModuleAndUnlockNext marks the module completed for the user and
// unlocks the next module in order, unless the next module sits behind the
// exam-proof gate (that unlock is never granted by the quiz cascade).
func CompleteModuleAndUnlockNext(db *gorm.DB, userID, moduleID uint) error {
	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return err
	}

	now := time.Now()
	progress := courseModels.UserProgress{
		UserID:      userID,
		ModuleID:    moduleID,
		IsUnlocked:  true,
		IsCompleted: true,
		UnlockedAt:  &now,
		CompletedAt: &now,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_unlocked", "is_completed", "completed_at", "updated_at"}),
	}).Create(&progress).Error; err != nil {
		return err
	}

	var next courseModels.Module
	err := db.Where("order_index > ? AND is_deleted = ?", module.OrderIndex, false).
		Order("order_index asc").First(&next).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	// The gated phase stays locked until the exam/proof conditions are met
	if next.PhaseNumber == 5 {
		return nil
	}

	nextProgress := courseModels.UserProgress{
		UserID:     userID,
		ModuleID:   next.ID,
		IsUnlocked: true,
		UnlockedAt: &now,
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_unlocked", "unlocked_at", "updated_at"}),
	}).Create(&nextProgress).Error
}

// GetQuizAttempts lists a user's attempts for a module quiz with the derived best score
func GetQuizAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(int)
	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("module_id = ? AND is_deleted = ?", moduleID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var attempts []courseModels.QuizAttempt
	if err := db.Where("user_id = ? AND quiz_id = ?", userID, quiz.ID).
		Order("created_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	bestScore := 0
	for _, a := range attempts {
		if a.Score > bestScore {
			bestScore = a.Score
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts":   attempts,
		"best_score": bestScore,
	})
}
