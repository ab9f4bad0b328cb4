package quizController

import (
	"encoding/json"
	progressController "lms/controllers/progress"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"math/rand"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetLessonQuiz serves the knowledge check for a lesson with shuffled display order
func GetLessonQuiz(c *fiber.Ctx) error {
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

	var quiz courseModels.LessonQuiz
	if err := db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson quiz not found!", nil)
	}

	var questions []courseModels.LessonQuizQuestion
	if err := db.Where("lesson_quiz_id = ? AND is_deleted = ?", quiz.ID, false).
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

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson quiz fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": served,
	})
}

// SubmitLessonQuiz evaluates a knowledge check; a pass records the lesson completion
func SubmitLessonQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)
	submission := c.Locals("validatedQuizSubmission").(*QuizSubmission)
	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_active = ? AND is_deleted = ?", lessonID, true, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var quiz courseModels.LessonQuiz
	if err := db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson quiz not found!", nil)
	}

	var questions []courseModels.LessonQuizQuestion
	if err := db.Where("lesson_quiz_id = ? AND is_deleted = ?", quiz.ID, false).Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson quiz has no questions!", nil)
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

	attempt := courseModels.LessonQuizAttempt{
		UserID:        userID,
		LessonQuizID:  quiz.ID,
		Score:         score,
		Passed:        passed,
		Answers:       answersJSON,
		QuestionOrder: orderJSON,
	}

	if err := db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}

	moduleComplete := false
	if passed {
		if _, err := progressController.RecordCompletion(db, userID, lesson.ID); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
		}
		// The next aggregation self-heals if this check fails
		moduleComplete, _ = progressController.CheckModuleLessonsComplete(db, userID, lesson.ModuleID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"attempt":         attempt,
		"score":           score,
		"correct_count":   correctCount,
		"passed":          passed,
		"passing_score":   quiz.PassingScore,
		"module_complete": moduleComplete,
	})
}
