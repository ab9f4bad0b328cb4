package examController

import (
	"encoding/json"
	quizController "lms/controllers/quiz"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"math/rand"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	// ExamPassingScore is the fixed pass threshold for every exam simulation
	ExamPassingScore = 87
	// ExamDurationSeconds is the countdown the client starts from (90 minutes)
	ExamDurationSeconds = 90 * 60
)

// retryVersionPool holds the versions assigned after a failed attempt
var retryVersionPool = []int{2, 3, 4, 5}

// PickNextVersion selects the exam version for the next attempt. First-time
// takers and users whose last attempt passed get version 1; after a failure
// the next version is drawn randomly from the retry pool minus the version
// that was just failed.
func PickNextVersion(lastVersion int, lastFailed bool, rng *rand.Rand) int {
	if !lastFailed {
		return 1
	}

	pool := make([]int, 0, len(retryVersionPool))
	for _, v := range retryVersionPool {
		if v != lastVersion {
			pool = append(pool, v)
		}
	}

	return pool[rng.Intn(len(pool))]
}

// StartExamSimulation assigns an exam version and serves its question bank
// with shuffled display order. Correct answers are never sent to the client.
func StartExamSimulation(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db

	lastVersion := 0
	lastFailed := false
	var lastAttempt courseModels.ExamSimulationAttempt
	err := db.Where("user_id = ?", userID).Order("created_at desc").First(&lastAttempt).Error
	if err == nil {
		lastVersion = lastAttempt.VersionNumber
		lastFailed = !lastAttempt.Passed
	} else if err != gorm.ErrRecordNotFound {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	versionNumber := PickNextVersion(lastVersion, lastFailed, rng)

	var version courseModels.ExamVersion
	if err := db.Where("version_number = ? AND is_deleted = ?", versionNumber, false).First(&version).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam questions are being prepared by admin.", nil)
	}

	var questions []courseModels.ExamQuestion
	if err := db.Where("version_id = ? AND is_deleted = ?", version.ID, false).
		Order("question_number asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam questions are being prepared by admin.", nil)
	}

	served := make([]quizController.ServedQuestion, len(questions))
	for i, q := range questions {
		texts := []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
		options := make([]quizController.ServedOption, len(texts))
		for j, text := range texts {
			options[j] = quizController.ServedOption{OptionIndex: j, Text: text}
		}
		served[i] = quizController.ServedQuestion{ID: q.ID, QuestionText: q.QuestionText, Options: options}
	}

	rng.Shuffle(len(served), func(i, j int) {
		served[i], served[j] = served[j], served[i]
	})
	for _, q := range served {
		rng.Shuffle(len(q.Options), func(i, j int) {
			q.Options[i], q.Options[j] = q.Options[j], q.Options[i]
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam simulation started!", fiber.Map{
		"version_number":   versionNumber,
		"questions":        served,
		"passing_score":    ExamPassingScore,
		"duration_seconds": ExamDurationSeconds,
	})
}

// ExamSubmission is the validated exam submit payload
type ExamSubmission struct {
	VersionNumber int                        `json:"version_number"`
	Answers       quizController.AnswerSheet `json:"answers"`
	QuestionOrder []uint                     `json:"question_order"`
	TimeRemaining int                        `json:"time_remaining"`
	AutoSubmit    bool                       `json:"auto_submit"`
}

// correctOptionIndex maps the stored answer letter to the canonical option
// index, or -1 for anything that is not a single A-D letter
func correctOptionIndex(letter string) int {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if len(letter) != 1 {
		return -1
	}
	return strings.Index("ABCD", letter)
}

// SubmitExamSimulation evaluates a timed exam run against the fixed 87% threshold.
// Auto-submit (timer expiry) skips the completeness validation; unanswered
// questions score as incorrect. A pass never unlocks the gated phase by itself,
// it only enables the proof-upload step.
func SubmitExamSimulation(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	submission := c.Locals("validatedExamSubmission").(*ExamSubmission)
	db := database.Database.Db

	var version courseModels.ExamVersion
	if err := db.Where("version_number = ? AND is_deleted = ?", submission.VersionNumber, false).First(&version).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam version not found!", nil)
	}

	var questions []courseModels.ExamQuestion
	if err := db.Where("version_id = ? AND is_deleted = ?", version.ID, false).Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam version has no questions!", nil)
	}

	if !submission.AutoSubmit {
		questionIDs := make([]uint, len(questions))
		for i, q := range questions {
			questionIDs[i] = q.ID
		}
		if missing := quizController.MissingAnswers(questionIDs, submission.QuestionOrder, submission.Answers); len(missing) > 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please answer all questions before submitting!", fiber.Map{
				"unanswered_questions": missing,
			})
		}
	}

	correctByQuestion := make(map[uint]int, len(questions))
	for _, q := range questions {
		correctByQuestion[q.ID] = correctOptionIndex(q.CorrectAnswer)
	}

	score, correctCount := quizController.ScoreAnswers(correctByQuestion, submission.Answers)
	passed := score >= ExamPassingScore

	answersJSON, _ := json.Marshal(submission.Answers)

	attempt := courseModels.ExamSimulationAttempt{
		UserID:        userID,
		VersionID:     version.ID,
		VersionNumber: version.VersionNumber,
		Score:         score,
		Passed:        passed,
		Answers:       answersJSON,
		TimeRemaining: submission.TimeRemaining,
		AutoSubmitted: submission.AutoSubmit,
	}

	if err := db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam submitted!", fiber.Map{
		"attempt":       attempt,
		"score":         score,
		"correct_count": correctCount,
		"passed":        passed,
		"passing_score": ExamPassingScore,
	})
}

// GetExamAttempts lists the user's exam simulation attempts, newest first
func GetExamAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var attempts []courseModels.ExamSimulationAttempt
	if err := database.Database.Db.Where("user_id = ?", userID).
		Order("created_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", attempts)
}
