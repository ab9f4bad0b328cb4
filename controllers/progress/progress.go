package progressController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LessonProgress is the derived per-lesson state
type LessonProgress struct {
	Completed bool `json:"completed"`
	Unlocked  bool `json:"unlocked"`
}

// ProgressState is the full aggregate for one user
type ProgressState struct {
	Lessons          map[uint]LessonProgress `json:"lessons"`
	OverallProgress  int                     `json:"overall_progress"`
	TotalLessons     int                     `json:"total_lessons"`
	CompletedLessons int                     `json:"completed_lessons"`
}

// ProofGatePhase is the phase whose lessons need a passed exam simulation plus an uploaded proof
const ProofGatePhase = 5

// BuildProgress derives the per-lesson {completed, unlocked} map for a user.
// Lessons are walked in global order; a lesson unlocks when the previous one is
// completed, and ProofGatePhase lessons additionally require the exam/proof gate.
// Read-only; a failed lesson read fails the whole aggregation.
func BuildProgress(db *gorm.DB, userID uint) (*ProgressState, error) {
	var lessons []courseModels.Lesson
	if err := db.Where("is_active = ? AND is_deleted = ?", true, false).
		Order("order_index asc").Find(&lessons).Error; err != nil {
		return nil, err
	}

	var completions []courseModels.LessonCompletion
	if err := db.Where("user_id = ?", userID).Find(&completions).Error; err != nil {
		return nil, err
	}

	var modules []courseModels.Module
	if err := db.Where("is_deleted = ?", false).Order("phase_number asc").Find(&modules).Error; err != nil {
		return nil, err
	}

	var passedExamCount int64
	if err := db.Model(&courseModels.ExamSimulationAttempt{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Count(&passedExamCount).Error; err != nil {
		return nil, err
	}

	var phaseUnlock courseModels.PhaseUnlock
	proofUploaded := false
	err := db.Where("user_id = ? AND phase_number = ?", userID, ProofGatePhase).First(&phaseUnlock).Error
	if err == nil {
		proofUploaded = phaseUnlock.ScreenshotURL != ""
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	completedLessonIDs := make(map[uint]bool, len(completions))
	for _, c := range completions {
		completedLessonIDs[c.LessonID] = true
	}

	modulePhase := make(map[uint]int, len(modules))
	for _, m := range modules {
		modulePhase[m.ID] = m.PhaseNumber
	}

	hasPassedExam := passedExamCount > 0
	gatedPhaseUnlocked := hasPassedExam && proofUploaded

	state := &ProgressState{
		Lessons:      make(map[uint]LessonProgress, len(lessons)),
		TotalLessons: len(lessons),
	}

	lastCompletedIndex := -1
	completedCount := 0

	for i, lesson := range lessons {
		completed := completedLessonIDs[lesson.ID]
		if completed {
			lastCompletedIndex = i
			completedCount++
		}

		phase := modulePhase[lesson.ModuleID]
		if phase == 0 {
			phase = 1
		}

		baseUnlocked := i == 0 || i <= lastCompletedIndex+1
		unlocked := baseUnlocked
		if phase == ProofGatePhase {
			unlocked = baseUnlocked && gatedPhaseUnlocked
		}

		state.Lessons[lesson.ID] = LessonProgress{Completed: completed, Unlocked: unlocked}
	}

	state.CompletedLessons = completedCount
	if state.TotalLessons > 0 {
		state.OverallProgress = roundPercent(completedCount, state.TotalLessons)
	}

	return state, nil
}

// roundPercent rounds 100*part/total to the nearest integer
func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return (part*100 + total/2) / total
}

// GetProgress returns the current progress aggregate for the authenticated user
func GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	state, err := BuildProgress(database.Database.Db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", state)
}
