package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

type studentSummary struct {
	ID               uint    `json:"id"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	IsBlocked        bool    `json:"is_blocked"`
	OverallProgress  int     `json:"overall_progress"`
	CompletedModules int64   `json:"completed_modules"`
	CurrentPhase     int     `json:"current_phase"`
	ExamPassed       bool    `json:"exam_passed"`
	BestExamScore    *int    `json:"best_exam_score"`
	LastActivityAt   *string `json:"last_activity_at"`
}

// ListStudents returns the roster with a progress snapshot per student
func ListStudents(c *fiber.Ctx) error {
	db := database.Database.Db

	var students []models.User
	err := db.Where("role = ? AND is_deleted = ?", "STUDENT", false).
		Order("created_at desc").Find(&students).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	var totalModules int64
	db.Model(&courseModels.Module{}).Where("is_deleted = ?", false).Count(&totalModules)

	summaries := make([]studentSummary, 0, len(students))
	for _, student := range students {
		summary := studentSummary{
			ID:           student.ID,
			FullName:     student.FullName,
			Email:        student.Email,
			IsBlocked:    student.IsBlocked,
			CurrentPhase: 1,
		}

		if student.LastActivityAt != nil {
			formatted := student.LastActivityAt.Format("2006-01-02 15:04:05")
			summary.LastActivityAt = &formatted
		}

		var completed int64
		db.Model(&courseModels.UserProgress{}).
			Where("user_id = ? AND is_completed = ?", student.ID, true).
			Count(&completed)
		summary.CompletedModules = completed
		if totalModules > 0 {
			summary.OverallProgress = int((completed*100 + totalModules/2) / totalModules)
		}

		var lastUnlocked courseModels.UserProgress
		err = db.Preload("Module").
			Joins("JOIN modules ON modules.id = user_progresses.module_id").
			Where("user_progresses.user_id = ? AND user_progresses.is_unlocked = ?", student.ID, true).
			Order("modules.order_index desc").First(&lastUnlocked).Error
		if err == nil && lastUnlocked.Module.ID != 0 {
			summary.CurrentPhase = lastUnlocked.Module.PhaseNumber
		}

		var bestExam courseModels.ExamSimulationAttempt
		err = db.Where("user_id = ?", student.ID).Order("score desc").First(&bestExam).Error
		if err == nil {
			score := bestExam.Score
			summary.BestExamScore = &score
			summary.ExamPassed = db.Where("user_id = ? AND passed = ?", student.ID, true).
				First(&courseModels.ExamSimulationAttempt{}).Error == nil
		}

		summaries = append(summaries, summary)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", summaries)
}

// GetStudentDetail returns the full progression picture for one student
func GetStudentDetail(c *fiber.Ctx) error {
	userID := uint(c.Locals("targetUserID").(int))

	db := database.Database.Db

	var student models.User
	err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&student).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}
	student.Password = ""

	var progress []courseModels.UserProgress
	db.Preload("Module").
		Joins("JOIN modules ON modules.id = user_progresses.module_id").
		Where("user_progresses.user_id = ?", userID).
		Order("modules.order_index asc").Find(&progress)

	var quizAttempts []courseModels.QuizAttempt
	db.Where("user_id = ?", userID).Order("created_at desc").Find(&quizAttempts)

	bestQuizScores := make(map[uint]int)
	for _, attempt := range quizAttempts {
		if attempt.Score > bestQuizScores[attempt.QuizID] {
			bestQuizScores[attempt.QuizID] = attempt.Score
		}
	}

	var examAttempts []courseModels.ExamSimulationAttempt
	db.Where("user_id = ?", userID).Order("created_at desc").Find(&examAttempts)

	var proofs []courseModels.PhaseUnlock
	db.Where("user_id = ?", userID).Order("phase_number asc").Find(&proofs)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student detail fetched successfully!", fiber.Map{
		"student":          student,
		"module_progress":  progress,
		"quiz_attempts":    quizAttempts,
		"best_quiz_scores": bestQuizScores,
		"exam_attempts":    examAttempts,
		"proof_uploads":    proofs,
	})
}
