package adminRoutes

import (
	adminControllers "lms/controllers/admin"
	contentControllers "lms/controllers/content"
	"lms/middleware"
	adminValidators "lms/validators/admin"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the admin back-office routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	// Student management
	adminGroup.Get("/students", adminControllers.ListStudents)
	adminGroup.Get("/student/:userId", adminValidators.TargetUserParam(), adminControllers.GetStudentDetail)
	adminGroup.Put("/student/:userId/block", adminValidators.TargetUserParam(), adminValidators.BlockBody(), adminControllers.SetStudentBlocked)

	// Progress overrides
	adminGroup.Post("/student/:userId/module/:moduleId/unlock", adminValidators.TargetUserParam(), courseValidators.ModuleParam(), adminControllers.UnlockModule)
	adminGroup.Post("/student/:userId/unlock-all", adminValidators.TargetUserParam(), adminControllers.UnlockAllModules)
	adminGroup.Post("/student/:userId/reset-progress", adminValidators.TargetUserParam(), adminControllers.ResetProgress)

	// Proof review
	adminGroup.Get("/proofs/pending", adminControllers.ListPendingProofs)
	adminGroup.Post("/proofs/review", adminValidators.ProofReview(), adminControllers.ReviewProof)

	// Content management
	adminGroup.Post("/module", adminValidators.ModuleBody(), adminControllers.CreateModule)
	adminGroup.Put("/module/:moduleId", courseValidators.ModuleParam(), adminValidators.ModuleBody(), adminControllers.UpdateModule)
	adminGroup.Delete("/module/:moduleId", courseValidators.ModuleParam(), adminControllers.DeleteModule)
	adminGroup.Post("/module/:moduleId/lesson", courseValidators.ModuleParam(), adminValidators.LessonBody(), adminControllers.CreateLesson)
	adminGroup.Put("/lesson/:lessonId", courseValidators.LessonParam(), adminValidators.LessonBody(), adminControllers.UpdateLesson)
	adminGroup.Delete("/lesson/:lessonId", courseValidators.LessonParam(), adminControllers.DeleteLesson)
	adminGroup.Put("/module/:moduleId/quiz", courseValidators.ModuleParam(), adminValidators.QuizBody(), adminControllers.UpsertModuleQuiz)
	adminGroup.Put("/lesson/:lessonId/quiz", courseValidators.LessonParam(), adminValidators.QuizBody(), adminControllers.UpsertLessonQuiz)

	// Study aids
	adminGroup.Post("/flashcard", adminValidators.FlashcardBody(), contentControllers.CreateFlashcard)
	adminGroup.Post("/material", adminValidators.MaterialBody(), contentControllers.CreateCourseMaterial)
	adminGroup.Get("/answer-keys", contentControllers.GetTeacherAnswerKeys)

	// Audit trail
	adminGroup.Get("/logs", adminControllers.ListActionLogs)
}
