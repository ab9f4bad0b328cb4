package courseRoutes

import (
	certificateControllers "lms/controllers/certificate"
	contentControllers "lms/controllers/content"
	controllers "lms/controllers/course"
	examControllers "lms/controllers/exam"
	progressControllers "lms/controllers/progress"
	quizControllers "lms/controllers/quiz"
	uploadControllers "lms/controllers/upload"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the student-facing course, progress and exam routes.
// Everything behind /course requires an active entitlement.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware, middleware.RequireEntitlement)

	// Modules and lessons
	courseGroup.Get("/modules", controllers.GetModules)
	courseGroup.Get("/module/:moduleId", validators.ModuleParam(), controllers.GetModuleDetail)
	courseGroup.Get("/module/:moduleId/lesson/:lessonId", validators.ModuleParam(), validators.LessonParam(), controllers.GetLessonDetail)

	// Progress
	courseGroup.Get("/progress", progressControllers.GetProgress)
	courseGroup.Post("/module/:moduleId/lesson/:lessonId/complete", validators.ModuleParam(), validators.LessonParam(), progressControllers.MarkLessonComplete)

	// Module quizzes
	courseGroup.Get("/module/:moduleId/quiz", validators.ModuleParam(), quizControllers.GetModuleQuiz)
	courseGroup.Post("/module/:moduleId/quiz/submit", validators.ModuleParam(), validators.QuizSubmission(), quizControllers.SubmitModuleQuiz)
	courseGroup.Get("/module/:moduleId/quiz/attempts", validators.ModuleParam(), quizControllers.GetQuizAttempts)

	// Lesson knowledge checks
	courseGroup.Get("/lesson/:lessonId/quiz", validators.LessonParam(), quizControllers.GetLessonQuiz)
	courseGroup.Post("/lesson/:lessonId/quiz/submit", validators.LessonParam(), validators.QuizSubmission(), quizControllers.SubmitLessonQuiz)

	// Exam simulation
	courseGroup.Get("/exam/start", examControllers.StartExamSimulation)
	courseGroup.Post("/exam/submit", validators.ExamSubmission(), examControllers.SubmitExamSimulation)
	courseGroup.Get("/exam/attempts", examControllers.GetExamAttempts)

	// Phase proof uploads
	courseGroup.Post("/proof/upload", validators.ProofFile(), uploadControllers.UploadProof)
	courseGroup.Get("/proof/status", uploadControllers.GetProofStatus)

	// Study aids
	courseGroup.Get("/flashcards", contentControllers.GetFlashcards)
	courseGroup.Get("/syllabus", contentControllers.GetStateSyllabus)
	courseGroup.Get("/materials", contentControllers.GetCourseMaterials)

	// Certificate
	courseGroup.Get("/certificate", certificateControllers.GetCertificate)
	courseGroup.Post("/certificate/issue", certificateControllers.IssueCertificate)
}
