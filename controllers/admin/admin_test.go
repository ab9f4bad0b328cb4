package adminController

import (
	progressController "lms/controllers/progress"
	"lms/database"
	courseModels "lms/models/course"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.AllModels()...))
	return db
}

func seedModules(t *testing.T, db *gorm.DB, count int) []courseModels.Module {
	t.Helper()

	modules := make([]courseModels.Module, count)
	for i := 0; i < count; i++ {
		modules[i] = courseModels.Module{Title: "Module", PhaseNumber: i + 1, OrderIndex: i}
		require.NoError(t, db.Create(&modules[i]).Error)
	}
	return modules
}

func TestUnlockModuleForUserIdempotent(t *testing.T) {
	db := setupTestDB(t)
	modules := seedModules(t, db, 1)
	userID := uint(1)

	require.NoError(t, UnlockModuleForUser(db, userID, modules[0].ID))
	require.NoError(t, UnlockModuleForUser(db, userID, modules[0].ID))

	var count int64
	db.Model(&courseModels.UserProgress{}).
		Where("user_id = ? AND module_id = ?", userID, modules[0].ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var progress courseModels.UserProgress
	require.NoError(t, db.Where("user_id = ? AND module_id = ?", userID, modules[0].ID).First(&progress).Error)
	assert.True(t, progress.IsUnlocked)
	assert.NotNil(t, progress.UnlockedAt)
}

func TestUnlockModuleKeepsCompletionFlag(t *testing.T) {
	db := setupTestDB(t)
	modules := seedModules(t, db, 1)
	userID := uint(1)

	require.NoError(t, db.Create(&courseModels.UserProgress{
		UserID: userID, ModuleID: modules[0].ID, IsUnlocked: true, IsCompleted: true,
	}).Error)

	require.NoError(t, UnlockModuleForUser(db, userID, modules[0].ID))

	var progress courseModels.UserProgress
	require.NoError(t, db.Where("user_id = ? AND module_id = ?", userID, modules[0].ID).First(&progress).Error)
	assert.True(t, progress.IsCompleted, "unlock must not clear completion")
}

func TestResetUserProgressReseedsFirstModule(t *testing.T) {
	db := setupTestDB(t)
	modules := seedModules(t, db, 3)
	userID := uint(1)

	for _, module := range modules {
		require.NoError(t, UnlockModuleForUser(db, userID, module.ID))
	}
	require.NoError(t, db.Create(&courseModels.LessonCompletion{UserID: userID, LessonID: 7}).Error)
	require.NoError(t, db.Create(&courseModels.QuizAttempt{UserID: userID, QuizID: 1, Score: 90, Passed: true}).Error)
	require.NoError(t, db.Create(&courseModels.LessonQuizAttempt{UserID: userID, LessonQuizID: 1, Score: 90, Passed: true}).Error)

	require.NoError(t, ResetUserProgress(db, userID))

	var progresses []courseModels.UserProgress
	require.NoError(t, db.Where("user_id = ?", userID).Find(&progresses).Error)
	require.Len(t, progresses, 1)
	assert.Equal(t, modules[0].ID, progresses[0].ModuleID)
	assert.True(t, progresses[0].IsUnlocked)
	assert.False(t, progresses[0].IsCompleted)

	var count int64
	db.Model(&courseModels.LessonCompletion{}).Where("user_id = ?", userID).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&courseModels.QuizAttempt{}).Where("user_id = ?", userID).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&courseModels.LessonQuizAttempt{}).Where("user_id = ?", userID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestResetUserProgressLeavesOtherUsersAlone(t *testing.T) {
	db := setupTestDB(t)
	modules := seedModules(t, db, 2)

	require.NoError(t, UnlockModuleForUser(db, 1, modules[0].ID))
	require.NoError(t, UnlockModuleForUser(db, 2, modules[0].ID))
	require.NoError(t, UnlockModuleForUser(db, 2, modules[1].ID))

	require.NoError(t, ResetUserProgress(db, 1))

	var count int64
	db.Model(&courseModels.UserProgress{}).Where("user_id = ?", 2).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestResetUserProgressEmptyCourse(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, ResetUserProgress(db, 1))

	var count int64
	db.Model(&courseModels.UserProgress{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestResetThenRecompleteLessonCounts(t *testing.T) {
	db := setupTestDB(t)
	modules := seedModules(t, db, 1)
	lesson := courseModels.Lesson{ModuleID: modules[0].ID, Title: "Lesson", IsActive: true}
	require.NoError(t, db.Create(&lesson).Error)
	userID := uint(1)

	already, err := progressController.RecordCompletion(db, userID, lesson.ID)
	require.NoError(t, err)
	assert.False(t, already)

	require.NoError(t, ResetUserProgress(db, userID))

	// The completion row must be gone for real, not lingering soft-deleted
	// in the unique index and shadowing the user's next attempt
	already, err = progressController.RecordCompletion(db, userID, lesson.ID)
	require.NoError(t, err)
	assert.False(t, already)

	var count int64
	db.Model(&courseModels.LessonCompletion{}).Where("user_id = ?", userID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUnlockModuleRevivesSoftDeletedRow(t *testing.T) {
	db := setupTestDB(t)
	modules := seedModules(t, db, 1)
	userID := uint(1)

	require.NoError(t, db.Create(&courseModels.UserProgress{UserID: userID, ModuleID: modules[0].ID}).Error)
	require.NoError(t, db.Where("user_id = ? AND module_id = ?", userID, modules[0].ID).
		Delete(&courseModels.UserProgress{}).Error)

	require.NoError(t, UnlockModuleForUser(db, userID, modules[0].ID))

	var progress courseModels.UserProgress
	require.NoError(t, db.Where("user_id = ? AND module_id = ?", userID, modules[0].ID).First(&progress).Error)
	assert.True(t, progress.IsUnlocked)
}
