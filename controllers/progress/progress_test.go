package progressController

import (
	"fmt"
	"lms/database"
	courseModels "lms/models/course"
	"testing"
	"time"

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

// seedCourse creates one module per phase with lessonsPerModule lessons each,
// globally ordered. Returns lesson IDs in walk order.
func seedCourse(t *testing.T, db *gorm.DB, phases, lessonsPerModule int) []uint {
	t.Helper()

	var lessonIDs []uint
	order := 0
	for phase := 1; phase <= phases; phase++ {
		module := courseModels.Module{
			Title:       fmt.Sprintf("Module %d", phase),
			PhaseNumber: phase,
			OrderIndex:  phase - 1,
		}
		require.NoError(t, db.Create(&module).Error)

		for l := 0; l < lessonsPerModule; l++ {
			lesson := courseModels.Lesson{
				ModuleID:   module.ID,
				Title:      fmt.Sprintf("Lesson %d.%d", phase, l+1),
				OrderIndex: order,
				IsActive:   true,
			}
			require.NoError(t, db.Create(&lesson).Error)
			lessonIDs = append(lessonIDs, lesson.ID)
			order++
		}
	}
	return lessonIDs
}

func completeLesson(t *testing.T, db *gorm.DB, userID, lessonID uint) {
	t.Helper()
	_, err := RecordCompletion(db, userID, lessonID)
	require.NoError(t, err)
}

func TestBuildProgressEmptyCourse(t *testing.T) {
	db := setupTestDB(t)

	state, err := BuildProgress(db, 1)
	require.NoError(t, err)

	assert.Equal(t, 0, state.TotalLessons)
	assert.Equal(t, 0, state.CompletedLessons)
	assert.Equal(t, 0, state.OverallProgress)
	assert.Empty(t, state.Lessons)
}

func TestBuildProgressFreshUser(t *testing.T) {
	db := setupTestDB(t)
	lessonIDs := seedCourse(t, db, 2, 5)

	state, err := BuildProgress(db, 1)
	require.NoError(t, err)

	assert.Equal(t, 10, state.TotalLessons)
	assert.Equal(t, 0, state.OverallProgress)

	// Only the first lesson is reachable
	assert.True(t, state.Lessons[lessonIDs[0]].Unlocked)
	for _, id := range lessonIDs[1:] {
		assert.False(t, state.Lessons[id].Unlocked)
	}
}

func TestBuildProgressSequentialUnlock(t *testing.T) {
	db := setupTestDB(t)
	lessonIDs := seedCourse(t, db, 2, 5)
	userID := uint(1)

	completeLesson(t, db, userID, lessonIDs[0])
	completeLesson(t, db, userID, lessonIDs[1])

	state, err := BuildProgress(db, userID)
	require.NoError(t, err)

	assert.Equal(t, 2, state.CompletedLessons)
	assert.Equal(t, 20, state.OverallProgress)

	// Completed lessons stay unlocked, the next one opens, the rest stay shut
	for i, id := range lessonIDs {
		if i <= 2 {
			assert.True(t, state.Lessons[id].Unlocked, "lesson %d should be unlocked", i)
		} else {
			assert.False(t, state.Lessons[id].Unlocked, "lesson %d should be locked", i)
		}
	}
	assert.True(t, state.Lessons[lessonIDs[0]].Completed)
	assert.True(t, state.Lessons[lessonIDs[1]].Completed)
	assert.False(t, state.Lessons[lessonIDs[2]].Completed)
}

func TestBuildProgressUnlockNeverRegresses(t *testing.T) {
	db := setupTestDB(t)
	lessonIDs := seedCourse(t, db, 1, 4)
	userID := uint(1)

	for _, id := range lessonIDs {
		completeLesson(t, db, userID, id)
	}

	state, err := BuildProgress(db, userID)
	require.NoError(t, err)

	assert.Equal(t, 100, state.OverallProgress)
	for _, id := range lessonIDs {
		assert.True(t, state.Lessons[id].Unlocked)
		assert.True(t, state.Lessons[id].Completed)
	}
}

func TestRecordCompletionIdempotent(t *testing.T) {
	db := setupTestDB(t)
	lessonIDs := seedCourse(t, db, 1, 3)
	userID := uint(1)

	already, err := RecordCompletion(db, userID, lessonIDs[0])
	require.NoError(t, err)
	assert.False(t, already)

	already, err = RecordCompletion(db, userID, lessonIDs[0])
	require.NoError(t, err)
	assert.True(t, already)

	var count int64
	db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonIDs[0]).
		Count(&count)
	assert.Equal(t, int64(1), count)

	state, err := BuildProgress(db, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.CompletedLessons)
	assert.Equal(t, 33, state.OverallProgress)
}

func TestFinalPhaseNeedsExamAndProof(t *testing.T) {
	db := setupTestDB(t)
	lessonIDs := seedCourse(t, db, 5, 1)
	userID := uint(1)

	// Complete everything before the final phase
	for _, id := range lessonIDs[:4] {
		completeLesson(t, db, userID, id)
	}
	finalLesson := lessonIDs[4]

	state, err := BuildProgress(db, userID)
	require.NoError(t, err)
	assert.False(t, state.Lessons[finalLesson].Unlocked, "should stay locked without exam and proof")

	// Passed exam alone is not enough
	require.NoError(t, db.Create(&courseModels.ExamSimulationAttempt{
		UserID: userID, VersionID: 1, VersionNumber: 1, Score: 90, Passed: true,
	}).Error)

	state, err = BuildProgress(db, userID)
	require.NoError(t, err)
	assert.False(t, state.Lessons[finalLesson].Unlocked, "exam pass alone should not open the final phase")

	// Proof upload completes the gate
	now := time.Now()
	require.NoError(t, db.Create(&courseModels.PhaseUnlock{
		UserID: userID, PhaseNumber: ProofGatePhase,
		ScreenshotURL: "/uploads/proof.png", UploadedAt: &now,
	}).Error)

	state, err = BuildProgress(db, userID)
	require.NoError(t, err)
	assert.True(t, state.Lessons[finalLesson].Unlocked)
}

func TestFinalPhaseProofAloneNotEnough(t *testing.T) {
	db := setupTestDB(t)
	lessonIDs := seedCourse(t, db, 5, 1)
	userID := uint(1)

	for _, id := range lessonIDs[:4] {
		completeLesson(t, db, userID, id)
	}

	now := time.Now()
	require.NoError(t, db.Create(&courseModels.PhaseUnlock{
		UserID: userID, PhaseNumber: ProofGatePhase,
		ScreenshotURL: "/uploads/proof.png", UploadedAt: &now,
	}).Error)

	state, err := BuildProgress(db, userID)
	require.NoError(t, err)
	assert.False(t, state.Lessons[lessonIDs[4]].Unlocked)
}

func TestFinalPhaseEmptyScreenshotDoesNotCount(t *testing.T) {
	db := setupTestDB(t)
	lessonIDs := seedCourse(t, db, 5, 1)
	userID := uint(1)

	for _, id := range lessonIDs[:4] {
		completeLesson(t, db, userID, id)
	}

	require.NoError(t, db.Create(&courseModels.ExamSimulationAttempt{
		UserID: userID, VersionID: 1, VersionNumber: 1, Score: 90, Passed: true,
	}).Error)
	now := time.Now()
	require.NoError(t, db.Create(&courseModels.PhaseUnlock{
		UserID: userID, PhaseNumber: ProofGatePhase, UploadedAt: &now,
	}).Error)

	state, err := BuildProgress(db, userID)
	require.NoError(t, err)
	assert.False(t, state.Lessons[lessonIDs[4]].Unlocked)
}

func TestInactiveLessonsSkipWalk(t *testing.T) {
	db := setupTestDB(t)
	lessonIDs := seedCourse(t, db, 1, 3)
	userID := uint(1)

	// Deactivate the middle lesson; the third should unlock right after the first
	require.NoError(t, db.Model(&courseModels.Lesson{}).
		Where("id = ?", lessonIDs[1]).Update("is_active", false).Error)

	completeLesson(t, db, userID, lessonIDs[0])

	state, err := BuildProgress(db, userID)
	require.NoError(t, err)

	assert.Equal(t, 2, state.TotalLessons)
	assert.Equal(t, 50, state.OverallProgress)
	assert.True(t, state.Lessons[lessonIDs[2]].Unlocked)
	_, present := state.Lessons[lessonIDs[1]]
	assert.False(t, present)
}

func TestCheckModuleLessonsComplete(t *testing.T) {
	db := setupTestDB(t)
	lessonIDs := seedCourse(t, db, 1, 3)
	userID := uint(1)

	var module courseModels.Module
	require.NoError(t, db.First(&module).Error)

	complete, err := CheckModuleLessonsComplete(db, userID, module.ID)
	require.NoError(t, err)
	assert.False(t, complete)

	for _, id := range lessonIDs {
		completeLesson(t, db, userID, id)
	}

	complete, err = CheckModuleLessonsComplete(db, userID, module.ID)
	require.NoError(t, err)
	assert.True(t, complete)
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 0, roundPercent(0, 10))
	assert.Equal(t, 30, roundPercent(3, 10))
	assert.Equal(t, 33, roundPercent(1, 3))
	assert.Equal(t, 67, roundPercent(2, 3))
	assert.Equal(t, 100, roundPercent(3, 3))
	assert.Equal(t, 0, roundPercent(0, 0))
}
