package quizController

import (
	"lms/database"
	courseModels "lms/models/course"
	"math/rand"
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

func TestMissingAnswers(t *testing.T) {
	questionIDs := []uint{10, 20, 30, 40}
	order := []uint{20, 10, 40, 30}

	missing := MissingAnswers(questionIDs, order, AnswerSheet{10: 0, 30: 2})
	assert.Equal(t, []int{1, 3}, missing)

	missing = MissingAnswers(questionIDs, order, AnswerSheet{10: 0, 20: 1, 30: 2, 40: 3})
	assert.Nil(t, missing)

	missing = MissingAnswers(questionIDs, order, AnswerSheet{})
	assert.Equal(t, []int{2, 1, 4, 3}, missing)
}

func TestMissingAnswersIgnoresTruncatedOrder(t *testing.T) {
	questionIDs := []uint{10, 20, 30}

	// A client that only lists the questions it answered still has to
	// answer the whole stored set
	missing := MissingAnswers(questionIDs, []uint{10}, AnswerSheet{10: 0})
	assert.Equal(t, []int{2, 3}, missing)

	missing = MissingAnswers(questionIDs, nil, AnswerSheet{10: 0, 20: 1, 30: 2})
	assert.Nil(t, missing)
}

func TestScoreAnswers(t *testing.T) {
	correct := map[uint]int{1: 0, 2: 1, 3: 2, 4: 3, 5: 0}

	// 4 of 5 correct rounds to 80
	score, correctCount := ScoreAnswers(correct, AnswerSheet{1: 0, 2: 1, 3: 2, 4: 3, 5: 1})
	assert.Equal(t, 80, score)
	assert.Equal(t, 4, correctCount)

	score, correctCount = ScoreAnswers(correct, AnswerSheet{1: 0, 2: 1, 3: 2, 4: 3, 5: 0})
	assert.Equal(t, 100, score)
	assert.Equal(t, 5, correctCount)

	// Unanswered questions count as incorrect
	score, correctCount = ScoreAnswers(correct, AnswerSheet{1: 0})
	assert.Equal(t, 20, score)
	assert.Equal(t, 1, correctCount)

	score, correctCount = ScoreAnswers(map[uint]int{}, AnswerSheet{})
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, correctCount)
}

func TestScoringIsShuffleInvariant(t *testing.T) {
	correct := map[uint]int{1: 2, 2: 0, 3: 1}
	answers := AnswerSheet{1: 2, 2: 0, 3: 3}

	baseScore, baseCorrect := ScoreAnswers(correct, answers)

	// Display order never feeds into scoring; shuffle and re-score
	questions := []ServedQuestion{
		{ID: 1, Options: []ServedOption{{0, "a"}, {1, "b"}, {2, "c"}}},
		{ID: 2, Options: []ServedOption{{0, "a"}, {1, "b"}, {2, "c"}}},
		{ID: 3, Options: []ServedOption{{0, "a"}, {1, "b"}, {2, "c"}}},
	}
	for seed := int64(0); seed < 10; seed++ {
		shuffleForDisplay(questions, rand.New(rand.NewSource(seed)))
		score, correctCount := ScoreAnswers(correct, answers)
		assert.Equal(t, baseScore, score)
		assert.Equal(t, baseCorrect, correctCount)
	}
}

func TestShuffleKeepsOptionIdentity(t *testing.T) {
	questions := []ServedQuestion{
		{ID: 1, Options: []ServedOption{{0, "alpha"}, {1, "beta"}, {2, "gamma"}}},
	}
	shuffleForDisplay(questions, rand.New(rand.NewSource(42)))

	// Every option keeps its canonical index and text pairing
	seen := make(map[int]string)
	for _, option := range questions[0].Options {
		seen[option.OptionIndex] = option.Text
	}
	assert.Equal(t, map[int]string{0: "alpha", 1: "beta", 2: "gamma"}, seen)
}

func seedModules(t *testing.T, db *gorm.DB) (first, second, gated courseModels.Module) {
	t.Helper()

	first = courseModels.Module{Title: "Basics", PhaseNumber: 1, OrderIndex: 0}
	second = courseModels.Module{Title: "Plans", PhaseNumber: 2, OrderIndex: 1}
	gated = courseModels.Module{Title: "Field Work", PhaseNumber: 5, OrderIndex: 2}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)
	require.NoError(t, db.Create(&gated).Error)
	return first, second, gated
}

func TestCompleteModuleUnlocksNext(t *testing.T) {
	db := setupTestDB(t)
	first, second, _ := seedModules(t, db)
	userID := uint(1)

	require.NoError(t, CompleteModuleAndUnlockNext(db, userID, first.ID))

	var progress courseModels.UserProgress
	require.NoError(t, db.Where("user_id = ? AND module_id = ?", userID, first.ID).First(&progress).Error)
	assert.True(t, progress.IsCompleted)
	assert.True(t, progress.IsUnlocked)
	assert.NotNil(t, progress.CompletedAt)

	var next courseModels.UserProgress
	require.NoError(t, db.Where("user_id = ? AND module_id = ?", userID, second.ID).First(&next).Error)
	assert.True(t, next.IsUnlocked)
	assert.False(t, next.IsCompleted)
}

func TestCompleteModuleDoesNotUnlockGatedPhase(t *testing.T) {
	db := setupTestDB(t)
	_, second, gated := seedModules(t, db)
	userID := uint(1)

	require.NoError(t, CompleteModuleAndUnlockNext(db, userID, second.ID))

	var progress courseModels.UserProgress
	err := db.Where("user_id = ? AND module_id = ?", userID, gated.ID).First(&progress).Error
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestCompleteModuleIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	first, second, _ := seedModules(t, db)
	userID := uint(1)

	require.NoError(t, CompleteModuleAndUnlockNext(db, userID, first.ID))
	require.NoError(t, CompleteModuleAndUnlockNext(db, userID, first.ID))

	var count int64
	db.Model(&courseModels.UserProgress{}).Where("user_id = ? AND module_id = ?", userID, first.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	db.Model(&courseModels.UserProgress{}).Where("user_id = ? AND module_id = ?", userID, second.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCompleteLastModuleNoNext(t *testing.T) {
	db := setupTestDB(t)
	_, _, gated := seedModules(t, db)
	userID := uint(1)

	require.NoError(t, CompleteModuleAndUnlockNext(db, userID, gated.ID))

	var progress courseModels.UserProgress
	require.NoError(t, db.Where("user_id = ? AND module_id = ?", userID, gated.ID).First(&progress).Error)
	assert.True(t, progress.IsCompleted)
}
