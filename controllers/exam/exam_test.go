package examController

import (
	quizController "lms/controllers/quiz"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickNextVersionFirstAttempt(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Equal(t, 1, PickNextVersion(0, false, rng))
}

func TestPickNextVersionAfterPass(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// A pass always routes back to version 1 regardless of history
	assert.Equal(t, 1, PickNextVersion(3, false, rng))
}

func TestPickNextVersionAfterFail(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		for lastVersion := 1; lastVersion <= 5; lastVersion++ {
			version := PickNextVersion(lastVersion, true, rng)
			assert.GreaterOrEqual(t, version, 2)
			assert.LessOrEqual(t, version, 5)
			assert.NotEqual(t, lastVersion, version, "retry must not repeat the failed version")
		}
	}
}

func TestPickNextVersionAfterFailingVersionOne(t *testing.T) {
	seen := make(map[int]bool)
	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		seen[PickNextVersion(1, true, rng)] = true
	}

	// Failing version 1 leaves the full retry pool available
	assert.Equal(t, map[int]bool{2: true, 3: true, 4: true, 5: true}, seen)
}

func TestCorrectOptionIndex(t *testing.T) {
	assert.Equal(t, 0, correctOptionIndex("A"))
	assert.Equal(t, 1, correctOptionIndex("b"))
	assert.Equal(t, 2, correctOptionIndex(" C "))
	assert.Equal(t, 3, correctOptionIndex("D"))
	assert.Equal(t, -1, correctOptionIndex("E"))
	assert.Equal(t, -1, correctOptionIndex(""))
}

func TestPassThresholdBoundary(t *testing.T) {
	// 100-question bank: 87 correct passes, 86 does not
	correct := make(map[uint]int, 100)
	answers := quizController.AnswerSheet{}
	for i := uint(1); i <= 100; i++ {
		correct[i] = 0
		if i <= 87 {
			answers[i] = 0
		} else {
			answers[i] = 1
		}
	}

	score, correctCount := quizController.ScoreAnswers(correct, answers)
	assert.Equal(t, 87, correctCount)
	assert.Equal(t, 87, score)
	assert.True(t, score >= ExamPassingScore)

	delete(answers, 87)
	score, _ = quizController.ScoreAnswers(correct, answers)
	assert.Equal(t, 86, score)
	assert.False(t, score >= ExamPassingScore)
}

func TestExamDuration(t *testing.T) {
	assert.Equal(t, 5400, ExamDurationSeconds)
}
