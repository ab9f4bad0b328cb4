package controllers

import (
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

func TestLockReasonEarlierPhase(t *testing.T) {
	db := setupTestDB(t)
	mod := courseModels.Module{Title: "Plans", PhaseNumber: 2, OrderIndex: 1}

	reason := lockReason(db, 1, mod)
	assert.Equal(t, "Complete the previous phase to unlock this phase.", reason)
}

func TestLockReasonGatedPhaseNoProof(t *testing.T) {
	db := setupTestDB(t)
	mod := courseModels.Module{Title: "Field Work", PhaseNumber: 5, OrderIndex: 4}

	reason := lockReason(db, 1, mod)
	assert.Equal(t, "Complete Phase 4 exam and upload your proof to unlock this phase.", reason)
}

func TestLockReasonGatedPhaseRejected(t *testing.T) {
	db := setupTestDB(t)
	mod := courseModels.Module{Title: "Field Work", PhaseNumber: 5, OrderIndex: 4}

	now := time.Now()
	require.NoError(t, db.Create(&courseModels.PhaseUnlock{
		UserID: 1, PhaseNumber: 5, ScreenshotURL: "/uploads/p.png", UploadedAt: &now,
		Status: "REJECTED", RejectionReason: "Screenshot is unreadable",
	}).Error)

	reason := lockReason(db, 1, mod)
	assert.Equal(t, "Your exam proof was rejected: Screenshot is unreadable. Please upload a new proof.", reason)
}

func TestLockReasonGatedPhaseUnderReview(t *testing.T) {
	db := setupTestDB(t)
	mod := courseModels.Module{Title: "Field Work", PhaseNumber: 5, OrderIndex: 4}

	now := time.Now()
	require.NoError(t, db.Create(&courseModels.PhaseUnlock{
		UserID: 1, PhaseNumber: 5, ScreenshotURL: "/uploads/p.png", UploadedAt: &now,
		Status: "PENDING",
	}).Error)

	reason := lockReason(db, 1, mod)
	assert.Equal(t, "Your exam proof is under review. You will be notified once it is approved.", reason)
}

func TestLockReasonGatedPhaseApprovedButNoExamPass(t *testing.T) {
	db := setupTestDB(t)
	mod := courseModels.Module{Title: "Field Work", PhaseNumber: 5, OrderIndex: 4}

	now := time.Now()
	require.NoError(t, db.Create(&courseModels.PhaseUnlock{
		UserID: 1, PhaseNumber: 5, ScreenshotURL: "/uploads/p.png", UploadedAt: &now,
		Status: "APPROVED",
	}).Error)

	reason := lockReason(db, 1, mod)
	assert.Equal(t, "Pass the exam simulation to unlock this phase.", reason)
}
