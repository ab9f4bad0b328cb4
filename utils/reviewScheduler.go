package utils

import (
	"lms/database"
	"lms/models/course"
	"log"

	"github.com/robfig/cron/v3"
)

// InitializeReviewScheduler sets up the daily pending-review digest
func InitializeReviewScheduler() {
	log.Println("[REVIEW-SCHEDULER] Initializing review scheduler...")

	c := cron.New()

	// Run daily at 9 AM to nudge admins about unreviewed exam proofs
	c.AddFunc("0 9 * * *", func() {
		log.Println("[REVIEW-SCHEDULER] Running daily pending-review check...")
		ProcessPendingReviews()
	})

	c.Start()
	log.Println("[REVIEW-SCHEDULER] Review scheduler started - runs daily at 9 AM")
}

// ProcessPendingReviews emails the admin a digest if any proofs await review
func ProcessPendingReviews() {
	db := database.Database.Db

	var pendingCount int64
	if err := db.Model(&course.PhaseUnlock{}).
		Where("status = ? AND screenshot_url <> ''", "PENDING").
		Count(&pendingCount).Error; err != nil {
		log.Printf("[REVIEW-SCHEDULER] Error counting pending reviews: %v", err)
		return
	}

	if pendingCount == 0 {
		log.Println("[REVIEW-SCHEDULER] No pending reviews")
		return
	}

	log.Printf("[REVIEW-SCHEDULER] Found %d pending reviews, sending digest", pendingCount)
	SendPendingReviewDigest(int(pendingCount))
}
