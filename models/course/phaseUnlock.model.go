package course

import (
	"time"

	"gorm.io/gorm"
)

// PhaseUnlock tracks a student's uploaded exam proof for a gated phase
type PhaseUnlock struct {
	gorm.Model
	UserID          uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_phase"`
	PhaseNumber     int        `json:"phase_number" gorm:"not null;uniqueIndex:idx_user_phase"`
	ScreenshotURL   string     `json:"screenshot_url"`
	UploadedAt      *time.Time `json:"uploaded_at"`
	Status          string     `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	RejectionReason string     `json:"rejection_reason"`
	ReviewedBy      *uint      `json:"reviewed_by"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
}
