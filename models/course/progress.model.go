package course

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress is the module-level gate for a user; absence of a row means locked
type UserProgress struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_module"`
	ModuleID    uint       `json:"module_id" gorm:"not null;uniqueIndex:idx_user_module"`
	IsUnlocked  bool       `json:"is_unlocked" gorm:"default:false"`
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	UnlockedAt  *time.Time `json:"unlocked_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Module      Module     `json:"-" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
}
