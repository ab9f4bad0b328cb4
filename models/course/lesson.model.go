package course

import "gorm.io/gorm"

// Lesson represents a single lesson within a module
type Lesson struct {
	gorm.Model
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content" gorm:"type:text"`
	VideoURL    string `json:"video_url"`
	OrderIndex  int    `json:"order_index" gorm:"index;default:0"` // Global lesson order
	IsActive    bool   `json:"is_active" gorm:"default:true"`      // Inactive lessons are excluded from progression
	IsDeleted   bool   `gorm:"default:false"`
}

// LessonCompletion marks a lesson as completed by a user; existence implies completion
type LessonCompletion struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	LessonID uint   `json:"lesson_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	Lesson   Lesson `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}
