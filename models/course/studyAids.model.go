package course

import "gorm.io/gorm"

// Flashcard is a front/back study card, optionally tied to a module
type Flashcard struct {
	gorm.Model
	ModuleID   *uint  `json:"module_id" gorm:"index"`
	FrontText  string `json:"front_text" gorm:"type:text"`
	BackText   string `json:"back_text" gorm:"type:text"`
	Category   string `json:"category"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// StateSyllabus holds per-state licensing syllabus entries
type StateSyllabus struct {
	gorm.Model
	StateName  string `json:"state_name" gorm:"index"`
	Topic      string `json:"topic"`
	Content    string `json:"content" gorm:"type:text"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// CourseMaterial is a downloadable resource attached to a module
type CourseMaterial struct {
	gorm.Model
	ModuleID  *uint  `json:"module_id" gorm:"index"`
	Title     string `json:"title"`
	FileURL   string `json:"file_url"`
	FileType  string `json:"file_type"`
	IsDeleted bool   `gorm:"default:false"`
}

// TeacherAnswerKey stores instructor answer-key documents for admin review
type TeacherAnswerKey struct {
	gorm.Model
	Title     string `json:"title"`
	Content   string `json:"content" gorm:"type:text"`
	FileURL   string `json:"file_url"`
	IsDeleted bool   `gorm:"default:false"`
}
