package course

import "gorm.io/gorm"

// Module represents one phase of the course
type Module struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	PhaseNumber int    `json:"phase_number" gorm:"index;default:1"` // Phases 1-6
	OrderIndex  int    `json:"order_index" gorm:"default:0"`        // Module order in course
	IsDeleted   bool   `gorm:"default:false"`
}
