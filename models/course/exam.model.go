package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ExamVersion is one of the randomly assigned 100-question exam banks
type ExamVersion struct {
	gorm.Model
	VersionNumber int    `json:"version_number" gorm:"uniqueIndex"`
	Title         string `json:"title"`
	IsDeleted     bool   `gorm:"default:false"`
}

// ExamQuestion belongs to an exam version; options are stored as lettered columns
type ExamQuestion struct {
	gorm.Model
	VersionID      uint   `json:"version_id" gorm:"index;not null"`
	QuestionNumber int    `json:"question_number" gorm:"default:0"`
	QuestionText   string `json:"question_text" gorm:"type:text"`
	OptionA        string `json:"option_a"`
	OptionB        string `json:"option_b"`
	OptionC        string `json:"option_c"`
	OptionD        string `json:"option_d"`
	CorrectAnswer  string `json:"correct_answer" gorm:"size:1"` // A, B, C or D
	IsDeleted      bool   `gorm:"default:false"`
}

// ExamSimulationAttempt records one timed exam simulation run; pass threshold is fixed at 87%
type ExamSimulationAttempt struct {
	gorm.Model
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	VersionID     uint           `json:"version_id" gorm:"index;not null"`
	VersionNumber int            `json:"version_number"`
	Score         int            `json:"score"`
	Passed        bool           `json:"passed" gorm:"index;default:false"`
	Answers       datatypes.JSON `json:"answers"`
	TimeRemaining int            `json:"time_remaining"` // Seconds left on the countdown at submit
	AutoSubmitted bool           `json:"auto_submitted" gorm:"default:false"`
}
