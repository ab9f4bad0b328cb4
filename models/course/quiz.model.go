package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz is the end-of-module assessment
type Quiz struct {
	gorm.Model
	ModuleID     uint   `json:"module_id" gorm:"index;not null"`
	Title        string `json:"title"`
	PassingScore int    `json:"passing_score" gorm:"default:80"` // Percentage threshold
	IsDeleted    bool   `gorm:"default:false"`
}

// QuizQuestion holds the option list and the zero-based correct option index
type QuizQuestion struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	QuestionText  string         `json:"question_text" gorm:"type:text"`
	Options       datatypes.JSON `json:"options"`        // JSON array of option strings in canonical order
	CorrectAnswer int            `json:"correct_answer"` // Index into the canonical option order
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
	IsDeleted     bool           `gorm:"default:false"`
}

// QuizAttempt is an immutable record of one submission
type QuizAttempt struct {
	gorm.Model
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	Score         int            `json:"score"`
	Passed        bool           `json:"passed" gorm:"default:false"`
	Answers       datatypes.JSON `json:"answers"`        // question id -> selected canonical option index
	QuestionOrder datatypes.JSON `json:"question_order"` // question ids in the order they were displayed
}

// LessonQuiz is a per-lesson knowledge check
type LessonQuiz struct {
	gorm.Model
	LessonID     uint   `json:"lesson_id" gorm:"index;not null"`
	Title        string `json:"title"`
	PassingScore int    `json:"passing_score" gorm:"default:80"`
	IsDeleted    bool   `gorm:"default:false"`
}

type LessonQuizQuestion struct {
	gorm.Model
	LessonQuizID  uint           `json:"lesson_quiz_id" gorm:"index;not null"`
	QuestionText  string         `json:"question_text" gorm:"type:text"`
	Options       datatypes.JSON `json:"options"`
	CorrectAnswer int            `json:"correct_answer"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
	IsDeleted     bool           `gorm:"default:false"`
}

type LessonQuizAttempt struct {
	gorm.Model
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	LessonQuizID  uint           `json:"lesson_quiz_id" gorm:"index;not null"`
	Score         int            `json:"score"`
	Passed        bool           `json:"passed" gorm:"default:false"`
	Answers       datatypes.JSON `json:"answers"`
	QuestionOrder datatypes.JSON `json:"question_order"`
}
