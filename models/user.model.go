package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FullName            string     `json:"full_name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Role                string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, ADMIN
	Password            string     `json:"-" gorm:"not null"`
	LastActivityAt      *time.Time `json:"last_activity_at"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	IsBlocked           bool       `json:"is_blocked" gorm:"default:false"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}
