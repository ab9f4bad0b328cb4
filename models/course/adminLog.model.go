package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminActionLog is an immutable audit record for every admin-triggered state change
type AdminActionLog struct {
	gorm.Model
	AdminUserID uint           `json:"admin_user_id" gorm:"index;not null"`
	ActionType  string         `json:"action_type"` // e.g. student_progress_reset, upload_approved
	TargetType  string         `json:"target_type"` // student, upload, module, quiz_question
	TargetID    uint           `json:"target_id"`
	Details     datatypes.JSON `json:"details"`
}
