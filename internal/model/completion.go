package model

import "time"

// UserAssignmentCompletion 记录用户对某测试分配的完成状态
// 每个 (user, assignment) 唯一；IsCompleted 为 true 后该测试拒绝再次提交。
// swagger:model UserAssignmentCompletion
type UserAssignmentCompletion struct {
	BaseModel
	UserID       uint       `gorm:"uniqueIndex:idx_user_assignment;type:bigint unsigned" json:"userId"`
	AssignmentID uint       `gorm:"uniqueIndex:idx_user_assignment;type:bigint unsigned" json:"assignmentId"`
	IsCompleted  bool       `gorm:"default:false" json:"isCompleted"`
	CompletedAt  *time.Time `json:"completedAt"`
}

func (UserAssignmentCompletion) TableName() string {
	return "user_assignment_completion"
}
