package repository

import (
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

func (r *CompletionRepository) FindByUserAndAssignment(userID, assignmentID uint) (*model.UserAssignmentCompletion, error) {
	var completion model.UserAssignmentCompletion
	err := r.DB.Where("user_id = ? AND assignment_id = ?", userID, assignmentID).First(&completion).Error
	if err != nil {
		return nil, err
	}
	return &completion, nil
}

// MarkCompleted 在事务内以原子条件更新方式落下完成标记
// 先尝试把未完成行置为已完成；没有可更新行时再插入，
// (user_id, assignment_id) 唯一索引兜底并发下的重复提交。
func (r *CompletionRepository) MarkCompleted(tx *gorm.DB, userID, assignmentID uint, completedAt time.Time) error {
	res := tx.Model(&model.UserAssignmentCompletion{}).
		Where("user_id = ? AND assignment_id = ? AND is_completed = ?", userID, assignmentID, false).
		Updates(map[string]interface{}{"is_completed": true, "completed_at": completedAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	record := &model.UserAssignmentCompletion{
		UserID:       userID,
		AssignmentID: assignmentID,
		IsCompleted:  true,
		CompletedAt:  &completedAt,
	}
	if err := tx.Create(record).Error; err != nil {
		var existing model.UserAssignmentCompletion
		lookupErr := tx.Where("user_id = ? AND assignment_id = ?", userID, assignmentID).First(&existing).Error
		if lookupErr == nil && existing.IsCompleted {
			return util.ErrAssignmentCompleted
		}
		return err
	}
	return nil
}
