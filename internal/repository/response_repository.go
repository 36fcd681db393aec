package repository

import (
	"encoding/json"
	"quizdesk_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// Create 在事务内追加一条答题记录
func (r *ResponseRepository) Create(tx *gorm.DB, response *model.UserResponse) error {
	return tx.Create(response).Error
}

func (r *ResponseRepository) CountByUserAndAssignment(userID, assignmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserResponse{}).
		Where("user_id = ? AND assignment_id = ?", userID, assignmentID).
		Count(&count).Error
	return count, err
}

// ResponseDetailRow 答题记录连带题目与分类信息，用于成绩回放
type ResponseDetailRow struct {
	ResponseID          uint                 `json:"responseId"`
	QuestionID          uint                 `json:"questionId"`
	UserAnswer          string               `json:"userAnswer"`
	Status              model.ResponseStatus `json:"status"`
	IsSure              bool                 `json:"isSure"`
	ResponseTime        time.Time            `json:"responseTime"`
	Question            string               `json:"question"`
	Options             json.RawMessage      `json:"options"`
	CorrectAnswer       string               `json:"correctAnswer"`
	ShortContent        string               `json:"-"`
	LongContentText     string               `json:"-"`
	LongContentFilePath string               `json:"-"`
	CategoryName        string               `json:"category"`
}

// FindDetailsByUserAndAssignment 按提交时间顺序返回某用户在某测试分配下的全部答题明细
func (r *ResponseRepository) FindDetailsByUserAndAssignment(userID, assignmentID uint) ([]ResponseDetailRow, error) {
	var rows []ResponseDetailRow
	err := r.DB.Raw(`
		SELECT
			ur.id AS response_id,
			ur.question_id,
			ur.answer AS user_answer,
			ur.status,
			ur.is_sure,
			ur.created_at AS response_time,
			q.prompt AS question,
			q.options,
			q.correct_answer,
			q.short_content,
			q.long_content_text,
			q.long_content_file_path,
			c.name AS category_name
		FROM user_responses ur
		JOIN questions q ON ur.question_id = q.id
		JOIN categories c ON q.category_id = c.id
		WHERE ur.user_id = ? AND ur.assignment_id = ?
		ORDER BY ur.created_at
	`, userID, assignmentID).Scan(&rows).Error
	return rows, err
}

// StatusCount 某题目按状态分组的作答次数
type StatusCount struct {
	Status       model.ResponseStatus `json:"status"`
	AttemptCount int                  `json:"attemptCount"`
}

func (r *ResponseRepository) FindStatusCounts(userID, questionID uint) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.DB.Model(&model.UserResponse{}).
		Select("status, COUNT(*) AS attempt_count").
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Group("status").
		Scan(&counts).Error
	return counts, err
}

// FindRecentByUser 返回用户最近的 limit 条答题记录（带题目上下文）
func (r *ResponseRepository) FindRecentByUser(userID uint, limit int) ([]model.RecentActivity, error) {
	var rows []model.RecentActivity
	err := r.DB.Raw(`
		SELECT
			ur.id AS response_id,
			ur.question_id,
			q.prompt AS question,
			c.name AS category,
			ur.answer AS user_answer,
			q.correct_answer,
			ur.status,
			ur.created_at AS response_time
		FROM user_responses ur
		JOIN questions q ON ur.question_id = q.id
		JOIN categories c ON q.category_id = c.id
		WHERE ur.user_id = ?
		ORDER BY ur.created_at DESC
		LIMIT ?
	`, userID, limit).Scan(&rows).Error

	for i := range rows {
		rows[i].IsCorrect = rows[i].UserAnswer == rows[i].CorrectAnswer
	}
	return rows, err
}
