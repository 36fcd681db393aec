package repository

import (
	"quizdesk_backend/internal/model"

	"gorm.io/gorm"
)

// StatsRepository 聚合查询仓库，只产出计数，百分比由服务层折算
type StatsRepository struct {
	DB *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

// FindOverallCounts 统计用户全量答题计数
func (r *StatsRepository) FindOverallCounts(userID uint) (*model.OverallStats, error) {
	var stats model.OverallStats
	err := r.DB.Raw(`
		SELECT
			COUNT(DISTINCT ur.assignment_id) AS total_assignments,
			COUNT(DISTINCT q.category_id) AS total_categories,
			COUNT(*) AS total_questions_attempted,
			COALESCE(SUM(CASE WHEN ur.status = ? THEN 1 ELSE 0 END), 0) AS mastered_questions,
			COALESCE(SUM(CASE WHEN ur.status IN (?, ?) THEN 1 ELSE 0 END), 0) AS correct_answers,
			COALESCE(SUM(CASE WHEN ur.status IN (?, ?) THEN 1 ELSE 0 END), 0) AS incorrect_answers,
			COALESCE(SUM(CASE WHEN ur.is_sure THEN 1 ELSE 0 END), 0) AS confident_responses,
			COALESCE(SUM(CASE WHEN ur.is_sure THEN 0 ELSE 1 END), 0) AS unsure_responses
		FROM user_responses ur
		JOIN questions q ON ur.question_id = q.id
		WHERE ur.user_id = ?
	`, model.SureCorrect,
		model.SureCorrect, model.NotSureCorrect,
		model.SureIncorrect, model.NotSureIncorrect,
		userID).Scan(&stats).Error
	return &stats, err
}

// FindCategoryCounts 按分类汇总用户的答题计数，未作答的分类以零值返回
func (r *StatsRepository) FindCategoryCounts(userID uint) ([]model.CategoryProgress, error) {
	var rows []model.CategoryProgress
	err := r.DB.Raw(`
		SELECT
			c.id AS category_id,
			c.name AS category_name,
			(SELECT COUNT(*) FROM questions q2 WHERE q2.category_id = c.id AND q2.deleted_at IS NULL) AS total_questions,
			COUNT(DISTINCT ur.question_id) AS questions_attempted,
			COALESCE(SUM(CASE WHEN ur.status = ? THEN 1 ELSE 0 END), 0) AS mastered_questions,
			COALESCE(SUM(CASE WHEN ur.status IN (?, ?) THEN 1 ELSE 0 END), 0) AS correct_answers,
			COALESCE(SUM(CASE WHEN ur.status IN (?, ?) THEN 1 ELSE 0 END), 0) AS incorrect_answers,
			COALESCE(SUM(CASE WHEN ur.is_sure THEN 1 ELSE 0 END), 0) AS confident_responses
		FROM categories c
		LEFT JOIN questions q ON q.category_id = c.id AND q.deleted_at IS NULL
		LEFT JOIN user_responses ur ON ur.question_id = q.id AND ur.user_id = ?
		WHERE c.deleted_at IS NULL
		GROUP BY c.id, c.name
		ORDER BY c.name
	`, model.SureCorrect,
		model.SureCorrect, model.NotSureCorrect,
		model.SureIncorrect, model.NotSureIncorrect,
		userID).Scan(&rows).Error
	return rows, err
}

// FindAssignmentCounts 统计某测试分配下用户的答题计数
func (r *StatsRepository) FindAssignmentCounts(userID, assignmentID uint) (*model.AssignmentStats, error) {
	var stats model.AssignmentStats
	err := r.DB.Raw(`
		SELECT
			COUNT(*) AS total_questions,
			COALESCE(SUM(CASE WHEN ur.status IN (?, ?) THEN 1 ELSE 0 END), 0) AS correct_answers,
			COALESCE(SUM(CASE WHEN ur.status IN (?, ?) THEN 1 ELSE 0 END), 0) AS incorrect_answers,
			COALESCE(SUM(CASE WHEN ur.is_sure THEN 1 ELSE 0 END), 0) AS confident_responses,
			COALESCE(SUM(CASE WHEN ur.is_sure THEN 0 ELSE 1 END), 0) AS unsure_responses
		FROM user_responses ur
		WHERE ur.user_id = ? AND ur.assignment_id = ?
	`, model.SureCorrect, model.NotSureCorrect,
		model.SureIncorrect, model.NotSureIncorrect,
		userID, assignmentID).Scan(&stats).Error
	return &stats, err
}

// FindAssignmentCategoryCounts 某测试分配下按分类的状态分布
func (r *StatsRepository) FindAssignmentCategoryCounts(userID, assignmentID uint) ([]model.AssignmentCategoryStats, error) {
	var rows []model.AssignmentCategoryStats
	err := r.DB.Raw(`
		SELECT
			c.id AS category_id,
			c.name AS category_name,
			COUNT(*) AS total_questions,
			COALESCE(SUM(CASE WHEN ur.status IN (?, ?) THEN 1 ELSE 0 END), 0) AS correct_answers,
			COALESCE(SUM(CASE WHEN ur.status IN (?, ?) THEN 1 ELSE 0 END), 0) AS incorrect_answers,
			COALESCE(SUM(CASE WHEN ur.status = ? THEN 1 ELSE 0 END), 0) AS sure_correct,
			COALESCE(SUM(CASE WHEN ur.status = ? THEN 1 ELSE 0 END), 0) AS not_sure_correct,
			COALESCE(SUM(CASE WHEN ur.status = ? THEN 1 ELSE 0 END), 0) AS sure_incorrect,
			COALESCE(SUM(CASE WHEN ur.status = ? THEN 1 ELSE 0 END), 0) AS not_sure_incorrect
		FROM user_responses ur
		JOIN questions q ON ur.question_id = q.id
		JOIN categories c ON q.category_id = c.id
		WHERE ur.user_id = ? AND ur.assignment_id = ?
		GROUP BY c.id, c.name
		ORDER BY c.name
	`, model.SureCorrect, model.NotSureCorrect,
		model.SureIncorrect, model.NotSureIncorrect,
		model.SureCorrect, model.NotSureCorrect,
		model.SureIncorrect, model.NotSureIncorrect,
		userID, assignmentID).Scan(&rows).Error
	return rows, err
}

// FindAttemptedAssignments 列出用户提交过答题记录的测试分配
func (r *StatsRepository) FindAttemptedAssignments(userID uint) ([]model.CompletionDetail, error) {
	var rows []model.CompletionDetail
	err := r.DB.Raw(`
		SELECT
			ta.id AS assignment_id,
			ta.name,
			ta.created_at,
			COALESCE(uac.is_completed, ?) AS is_completed,
			uac.completed_at
		FROM test_assignments ta
		LEFT JOIN user_assignment_completion uac
			ON uac.assignment_id = ta.id AND uac.user_id = ?
		WHERE EXISTS (
			SELECT 1 FROM user_responses ur
			WHERE ur.user_id = ? AND ur.assignment_id = ta.id
		)
		ORDER BY ta.created_at
	`, false, userID, userID).Scan(&rows).Error
	return rows, err
}

// FindCompletionDetails 每个测试分配对该用户的完成概览
func (r *StatsRepository) FindCompletionDetails(userID uint) ([]model.CompletionDetail, error) {
	var rows []model.CompletionDetail
	err := r.DB.Raw(`
		SELECT
			ta.id AS assignment_id,
			ta.name,
			ta.created_at,
			COALESCE(uac.is_completed, ?) AS is_completed,
			uac.completed_at,
			COUNT(ac.category_id) AS total_categories,
			COALESCE(SUM(ac.question_count), 0) AS total_questions,
			COALESCE((
				SELECT COUNT(*) FROM user_responses ur
				WHERE ur.user_id = ? AND ur.assignment_id = ta.id AND ur.status = ?
			), 0) AS mastered_questions
		FROM test_assignments ta
		LEFT JOIN user_assignment_completion uac
			ON uac.assignment_id = ta.id AND uac.user_id = ?
		LEFT JOIN assignment_categories ac ON ac.assignment_id = ta.id
		GROUP BY ta.id, ta.name, ta.created_at, uac.is_completed, uac.completed_at
		ORDER BY ta.created_at
	`, false, userID, model.SureCorrect, userID).Scan(&rows).Error
	return rows, err
}
