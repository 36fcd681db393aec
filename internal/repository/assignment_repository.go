package repository

import (
	"quizdesk_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

// Create 在事务内写入测试分配
func (r *AssignmentRepository) Create(tx *gorm.DB, assignment *model.TestAssignment) error {
	return tx.Create(assignment).Error
}

// CreateQuotas 在事务内批量写入分类配额
func (r *AssignmentRepository) CreateQuotas(tx *gorm.DB, quotas []model.AssignmentCategory) error {
	if len(quotas) == 0 {
		return nil
	}
	return tx.Create(&quotas).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.TestAssignment, error) {
	var assignment model.TestAssignment
	err := r.DB.First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) FindAll() ([]model.TestAssignment, error) {
	var assignments []model.TestAssignment
	err := r.DB.Order("created_at ASC").Find(&assignments).Error
	return assignments, err
}

// CategoryQuotaRow 配额行附带分类名
type CategoryQuotaRow struct {
	CategoryID    uint   `json:"categoryId"`
	CategoryName  string `json:"categoryName"`
	QuestionCount int    `json:"questionCount"`
}

// FindCategoryQuotas 查询某测试分配的全部分类配额（带分类名）
func (r *AssignmentRepository) FindCategoryQuotas(assignmentID uint) ([]CategoryQuotaRow, error) {
	var rows []CategoryQuotaRow
	err := r.DB.Table("assignment_categories ac").
		Select("ac.category_id, c.name AS category_name, ac.question_count").
		Joins("JOIN categories c ON ac.category_id = c.id").
		Where("ac.assignment_id = ?", assignmentID).
		Scan(&rows).Error
	return rows, err
}

// FindAvailableForUser 查询对该用户仍有未掌握题目的测试分配
// 某分配可用 = 至少存在一个分类配额，其 sure_correct 记录数尚未达到配额
func (r *AssignmentRepository) FindAvailableForUser(userID uint) ([]model.TestAssignment, error) {
	var assignments []model.TestAssignment
	err := r.DB.Raw(`
		SELECT DISTINCT ta.* FROM test_assignments ta
		JOIN assignment_categories ac ON ta.id = ac.assignment_id
		LEFT JOIN (
			SELECT q.category_id AS category_id, COUNT(*) AS mastered_count
			FROM user_responses ur
			JOIN questions q ON ur.question_id = q.id
			WHERE ur.user_id = ? AND ur.status = ?
			GROUP BY q.category_id
		) mastered ON ac.category_id = mastered.category_id
		WHERE mastered.mastered_count IS NULL OR mastered.mastered_count < ac.question_count
	`, userID, model.SureCorrect).Scan(&assignments).Error
	return assignments, err
}
