package repository

import (
	"quizdesk_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

// CreateBatch 批量插入题目，返回写入行数
func (r *QuestionRepository) CreateBatch(questions []model.Question) (int64, error) {
	if len(questions) == 0 {
		return 0, nil
	}
	res := r.DB.Create(&questions)
	return res.RowsAffected, res.Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) FindAllByCategoryID(categoryID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("category_id = ?", categoryID).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountByCategoryID(categoryID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// FindUnmasteredByCategory 查找某分类中该用户尚未掌握的题目
// 未掌握 = 不存在 status 为 sure_correct 的答题记录
func (r *QuestionRepository) FindUnmasteredByCategory(userID, categoryID uint) ([]model.Question, error) {
	mastered := r.DB.Model(&model.UserResponse{}).
		Select("question_id").
		Where("user_id = ? AND status = ?", userID, model.SureCorrect)

	var questions []model.Question
	err := r.DB.
		Where("category_id = ?", categoryID).
		Where("id NOT IN (?)", mastered).
		Find(&questions).Error
	return questions, err
}
