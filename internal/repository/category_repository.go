package repository

import (
	"quizdesk_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(category *model.Category) error {
	return r.DB.Create(category).Error
}

func (r *CategoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	err := r.DB.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Find(&categories).Error
	return categories, err
}

// CategoryCountRow 分类及其题目数量
type CategoryCountRow struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"questionCount"`
}

// FindAllWithCounts 列出全部分类，附带各自的题目数量
func (r *CategoryRepository) FindAllWithCounts() ([]CategoryCountRow, error) {
	var rows []CategoryCountRow
	err := r.DB.Raw(`
		SELECT
			c.id,
			c.name,
			(SELECT COUNT(*) FROM questions q WHERE q.category_id = c.id AND q.deleted_at IS NULL) AS question_count
		FROM categories c
		WHERE c.deleted_at IS NULL
		ORDER BY c.name
	`).Scan(&rows).Error
	return rows, err
}
