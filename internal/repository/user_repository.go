package repository

import (
	"quizdesk_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

// RegularUserRow 非管理员用户及其答题概况
type RegularUserRow struct {
	ID                        uint      `json:"id"`
	Email                     string    `json:"email"`
	CreatedAt                 time.Time `json:"createdAt"`
	TotalQuestionsAttempted   int       `json:"totalQuestionsAttempted"`
	TotalAssignmentsAttempted int       `json:"totalAssignmentsAttempted"`
}

// FindRegularUsers 列出所有非管理员用户，附带答题和参与测试的数量
func (r *UserRepository) FindRegularUsers() ([]RegularUserRow, error) {
	var rows []RegularUserRow
	err := r.DB.Raw(`
		SELECT
			u.id,
			u.email,
			u.created_at,
			(SELECT COUNT(*) FROM user_responses ur WHERE ur.user_id = u.id) AS total_questions_attempted,
			(SELECT COUNT(DISTINCT ur.assignment_id) FROM user_responses ur WHERE ur.user_id = u.id) AS total_assignments_attempted
		FROM users u
		WHERE u.is_admin = ? AND u.deleted_at IS NULL
		ORDER BY u.created_at DESC
	`, false).Scan(&rows).Error
	return rows, err
}
