package service

import (
	"encoding/json"
	"fmt"
	"quizdesk_backend/internal/model"
	"quizdesk_backend/pkg/database"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 打开内存 sqlite 并执行全部表迁移
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, isAdmin bool) *model.User {
	t.Helper()
	user := &model.User{Email: email, Password: "x", IsAdmin: isAdmin}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedQuestion(t *testing.T, db *gorm.DB, categoryID uint, correctAnswer string) *model.Question {
	t.Helper()
	options, err := json.Marshal([]string{correctAnswer, "错误选项1", "错误选项2"})
	require.NoError(t, err)

	question := &model.Question{
		CategoryID:          categoryID,
		Prompt:              fmt.Sprintf("测试题目，正确答案是 %s", correctAnswer),
		Options:             options,
		CorrectAnswer:       correctAnswer,
		ShortContent:        "简要提示",
		LongContentText:     "详细讲解",
		LongContentFilePath: "/uploads/explain.pdf",
	}
	require.NoError(t, db.Create(question).Error)
	return question
}

func seedAssignment(t *testing.T, db *gorm.DB, adminID uint, name string, quotas []model.AssignmentCategory) *model.TestAssignment {
	t.Helper()
	assignment := &model.TestAssignment{AdminID: adminID, Name: name}
	require.NoError(t, db.Create(assignment).Error)
	for i := range quotas {
		quotas[i].AssignmentID = assignment.ID
		require.NoError(t, db.Create(&quotas[i]).Error)
	}
	return assignment
}

func seedResponse(t *testing.T, db *gorm.DB, userID, questionID, assignmentID uint, answer string, isSure bool, status model.ResponseStatus) {
	t.Helper()
	require.NoError(t, db.Create(&model.UserResponse{
		UserID:       userID,
		QuestionID:   questionID,
		AssignmentID: assignmentID,
		Answer:       answer,
		IsSure:       isSure,
		Status:       status,
	}).Error)
}
