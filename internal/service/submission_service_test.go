package service

import (
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSubmissionService(db *gorm.DB) *SubmissionService {
	return NewSubmissionService(
		db,
		repository.NewQuestionRepository(db),
		repository.NewResponseRepository(db),
		repository.NewCompletionRepository(db),
	)
}

func TestSubmitClassifiesAndStoresResponses(t *testing.T) {
	db := newTestDB(t)
	svc := newSubmissionService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	category := seedCategory(t, db, "网络")
	q1 := seedQuestion(t, db, category.ID, "A")
	q2 := seedQuestion(t, db, category.ID, "A")
	q3 := seedQuestion(t, db, category.ID, "A")
	q4 := seedQuestion(t, db, category.ID, "A")
	assignment := seedAssignment(t, db, admin.ID, "第一次测验", []model.AssignmentCategory{
		{CategoryID: category.ID, QuestionCount: 4},
	})

	resp, err := svc.Submit(user.ID, assignment.ID, SubmitRequest{
		Responses: []ResponseItem{
			{QuestionID: q1.ID, Answer: "A", IsSure: true},
			{QuestionID: q2.ID, Answer: "B", IsSure: true},
			{QuestionID: q3.ID, Answer: "A", IsSure: false},
			{QuestionID: q4.ID, Answer: "B", IsSure: false},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 4)

	assert.Equal(t, model.SureCorrect, resp.Results[0].Status)
	assert.Equal(t, model.SureIncorrect, resp.Results[1].Status)
	assert.Equal(t, model.NotSureCorrect, resp.Results[2].Status)
	assert.Equal(t, model.NotSureIncorrect, resp.Results[3].Status)

	// 每题结果带回提交的答案与把握标记
	assert.Equal(t, "B", resp.Results[1].UserAnswer)
	assert.True(t, resp.Results[1].IsSure)
	assert.Equal(t, "A", resp.Results[2].UserAnswer)
	assert.False(t, resp.Results[2].IsSure)

	// 反馈规则：确定答对无反馈，侥幸答对给短内容，答错给长内容
	assert.Nil(t, resp.Results[0].Feedback)
	require.NotNil(t, resp.Results[2].Feedback)
	assert.Equal(t, "short", resp.Results[2].Feedback.Type)
	assert.Equal(t, "简要提示", resp.Results[2].Feedback.Content)
	for _, i := range []int{1, 3} {
		require.NotNil(t, resp.Results[i].Feedback)
		assert.Equal(t, "long", resp.Results[i].Feedback.Type)
		assert.Equal(t, "详细讲解", resp.Results[i].Feedback.Content)
		assert.Equal(t, "/uploads/explain.pdf", resp.Results[i].Feedback.FilePath)
	}

	var count int64
	require.NoError(t, db.Model(&model.UserResponse{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)
	assert.True(t, resp.AssignmentCompleted)
}

func TestSubmitMarksCompletion(t *testing.T) {
	db := newTestDB(t)
	svc := newSubmissionService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	category := seedCategory(t, db, "网络")
	q := seedQuestion(t, db, category.ID, "A")
	assignment := seedAssignment(t, db, admin.ID, "第一次测验", []model.AssignmentCategory{
		{CategoryID: category.ID, QuestionCount: 1},
	})

	// 完成标记不依赖任何请求字段，每次成功提交后都会落下
	resp, err := svc.Submit(user.ID, assignment.ID, SubmitRequest{
		Responses: []ResponseItem{{QuestionID: q.ID, Answer: "A", IsSure: true}},
	})
	require.NoError(t, err)
	assert.True(t, resp.AssignmentCompleted)

	var completion model.UserAssignmentCompletion
	require.NoError(t, db.Where("user_id = ? AND assignment_id = ?", user.ID, assignment.ID).First(&completion).Error)
	assert.True(t, completion.IsCompleted)
	require.NotNil(t, completion.CompletedAt)

	// 已完成后再次提交整批被拒绝
	_, err = svc.Submit(user.ID, assignment.ID, SubmitRequest{
		Responses: []ResponseItem{{QuestionID: q.ID, Answer: "B", IsSure: true}},
	})
	assert.ErrorIs(t, err, util.ErrAssignmentCompleted)

	var count int64
	require.NoError(t, db.Model(&model.UserResponse{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitRollsBackOnUnknownQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := newSubmissionService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	category := seedCategory(t, db, "网络")
	q := seedQuestion(t, db, category.ID, "A")
	assignment := seedAssignment(t, db, admin.ID, "第一次测验", []model.AssignmentCategory{
		{CategoryID: category.ID, QuestionCount: 1},
	})

	_, err := svc.Submit(user.ID, assignment.ID, SubmitRequest{
		Responses: []ResponseItem{
			{QuestionID: q.ID, Answer: "A", IsSure: true},
			{QuestionID: 99999, Answer: "A", IsSure: true},
		},
	})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)

	// 整批回滚，第一题的记录和完成标记都不保留
	var count int64
	require.NoError(t, db.Model(&model.UserResponse{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	var completions int64
	require.NoError(t, db.Model(&model.UserAssignmentCompletion{}).Count(&completions).Error)
	assert.EqualValues(t, 0, completions)
}
