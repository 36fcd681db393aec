package service

import (
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReportService(db *gorm.DB) *ReportService {
	return NewReportService(
		repository.NewStatsRepository(db),
		repository.NewResponseRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewCompletionRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestPercentageRounding(t *testing.T) {
	assert.Equal(t, 0, percentage(0, 0))
	assert.Equal(t, 0, percentage(5, 0))
	assert.Equal(t, 33, percentage(1, 3))
	assert.Equal(t, 67, percentage(2, 3))
	assert.Equal(t, 50, percentage(1, 2))
	assert.Equal(t, 100, percentage(3, 3))
}

func TestGetProgressAggregates(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	category := seedCategory(t, db, "网络")
	q1 := seedQuestion(t, db, category.ID, "A")
	q2 := seedQuestion(t, db, category.ID, "A")
	q3 := seedQuestion(t, db, category.ID, "A")
	assignment := seedAssignment(t, db, admin.ID, "测验", []model.AssignmentCategory{
		{CategoryID: category.ID, QuestionCount: 3},
	})

	seedResponse(t, db, user.ID, q1.ID, assignment.ID, "A", true, model.SureCorrect)
	seedResponse(t, db, user.ID, q2.ID, assignment.ID, "B", true, model.SureIncorrect)
	seedResponse(t, db, user.ID, q3.ID, assignment.ID, "B", false, model.NotSureIncorrect)

	progress, err := svc.GetProgress(user.ID)
	require.NoError(t, err)

	overall := progress.Overall
	assert.Equal(t, 1, overall.TotalAssignments)
	assert.Equal(t, 1, overall.TotalCategories)
	assert.Equal(t, 3, overall.TotalQuestionsAttempted)
	assert.Equal(t, 1, overall.MasteredQuestions)
	assert.Equal(t, 1, overall.CorrectAnswers)
	assert.Equal(t, 2, overall.IncorrectAnswers)
	assert.Equal(t, 2, overall.ConfidentResponses)
	assert.Equal(t, 1, overall.UnsureResponses)
	assert.Equal(t, 33, overall.Accuracy)
	assert.Equal(t, 67, overall.Confidence)
	assert.Equal(t, 33, overall.Mastery)

	require.Len(t, progress.Categories, 1)
	c := progress.Categories[0]
	assert.Equal(t, "网络", c.CategoryName)
	assert.Equal(t, 3, c.TotalQuestions)
	assert.Equal(t, 3, c.QuestionsAttempted)
	assert.Equal(t, 1, c.MasteredQuestions)
	assert.Equal(t, 33, c.Accuracy)
	assert.Equal(t, 33, c.Mastery)
	assert.Equal(t, 100, c.CompletionPercentage)

	require.Len(t, progress.RecentActivity, 3)
	// 最近记录倒序排列
	assert.Equal(t, q3.ID, progress.RecentActivity[0].QuestionID)
}

func TestGetProgressCountsMasteryByResponses(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	category := seedCategory(t, db, "网络")
	q := seedQuestion(t, db, category.ID, "A")
	assignment := seedAssignment(t, db, admin.ID, "测验", []model.AssignmentCategory{
		{CategoryID: category.ID, QuestionCount: 1},
	})

	// 同一题的每条 sure_correct 记录都计入掌握数，不按题目去重
	seedResponse(t, db, user.ID, q.ID, assignment.ID, "A", true, model.SureCorrect)
	seedResponse(t, db, user.ID, q.ID, assignment.ID, "A", true, model.SureCorrect)

	progress, err := svc.GetProgress(user.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, progress.Overall.TotalQuestionsAttempted)
	assert.Equal(t, 2, progress.Overall.MasteredQuestions)
	assert.Equal(t, 100, progress.Overall.Mastery)

	require.Len(t, progress.Categories, 1)
	assert.Equal(t, 2, progress.Categories[0].MasteredQuestions)
	assert.Equal(t, 1, progress.Categories[0].QuestionsAttempted)
}

func TestGetProgressIncludesUnattemptedCategories(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	attempted := seedCategory(t, db, "网络")
	untouched := seedCategory(t, db, "数据库")
	q := seedQuestion(t, db, attempted.ID, "A")
	seedQuestion(t, db, untouched.ID, "A")
	assignment := seedAssignment(t, db, admin.ID, "测验", []model.AssignmentCategory{
		{CategoryID: attempted.ID, QuestionCount: 1},
	})

	seedResponse(t, db, user.ID, q.ID, assignment.ID, "A", true, model.SureCorrect)

	progress, err := svc.GetProgress(user.ID)
	require.NoError(t, err)
	require.Len(t, progress.Categories, 2)

	var zero *model.CategoryProgress
	for i := range progress.Categories {
		if progress.Categories[i].CategoryName == "数据库" {
			zero = &progress.Categories[i]
		}
	}
	require.NotNil(t, zero)
	assert.Equal(t, 1, zero.TotalQuestions)
	assert.Equal(t, 0, zero.QuestionsAttempted)
	assert.Equal(t, 0, zero.MasteredQuestions)
	assert.Equal(t, 0, zero.Accuracy)
	assert.Equal(t, 0, zero.CompletionPercentage)
}

func TestGetProgressEmptyUser(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	user := seedUser(t, db, "fresh@example.com", false)

	progress, err := svc.GetProgress(user.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, progress.Overall.TotalQuestionsAttempted)
	assert.Equal(t, 0, progress.Overall.Accuracy)
	assert.Equal(t, 0, progress.Overall.Mastery)
	assert.Empty(t, progress.Categories)
	assert.Empty(t, progress.RecentActivity)
}

func TestGetResultsRequiresCompletion(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	category := seedCategory(t, db, "网络")
	q := seedQuestion(t, db, category.ID, "A")
	assignment := seedAssignment(t, db, admin.ID, "测验", []model.AssignmentCategory{
		{CategoryID: category.ID, QuestionCount: 1},
	})
	seedResponse(t, db, user.ID, q.ID, assignment.ID, "A", true, model.SureCorrect)

	_, err := svc.GetResults(user.ID, assignment.ID)
	assert.ErrorIs(t, err, util.ErrAssignmentIncomplete)

	_, err = svc.GetResults(user.ID, 99999)
	assert.ErrorIs(t, err, util.ErrAssignmentNotFound)
}

func TestGetResultsDerivesFeedback(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	category := seedCategory(t, db, "网络")
	q1 := seedQuestion(t, db, category.ID, "A")
	q2 := seedQuestion(t, db, category.ID, "A")
	assignment := seedAssignment(t, db, admin.ID, "测验", []model.AssignmentCategory{
		{CategoryID: category.ID, QuestionCount: 2},
	})

	seedResponse(t, db, user.ID, q1.ID, assignment.ID, "A", false, model.NotSureCorrect)
	seedResponse(t, db, user.ID, q2.ID, assignment.ID, "B", true, model.SureIncorrect)

	now := time.Now()
	require.NoError(t, db.Create(&model.UserAssignmentCompletion{
		UserID:       user.ID,
		AssignmentID: assignment.ID,
		IsCompleted:  true,
		CompletedAt:  &now,
	}).Error)

	results, err := svc.GetResults(user.ID, assignment.ID)
	require.NoError(t, err)

	assert.Equal(t, assignment.ID, results.Assignment.ID)
	require.NotNil(t, results.CompletedAt)
	require.Len(t, results.Responses, 2)

	first := results.Responses[0]
	assert.Equal(t, q1.ID, first.QuestionID)
	assert.True(t, first.IsCorrect)
	require.NotNil(t, first.Feedback)
	assert.Equal(t, "short", first.Feedback.Type)

	second := results.Responses[1]
	assert.False(t, second.IsCorrect)
	require.NotNil(t, second.Feedback)
	assert.Equal(t, "long", second.Feedback.Type)
	assert.Equal(t, "/uploads/explain.pdf", second.Feedback.FilePath)

	assert.Equal(t, 2, results.Stats.TotalQuestions)
	assert.Equal(t, 50, results.Stats.Accuracy)
	require.Len(t, results.Categories, 1)
	assert.Equal(t, 1, results.Categories[0].NotSureCorrect)
	assert.Equal(t, 1, results.Categories[0].SureIncorrect)
}

func TestGetCompletionDetails(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	category := seedCategory(t, db, "网络")
	q1 := seedQuestion(t, db, category.ID, "A")
	seedQuestion(t, db, category.ID, "A")
	assignment := seedAssignment(t, db, admin.ID, "测验", []model.AssignmentCategory{
		{CategoryID: category.ID, QuestionCount: 2},
	})

	// 共享同一分类的另一个测试分配，没有任何作答
	other := seedAssignment(t, db, admin.ID, "另一测验", []model.AssignmentCategory{
		{CategoryID: category.ID, QuestionCount: 2},
	})

	seedResponse(t, db, user.ID, q1.ID, assignment.ID, "A", true, model.SureCorrect)

	details, err := svc.GetCompletionDetails(user.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)

	byID := make(map[uint]model.CompletionDetail, len(details))
	for _, d := range details {
		byID[d.AssignmentID] = d
	}

	d := byID[assignment.ID]
	assert.Equal(t, assignment.ID, d.AssignmentID)
	assert.False(t, d.IsCompleted)
	assert.Equal(t, 1, d.TotalCategories)
	assert.Equal(t, 2, d.TotalQuestions)
	assert.Equal(t, 1, d.MasteredQuestions)
	assert.Equal(t, 50, d.MasteryPercentage)

	// 掌握数只统计提交到该测试分配的记录，不被同分类的其他分配污染
	assert.Equal(t, 0, byID[other.ID].MasteredQuestions)
	assert.Equal(t, 0, byID[other.ID].MasteryPercentage)
}

func TestGetQuestionMastery(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	category := seedCategory(t, db, "网络")
	q := seedQuestion(t, db, category.ID, "A")
	assignment := seedAssignment(t, db, admin.ID, "测验", []model.AssignmentCategory{
		{CategoryID: category.ID, QuestionCount: 1},
	})

	seedResponse(t, db, user.ID, q.ID, assignment.ID, "B", true, model.SureIncorrect)

	mastery, err := svc.GetQuestionMastery(user.ID, q.ID)
	require.NoError(t, err)
	assert.False(t, mastery.Mastered)
	assert.Equal(t, 1, mastery.TotalAttempts)

	seedResponse(t, db, user.ID, q.ID, assignment.ID, "A", true, model.SureCorrect)

	mastery, err = svc.GetQuestionMastery(user.ID, q.ID)
	require.NoError(t, err)
	assert.True(t, mastery.Mastered)
	assert.Equal(t, 2, mastery.TotalAttempts)

	_, err = svc.GetQuestionMastery(user.ID, 99999)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestGetHistoryAndRegularUsers(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	category := seedCategory(t, db, "网络")
	q := seedQuestion(t, db, category.ID, "A")
	assignment := seedAssignment(t, db, admin.ID, "测验", []model.AssignmentCategory{
		{CategoryID: category.ID, QuestionCount: 1},
	})
	seedResponse(t, db, user.ID, q.ID, assignment.ID, "A", true, model.SureCorrect)

	history, err := svc.GetHistory(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, history.Overall.Accuracy)
	require.Len(t, history.Assignments, 1)
	entry := history.Assignments[0]
	assert.Equal(t, assignment.ID, entry.AssignmentID)
	assert.Equal(t, 100, entry.Stats.Accuracy)
	require.Len(t, entry.Categories, 1)
	assert.Equal(t, 1, entry.Categories[0].SureCorrect)

	_, err = svc.GetHistory(99999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	users, err := svc.ListRegularUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "student@example.com", users[0].Email)
	assert.Equal(t, 1, users[0].TotalQuestionsAttempted)
	assert.Equal(t, 1, users[0].TotalAssignmentsAttempted)
}
