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

func newAssignmentService(db *gorm.DB) *AssignmentService {
	return NewAssignmentService(
		db,
		repository.NewAssignmentRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewCompletionRepository(db),
	)
}

func TestCreateAssignmentValidatesQuota(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(db)

	admin := seedUser(t, db, "admin@example.com", true)
	category := seedCategory(t, db, "网络")
	seedQuestion(t, db, category.ID, "A")
	seedQuestion(t, db, category.ID, "A")

	// 配额超过分类现有题目数被拒绝
	_, err := svc.CreateAssignment(admin.ID, AssignmentRequest{
		Name: "超配额",
		Categories: []CategoryQuota{
			{CategoryID: category.ID, QuestionCount: 3},
		},
	})
	assert.ErrorIs(t, err, util.ErrQuotaExceedsCategory)

	// 不存在的分类被拒绝
	_, err = svc.CreateAssignment(admin.ID, AssignmentRequest{
		Name: "坏分类",
		Categories: []CategoryQuota{
			{CategoryID: 99999, QuestionCount: 1},
		},
	})
	assert.ErrorIs(t, err, util.ErrCategoryNotFound)

	assignment, err := svc.CreateAssignment(admin.ID, AssignmentRequest{
		Name: "合法配额",
		Categories: []CategoryQuota{
			{CategoryID: category.ID, QuestionCount: 2},
		},
	})
	require.NoError(t, err)

	view, err := svc.GetAssignment(assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, "合法配额", view.Name)
	require.Len(t, view.Categories, 1)
	assert.Equal(t, 2, view.Categories[0].QuestionCount)
	assert.Len(t, view.Categories[0].Questions, 2)
	assert.Equal(t, 2, view.TotalQuestions)
}

func TestDeliverQuestionsExcludesMastered(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	category := seedCategory(t, db, "网络")
	q1 := seedQuestion(t, db, category.ID, "A")
	q2 := seedQuestion(t, db, category.ID, "A")
	q3 := seedQuestion(t, db, category.ID, "A")
	assignment := seedAssignment(t, db, admin.ID, "测验", []model.AssignmentCategory{
		{CategoryID: category.ID, QuestionCount: 3},
	})

	// q1 已掌握：存在 sure_correct 记录
	seedResponse(t, db, user.ID, q1.ID, assignment.ID, "A", true, model.SureCorrect)
	// sure_incorrect 不算掌握
	seedResponse(t, db, user.ID, q2.ID, assignment.ID, "B", true, model.SureIncorrect)

	groups, err := svc.DeliverQuestions(user.ID, assignment.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "网络", groups[0].Category)
	require.Len(t, groups[0].Questions, 2)

	ids := []uint{groups[0].Questions[0].ID, groups[0].Questions[1].ID}
	assert.NotContains(t, ids, q1.ID)
	assert.Contains(t, ids, q2.ID)
	assert.Contains(t, ids, q3.ID)

	// 发出的题目不携带答案或反馈字段
	for _, d := range groups[0].Questions {
		assert.NotEmpty(t, d.Question)
		assert.Len(t, d.Options, 3)
	}
}

func TestDeliverQuestionsOmitsEmptyCategories(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	mastered := seedCategory(t, db, "已掌握分类")
	fresh := seedCategory(t, db, "未掌握分类")
	mq := seedQuestion(t, db, mastered.ID, "A")
	fq := seedQuestion(t, db, fresh.ID, "A")
	assignment := seedAssignment(t, db, admin.ID, "测验", []model.AssignmentCategory{
		{CategoryID: mastered.ID, QuestionCount: 1},
		{CategoryID: fresh.ID, QuestionCount: 1},
	})

	seedResponse(t, db, user.ID, mq.ID, assignment.ID, "A", true, model.SureCorrect)

	groups, err := svc.DeliverQuestions(user.ID, assignment.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "未掌握分类", groups[0].Category)
	require.Len(t, groups[0].Questions, 1)
	assert.Equal(t, fq.ID, groups[0].Questions[0].ID)
}

func TestDeliverQuestionsCapsAtQuota(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	category := seedCategory(t, db, "网络")
	for i := 0; i < 5; i++ {
		seedQuestion(t, db, category.ID, "A")
	}
	assignment := seedAssignment(t, db, admin.ID, "测验", []model.AssignmentCategory{
		{CategoryID: category.ID, QuestionCount: 2},
	})

	groups, err := svc.DeliverQuestions(user.ID, assignment.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Questions, 2)
}

func TestListUserAssignmentsFiltersFullyMastered(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(db)

	user := seedUser(t, db, "student@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	category := seedCategory(t, db, "网络")
	q1 := seedQuestion(t, db, category.ID, "A")
	q2 := seedQuestion(t, db, category.ID, "A")
	assignment := seedAssignment(t, db, admin.ID, "测验", []model.AssignmentCategory{
		{CategoryID: category.ID, QuestionCount: 2},
	})

	// 尚未掌握任何题目，测验可见
	views, err := svc.ListUserAssignments(user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, assignment.ID, views[0].ID)

	// 掌握一题后仍可见
	seedResponse(t, db, user.ID, q1.ID, assignment.ID, "A", true, model.SureCorrect)
	views, err = svc.ListUserAssignments(user.ID)
	require.NoError(t, err)
	assert.Len(t, views, 1)

	// 掌握数追平配额后不再可见
	seedResponse(t, db, user.ID, q2.ID, assignment.ID, "A", true, model.SureCorrect)
	views, err = svc.ListUserAssignments(user.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}
