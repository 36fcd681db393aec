package service

import (
	"errors"
	"math/rand"
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// AssignmentService 测试分配的创建、查询与按配额发题
type AssignmentService struct {
	DB             *gorm.DB
	AssignmentRepo *repository.AssignmentRepository
	CategoryRepo   *repository.CategoryRepository
	QuestionRepo   *repository.QuestionRepository
	CompletionRepo *repository.CompletionRepository
}

func NewAssignmentService(
	db *gorm.DB,
	assignmentRepo *repository.AssignmentRepository,
	categoryRepo *repository.CategoryRepository,
	questionRepo *repository.QuestionRepository,
	completionRepo *repository.CompletionRepository,
) *AssignmentService {
	return &AssignmentService{
		DB:             db,
		AssignmentRepo: assignmentRepo,
		CategoryRepo:   categoryRepo,
		QuestionRepo:   questionRepo,
		CompletionRepo: completionRepo,
	}
}

type CategoryQuota struct {
	CategoryID    uint `json:"categoryId" binding:"required"`
	QuestionCount int  `json:"questionCount" binding:"required,min=1"`
}

type AssignmentRequest struct {
	Name       string          `json:"name" binding:"required"`
	Categories []CategoryQuota `json:"categories" binding:"required,min=1,dive"`
}

// CreateAssignment 创建测试分配及其分类配额
// 配额不得超过该分类现有题目数，全部写入在一个事务内完成
func (s *AssignmentService) CreateAssignment(adminID uint, req AssignmentRequest) (*model.TestAssignment, error) {
	for _, quota := range req.Categories {
		if _, err := s.CategoryRepo.FindByID(quota.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrCategoryNotFound
			}
			return nil, err
		}
		available, err := s.QuestionRepo.CountByCategoryID(quota.CategoryID)
		if err != nil {
			return nil, err
		}
		if int64(quota.QuestionCount) > available {
			return nil, util.ErrQuotaExceedsCategory
		}
	}

	assignment := &model.TestAssignment{AdminID: adminID, Name: req.Name}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.AssignmentRepo.Create(tx, assignment); err != nil {
			return err
		}
		quotas := make([]model.AssignmentCategory, 0, len(req.Categories))
		for _, quota := range req.Categories {
			quotas = append(quotas, model.AssignmentCategory{
				AssignmentID:  assignment.ID,
				CategoryID:    quota.CategoryID,
				QuestionCount: quota.QuestionCount,
			})
		}
		return s.AssignmentRepo.CreateQuotas(tx, quotas)
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// AssignmentView 测试分配及其配额明细
type AssignmentView struct {
	ID             uint                          `json:"id"`
	Name           string                        `json:"name"`
	CreatedAt      string                        `json:"createdAt"`
	Categories     []repository.CategoryQuotaRow `json:"categories"`
	TotalQuestions int                           `json:"totalQuestions"`
}

func (s *AssignmentService) buildView(assignment *model.TestAssignment) (*AssignmentView, error) {
	quotas, err := s.AssignmentRepo.FindCategoryQuotas(assignment.ID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, q := range quotas {
		total += q.QuestionCount
	}
	return &AssignmentView{
		ID:             assignment.ID,
		Name:           assignment.Name,
		CreatedAt:      assignment.CreatedAt.Format(time.RFC3339),
		Categories:     quotas,
		TotalQuestions: total,
	}, nil
}

func (s *AssignmentService) ListAssignments() ([]AssignmentView, error) {
	assignments, err := s.AssignmentRepo.FindAll()
	if err != nil {
		return nil, err
	}
	views := make([]AssignmentView, 0, len(assignments))
	for i := range assignments {
		view, err := s.buildView(&assignments[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// QuestionPreview 详情页中的题目预览，带解析后的选项
type QuestionPreview struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// AssignmentDetailCategory 配额及该分类下不超过配额数量的题目预览
type AssignmentDetailCategory struct {
	repository.CategoryQuotaRow
	Questions []QuestionPreview `json:"questions"`
}

type AssignmentDetail struct {
	ID             uint                       `json:"id"`
	Name           string                     `json:"name"`
	CreatedAt      string                     `json:"createdAt"`
	Categories     []AssignmentDetailCategory `json:"categories"`
	TotalQuestions int                        `json:"totalQuestions"`
}

func (s *AssignmentService) GetAssignment(id uint) (*AssignmentDetail, error) {
	assignment, err := s.AssignmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}

	quotas, err := s.AssignmentRepo.FindCategoryQuotas(assignment.ID)
	if err != nil {
		return nil, err
	}

	detail := &AssignmentDetail{
		ID:         assignment.ID,
		Name:       assignment.Name,
		CreatedAt:  assignment.CreatedAt.Format(time.RFC3339),
		Categories: make([]AssignmentDetailCategory, 0, len(quotas)),
	}
	for _, quota := range quotas {
		questions, err := s.QuestionRepo.FindAllByCategoryID(quota.CategoryID)
		if err != nil {
			return nil, err
		}
		take := quota.QuestionCount
		if take > len(questions) {
			take = len(questions)
		}
		previews := make([]QuestionPreview, 0, take)
		for _, q := range questions[:take] {
			previews = append(previews, QuestionPreview{
				ID:       q.ID,
				Question: q.Prompt,
				Options:  q.OptionList(),
			})
		}
		detail.Categories = append(detail.Categories, AssignmentDetailCategory{
			CategoryQuotaRow: quota,
			Questions:        previews,
		})
		detail.TotalQuestions += quota.QuestionCount
	}
	return detail, nil
}

// ListUserAssignments 列出对该用户仍可作答的测试分配
// 可作答 = 至少有一个分类配额尚未被 sure_correct 记录数填满
func (s *AssignmentService) ListUserAssignments(userID uint) ([]AssignmentView, error) {
	assignments, err := s.AssignmentRepo.FindAvailableForUser(userID)
	if err != nil {
		return nil, err
	}
	views := make([]AssignmentView, 0, len(assignments))
	for i := range assignments {
		view, err := s.buildView(&assignments[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// DeliveryQuestion 发给考生的题目视图，不含答案与反馈内容
type DeliveryQuestion struct {
	ID        uint     `json:"id"`
	Question  string   `json:"question"`
	MediaPath string   `json:"questionMediaPath,omitempty"`
	Options   []string `json:"options"`
}

// DeliveryGroup 按分类分组的发题结果
type DeliveryGroup struct {
	CategoryID uint               `json:"categoryId"`
	Category   string             `json:"category"`
	Questions  []DeliveryQuestion `json:"questions"`
}

// DeliverQuestions 按分类配额抽取该用户未掌握的题目，组内随机排序
// 某分类已无未掌握题目时整组跳过；抽取数不超过配额与剩余题数的较小值
func (s *AssignmentService) DeliverQuestions(userID, assignmentID uint) ([]DeliveryGroup, error) {
	if _, err := s.AssignmentRepo.FindByID(assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}

	quotas, err := s.AssignmentRepo.FindCategoryQuotas(assignmentID)
	if err != nil {
		return nil, err
	}

	groups := make([]DeliveryGroup, 0, len(quotas))
	for _, quota := range quotas {
		questions, err := s.QuestionRepo.FindUnmasteredByCategory(userID, quota.CategoryID)
		if err != nil {
			return nil, err
		}
		if len(questions) == 0 {
			continue
		}

		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})

		take := quota.QuestionCount
		if take > len(questions) {
			take = len(questions)
		}
		picked := make([]DeliveryQuestion, 0, take)
		for _, q := range questions[:take] {
			picked = append(picked, DeliveryQuestion{
				ID:        q.ID,
				Question:  q.Prompt,
				MediaPath: q.MediaPath,
				Options:   q.OptionList(),
			})
		}
		groups = append(groups, DeliveryGroup{
			CategoryID: quota.CategoryID,
			Category:   quota.CategoryName,
			Questions:  picked,
		})
	}

	return groups, nil
}
