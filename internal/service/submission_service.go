package service

import (
	"errors"
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// SubmissionService 答题提交引擎
// 整批提交在一个事务内完成：已完成校验、逐题判定、追加记录、落完成标记，
// 任一环节失败则全部回滚，不留半批数据。
type SubmissionService struct {
	DB             *gorm.DB
	QuestionRepo   *repository.QuestionRepository
	ResponseRepo   *repository.ResponseRepository
	CompletionRepo *repository.CompletionRepository
}

func NewSubmissionService(
	db *gorm.DB,
	questionRepo *repository.QuestionRepository,
	responseRepo *repository.ResponseRepository,
	completionRepo *repository.CompletionRepository,
) *SubmissionService {
	return &SubmissionService{
		DB:             db,
		QuestionRepo:   questionRepo,
		ResponseRepo:   responseRepo,
		CompletionRepo: completionRepo,
	}
}

type ResponseItem struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
	IsSure     bool   `json:"isSure"`
}

type SubmitRequest struct {
	Responses []ResponseItem `json:"responses" binding:"required,min=1,dive"`
}

// Feedback 按答题状态生成的反馈内容
// sure_correct 无反馈；not_sure_correct 给短内容；任何答错给长内容（文本+附件）。
type Feedback struct {
	Type     string `json:"type"`
	Content  string `json:"content,omitempty"`
	FilePath string `json:"filePath,omitempty"`
}

type SubmitResult struct {
	QuestionID    uint                 `json:"questionId"`
	UserAnswer    string               `json:"userAnswer"`
	IsSure        bool                 `json:"isSure"`
	Status        model.ResponseStatus `json:"status"`
	IsCorrect     bool                 `json:"isCorrect"`
	CorrectAnswer string               `json:"correctAnswer"`
	Feedback      *Feedback            `json:"feedback,omitempty"`
}

type SubmitResponse struct {
	Results             []SubmitResult `json:"results"`
	AssignmentCompleted bool           `json:"assignmentCompleted"`
}

// BuildFeedback 由状态和题目内容生成反馈，sure_correct 返回 nil
func BuildFeedback(status model.ResponseStatus, question *model.Question) *Feedback {
	switch status {
	case model.SureCorrect:
		return nil
	case model.NotSureCorrect:
		return &Feedback{Type: "short", Content: question.ShortContent}
	default:
		return &Feedback{
			Type:     "long",
			Content:  question.LongContentText,
			FilePath: question.LongContentFilePath,
		}
	}
}

// Submit 处理一批答题提交
// 对已完成的测试分配直接拒绝；逐题判定并追加记录；
// 整批写入成功后以原子条件更新落下完成标记。
func (s *SubmissionService) Submit(userID, assignmentID uint, req SubmitRequest) (*SubmitResponse, error) {
	completion, err := s.CompletionRepo.FindByUserAndAssignment(userID, assignmentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if completion != nil && completion.IsCompleted {
		return nil, util.ErrAssignmentCompleted
	}

	results := make([]SubmitResult, 0, len(req.Responses))
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Responses {
			var question model.Question
			if err := tx.First(&question, item.QuestionID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return util.ErrQuestionNotFound
				}
				return err
			}

			isCorrect := item.Answer == question.CorrectAnswer
			status := model.ClassifyResponse(isCorrect, item.IsSure)

			response := &model.UserResponse{
				UserID:       userID,
				QuestionID:   question.ID,
				AssignmentID: assignmentID,
				Answer:       item.Answer,
				IsSure:       item.IsSure,
				Status:       status,
			}
			if err := s.ResponseRepo.Create(tx, response); err != nil {
				return err
			}

			results = append(results, SubmitResult{
				QuestionID:    question.ID,
				UserAnswer:    item.Answer,
				IsSure:        item.IsSure,
				Status:        status,
				IsCorrect:     isCorrect,
				CorrectAnswer: question.CorrectAnswer,
				Feedback:      BuildFeedback(status, &question),
			})
		}

		return s.CompletionRepo.MarkCompleted(tx, userID, assignmentID, time.Now())
	})
	if err != nil {
		return nil, err
	}

	return &SubmitResponse{
		Results:             results,
		AssignmentCompleted: true,
	}, nil
}
