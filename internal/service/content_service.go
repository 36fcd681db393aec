package service

import (
	"encoding/json"
	"errors"
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/util"

	"gorm.io/gorm"
)

// ContentService 题库管理：分类与题目的录入、查询
type ContentService struct {
	CategoryRepo *repository.CategoryRepository
	QuestionRepo *repository.QuestionRepository
}

func NewContentService(categoryRepo *repository.CategoryRepository, questionRepo *repository.QuestionRepository) *ContentService {
	return &ContentService{CategoryRepo: categoryRepo, QuestionRepo: questionRepo}
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *ContentService) CreateCategory(req CategoryRequest) (*model.Category, error) {
	category := &model.Category{Name: req.Name}
	if err := s.CategoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *ContentService) ListCategories() ([]repository.CategoryCountRow, error) {
	return s.CategoryRepo.FindAllWithCounts()
}

// QuestionRequest 单题录入请求
// MediaPath 和 LongContentFilePath 由控制器先经存储服务落盘后填入
type QuestionRequest struct {
	CategoryID          uint     `json:"categoryId" binding:"required"`
	Question            string   `json:"question" binding:"required"`
	Options             []string `json:"options" binding:"required,min=2"`
	CorrectAnswer       string   `json:"correctAnswer" binding:"required"`
	ShortContent        string   `json:"shortContent"`
	LongContentText     string   `json:"longContentText"`
	MediaPath           string   `json:"-"`
	LongContentFilePath string   `json:"-"`
}

func (s *ContentService) CreateQuestion(req QuestionRequest) (*model.Question, error) {
	if _, err := s.CategoryRepo.FindByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}

	optionsJSON, err := json.Marshal(req.Options)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		CategoryID:          req.CategoryID,
		Prompt:              req.Question,
		MediaPath:           req.MediaPath,
		Options:             optionsJSON,
		CorrectAnswer:       req.CorrectAnswer,
		ShortContent:        req.ShortContent,
		LongContentText:     req.LongContentText,
		LongContentFilePath: req.LongContentFilePath,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

// BulkQuestionItem 批量导入中的一道题
type BulkQuestionItem struct {
	Question        string   `json:"question" binding:"required"`
	Options         []string `json:"options" binding:"required,min=2"`
	CorrectAnswer   string   `json:"correctAnswer" binding:"required"`
	ShortContent    string   `json:"shortContent"`
	LongContentText string   `json:"longContentText"`
}

type BulkQuestionRequest struct {
	CategoryID uint               `json:"categoryId" binding:"required"`
	Questions  []BulkQuestionItem `json:"questions" binding:"required,min=1,dive"`
}

// BulkCreateQuestions 批量导入题目，返回写入行数
func (s *ContentService) BulkCreateQuestions(req BulkQuestionRequest) (int64, error) {
	if _, err := s.CategoryRepo.FindByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrCategoryNotFound
		}
		return 0, err
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for _, item := range req.Questions {
		optionsJSON, err := json.Marshal(item.Options)
		if err != nil {
			return 0, err
		}
		questions = append(questions, model.Question{
			CategoryID:      req.CategoryID,
			Prompt:          item.Question,
			Options:         optionsJSON,
			CorrectAnswer:   item.CorrectAnswer,
			ShortContent:    item.ShortContent,
			LongContentText: item.LongContentText,
		})
	}

	return s.QuestionRepo.CreateBatch(questions)
}

func (s *ContentService) ListQuestionsByCategory(categoryID uint) ([]model.Question, error) {
	if _, err := s.CategoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}
	return s.QuestionRepo.FindAllByCategoryID(categoryID)
}

func (s *ContentService) GetQuestion(id uint) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}
