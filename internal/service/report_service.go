package service

import (
	"errors"
	"math"
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// ReportService 进度与成绩报表，所有百分比为四舍五入整数，分母为零时取 0
type ReportService struct {
	StatsRepo      *repository.StatsRepository
	ResponseRepo   *repository.ResponseRepository
	QuestionRepo   *repository.QuestionRepository
	AssignmentRepo *repository.AssignmentRepository
	CompletionRepo *repository.CompletionRepository
	UserRepo       *repository.UserRepository
}

func NewReportService(
	statsRepo *repository.StatsRepository,
	responseRepo *repository.ResponseRepository,
	questionRepo *repository.QuestionRepository,
	assignmentRepo *repository.AssignmentRepository,
	completionRepo *repository.CompletionRepository,
	userRepo *repository.UserRepository,
) *ReportService {
	return &ReportService{
		StatsRepo:      statsRepo,
		ResponseRepo:   responseRepo,
		QuestionRepo:   questionRepo,
		AssignmentRepo: assignmentRepo,
		CompletionRepo: completionRepo,
		UserRepo:       userRepo,
	}
}

// percentage 四舍五入到整数百分比，分母为零返回 0
func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

type ProgressResponse struct {
	Overall        *model.OverallStats      `json:"overall"`
	Categories     []model.CategoryProgress `json:"categories"`
	RecentActivity []model.RecentActivity   `json:"recentActivity"`
}

// GetProgress 用户全量进度：总览、分类维度、最近答题
func (s *ReportService) GetProgress(userID uint) (*ProgressResponse, error) {
	overall, err := s.StatsRepo.FindOverallCounts(userID)
	if err != nil {
		return nil, err
	}
	overall.Accuracy = percentage(overall.CorrectAnswers, overall.TotalQuestionsAttempted)
	overall.Confidence = percentage(overall.ConfidentResponses, overall.TotalQuestionsAttempted)
	overall.Mastery = percentage(overall.MasteredQuestions, overall.TotalQuestionsAttempted)

	categories, err := s.StatsRepo.FindCategoryCounts(userID)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		c := &categories[i]
		attempts := c.CorrectAnswers + c.IncorrectAnswers
		c.Accuracy = percentage(c.CorrectAnswers, attempts)
		c.Confidence = percentage(c.ConfidentResponses, attempts)
		c.Mastery = percentage(c.MasteredQuestions, c.QuestionsAttempted)
		c.CompletionPercentage = percentage(c.QuestionsAttempted, c.TotalQuestions)
	}

	recent, err := s.ResponseRepo.FindRecentByUser(userID, 5)
	if err != nil {
		return nil, err
	}

	return &ProgressResponse{
		Overall:        overall,
		Categories:     categories,
		RecentActivity: recent,
	}, nil
}

// ResultResponse 某测试分配的成绩单
type ResultResponse struct {
	Assignment  *AssignmentView                 `json:"assignment"`
	CompletedAt *time.Time                      `json:"completedAt"`
	Responses   []ResultItem                    `json:"responses"`
	Stats       *model.AssignmentStats          `json:"stats"`
	Categories  []model.AssignmentCategoryStats `json:"categoryStats"`
}

type ResultItem struct {
	repository.ResponseDetailRow
	IsCorrect bool      `json:"isCorrect"`
	Feedback  *Feedback `json:"feedback,omitempty"`
}

// GetResults 用户在某测试分配下的成绩，仅对已完成的分配开放
// 反馈内容按存储的状态和当前题目内容重新生成
func (s *ReportService) GetResults(userID, assignmentID uint) (*ResultResponse, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}

	completion, err := s.CompletionRepo.FindByUserAndAssignment(userID, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentIncomplete
		}
		return nil, err
	}
	if !completion.IsCompleted {
		return nil, util.ErrAssignmentIncomplete
	}

	details, err := s.ResponseRepo.FindDetailsByUserAndAssignment(userID, assignmentID)
	if err != nil {
		return nil, err
	}

	items := make([]ResultItem, 0, len(details))
	for _, row := range details {
		question := model.Question{
			ShortContent:        row.ShortContent,
			LongContentText:     row.LongContentText,
			LongContentFilePath: row.LongContentFilePath,
		}
		items = append(items, ResultItem{
			ResponseDetailRow: row,
			IsCorrect:         row.Status == model.SureCorrect || row.Status == model.NotSureCorrect,
			Feedback:          BuildFeedback(row.Status, &question),
		})
	}

	stats, err := s.StatsRepo.FindAssignmentCounts(userID, assignmentID)
	if err != nil {
		return nil, err
	}
	stats.Accuracy = percentage(stats.CorrectAnswers, stats.TotalQuestions)

	categoryStats, err := s.StatsRepo.FindAssignmentCategoryCounts(userID, assignmentID)
	if err != nil {
		return nil, err
	}
	for i := range categoryStats {
		cs := &categoryStats[i]
		cs.Accuracy = percentage(cs.CorrectAnswers, cs.TotalQuestions)
		cs.Confidence = percentage(cs.SureCorrect+cs.SureIncorrect, cs.TotalQuestions)
	}

	return &ResultResponse{
		Assignment: &AssignmentView{
			ID:        assignment.ID,
			Name:      assignment.Name,
			CreatedAt: assignment.CreatedAt.Format(time.RFC3339),
		},
		CompletedAt: completion.CompletedAt,
		Responses:   items,
		Stats:       stats,
		Categories:  categoryStats,
	}, nil
}

// GetCompletionDetails 每个测试分配对该用户的完成与掌握概览
func (s *ReportService) GetCompletionDetails(userID uint) ([]model.CompletionDetail, error) {
	rows, err := s.StatsRepo.FindCompletionDetails(userID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].MasteryPercentage = percentage(rows[i].MasteredQuestions, rows[i].TotalQuestions)
	}
	return rows, nil
}

// HistoryEntry 某用户作答过的测试分配及其统计与分类分布
type HistoryEntry struct {
	model.CompletionDetail
	Stats      *model.AssignmentStats          `json:"stats"`
	Categories []model.AssignmentCategoryStats `json:"categoryStats"`
}

type HistoryResponse struct {
	Overall     *model.OverallStats `json:"overall"`
	Assignments []HistoryEntry      `json:"assignments"`
}

// GetHistory 管理员查看某用户的答题历史：总览加各测试分配的统计
func (s *ReportService) GetHistory(userID uint) (*HistoryResponse, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	overall, err := s.StatsRepo.FindOverallCounts(userID)
	if err != nil {
		return nil, err
	}
	overall.Accuracy = percentage(overall.CorrectAnswers, overall.TotalQuestionsAttempted)
	overall.Confidence = percentage(overall.ConfidentResponses, overall.TotalQuestionsAttempted)
	overall.Mastery = percentage(overall.MasteredQuestions, overall.TotalQuestionsAttempted)

	assignments, err := s.StatsRepo.FindAttemptedAssignments(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(assignments))
	for _, a := range assignments {
		stats, err := s.StatsRepo.FindAssignmentCounts(userID, a.AssignmentID)
		if err != nil {
			return nil, err
		}
		stats.Accuracy = percentage(stats.CorrectAnswers, stats.TotalQuestions)

		categoryStats, err := s.StatsRepo.FindAssignmentCategoryCounts(userID, a.AssignmentID)
		if err != nil {
			return nil, err
		}
		for i := range categoryStats {
			cs := &categoryStats[i]
			cs.Accuracy = percentage(cs.CorrectAnswers, cs.TotalQuestions)
			cs.Confidence = percentage(cs.SureCorrect+cs.SureIncorrect, cs.TotalQuestions)
		}

		entries = append(entries, HistoryEntry{
			CompletionDetail: a,
			Stats:            stats,
			Categories:       categoryStats,
		})
	}
	return &HistoryResponse{Overall: overall, Assignments: entries}, nil
}

// MasteryResponse 某用户对某题目的掌握情况
type MasteryResponse struct {
	QuestionID    uint                     `json:"questionId"`
	Mastered      bool                     `json:"mastered"`
	TotalAttempts int                      `json:"totalAttempts"`
	StatusCounts  []repository.StatusCount `json:"statusCounts"`
}

// GetQuestionMastery 掌握 = 存在至少一条 sure_correct 记录
func (s *ReportService) GetQuestionMastery(userID, questionID uint) (*MasteryResponse, error) {
	if _, err := s.QuestionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	counts, err := s.ResponseRepo.FindStatusCounts(userID, questionID)
	if err != nil {
		return nil, err
	}

	mastered := false
	total := 0
	for _, c := range counts {
		total += c.AttemptCount
		if c.Status == model.SureCorrect {
			mastered = true
		}
	}

	return &MasteryResponse{
		QuestionID:    questionID,
		Mastered:      mastered,
		TotalAttempts: total,
		StatusCounts:  counts,
	}, nil
}

// ListRegularUsers 列出所有非管理员用户及答题概况
func (s *ReportService) ListRegularUsers() ([]repository.RegularUserRow, error) {
	return s.UserRepo.FindRegularUsers()
}
