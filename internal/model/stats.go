package model

import "time"

// OverallStats 用户全量答题统计（按答题记录计数，不去重）
type OverallStats struct {
	TotalAssignments        int `json:"totalAssignments"`
	TotalCategories         int `json:"totalCategories"`
	TotalQuestionsAttempted int `json:"totalQuestionsAttempted"`
	MasteredQuestions       int `json:"masteredQuestions"`
	CorrectAnswers          int `json:"correctAnswers"`
	IncorrectAnswers        int `json:"incorrectAnswers"`
	ConfidentResponses      int `json:"confidentResponses"`
	UnsureResponses         int `json:"unsureResponses"`
	Accuracy                int `json:"accuracy"`
	Confidence              int `json:"confidence"`
	Mastery                 int `json:"mastery"`
}

// CategoryProgress 分类维度的进度汇总
type CategoryProgress struct {
	CategoryID           uint   `json:"categoryId"`
	CategoryName         string `json:"categoryName"`
	TotalQuestions       int    `json:"totalQuestions"`
	QuestionsAttempted   int    `json:"questionsAttempted"`
	MasteredQuestions    int    `json:"masteredQuestions"`
	CorrectAnswers       int    `json:"correctAnswers"`
	IncorrectAnswers     int    `json:"incorrectAnswers"`
	ConfidentResponses   int    `json:"confidentResponses"`
	Accuracy             int    `json:"accuracy"`
	Confidence           int    `json:"confidence"`
	Mastery              int    `json:"mastery"`
	CompletionPercentage int    `json:"completionPercentage"`
}

// AssignmentStats 某测试分配下的答题汇总
type AssignmentStats struct {
	TotalQuestions     int `json:"totalQuestions"`
	CorrectAnswers     int `json:"correctAnswers"`
	IncorrectAnswers   int `json:"incorrectAnswers"`
	ConfidentResponses int `json:"confidentResponses"`
	UnsureResponses    int `json:"unsureResponses"`
	Accuracy           int `json:"accuracy"`
}

// AssignmentCategoryStats 某测试分配下按分类的状态分布
type AssignmentCategoryStats struct {
	CategoryID       uint   `json:"categoryId"`
	CategoryName     string `json:"categoryName"`
	TotalQuestions   int    `json:"totalQuestions"`
	CorrectAnswers   int    `json:"correctAnswers"`
	IncorrectAnswers int    `json:"incorrectAnswers"`
	SureCorrect      int    `json:"sureCorrect"`
	NotSureCorrect   int    `json:"notSureCorrect"`
	SureIncorrect    int    `json:"sureIncorrect"`
	NotSureIncorrect int    `json:"notSureIncorrect"`
	Accuracy         int    `json:"accuracy"`
	Confidence       int    `json:"confidence"`
}

// RecentActivity 最近一条答题记录（带题目上下文）
type RecentActivity struct {
	ResponseID    uint           `json:"responseId"`
	QuestionID    uint           `json:"questionId"`
	Question      string         `json:"question"`
	Category      string         `json:"category"`
	UserAnswer    string         `json:"userAnswer"`
	CorrectAnswer string         `json:"correctAnswer"`
	Status        ResponseStatus `json:"status"`
	IsCorrect     bool           `json:"isCorrect"`
	ResponseTime  time.Time      `json:"responseTime"`
}

// CompletionDetail 某测试分配对某用户的完成概览
type CompletionDetail struct {
	AssignmentID      uint       `json:"id"`
	Name              string     `json:"name"`
	CreatedAt         time.Time  `json:"createdAt"`
	IsCompleted       bool       `json:"isCompleted"`
	CompletedAt       *time.Time `json:"completedAt"`
	TotalCategories   int        `json:"totalCategories"`
	TotalQuestions    int        `json:"totalQuestions"`
	MasteredQuestions int        `json:"masteredQuestions"`
	MasteryPercentage int        `json:"masteryPercentage"`
}
