package util

import "errors"

var (
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrAssignmentCompleted  = errors.New("assignment already completed by this user")
	ErrAssignmentIncomplete = errors.New("assignment not completed by this user")
	ErrQuotaExceedsCategory = errors.New("question count exceeds questions available in category")
)
