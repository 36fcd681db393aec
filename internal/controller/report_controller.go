package controller

import (
	"errors"
	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Service *service.ReportService
}

func NewReportController(svc *service.ReportService) *ReportController {
	return &ReportController{Service: svc}
}

// @Summary 获取用户进度
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Param userId path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/user/{userId}/progress [get]
func (c *ReportController) GetProgress(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, "invalid userId")
		return
	}

	progress, err := c.Service.GetProgress(uint(userID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 获取测试分配成绩
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Param userId path int true "用户ID"
// @Param assignmentId path int true "测试分配ID"
// @Success 200 {object} util.Response
// @Router /api/user/{userId}/assignments/{assignmentId}/results [get]
func (c *ReportController) GetResults(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, "invalid userId")
		return
	}
	assignmentID, err := strconv.Atoi(ctx.Param("assignmentId"))
	if err != nil {
		util.BadRequest(ctx, "invalid assignmentId")
		return
	}

	results, err := c.Service.GetResults(uint(userID), uint(assignmentID))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssignmentNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrAssignmentIncomplete):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, results)
}

// @Summary 获取各测试分配完成概览
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Param userId path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/user/{userId}/assignments/completion-details [get]
func (c *ReportController) GetCompletionDetails(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, "invalid userId")
		return
	}

	details, err := c.Service.GetCompletionDetails(uint(userID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, details)
}

// @Summary 管理员查看用户答题历史
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Param userId path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{userId}/history [get]
func (c *ReportController) GetHistory(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, "invalid userId")
		return
	}

	entries, err := c.Service.GetHistory(uint(userID))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// @Summary 管理员查看用户对某题的掌握情况
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Param userId path int true "用户ID"
// @Param questionId path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{userId}/questions/{questionId}/mastery [get]
func (c *ReportController) GetQuestionMastery(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, "invalid userId")
		return
	}
	questionID, err := strconv.Atoi(ctx.Param("questionId"))
	if err != nil {
		util.BadRequest(ctx, "invalid questionId")
		return
	}

	mastery, err := c.Service.GetQuestionMastery(uint(userID), uint(questionID))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, mastery)
}

// @Summary 获取所有普通用户列表
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *ReportController) ListRegularUsers(ctx *gin.Context) {
	users, err := c.Service.ListRegularUsers()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, users)
}
