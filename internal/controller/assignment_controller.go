package controller

import (
	"errors"
	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	Service *service.AssignmentService
}

func NewAssignmentController(svc *service.AssignmentService) *AssignmentController {
	return &AssignmentController{Service: svc}
}

// @Summary 创建测试分配
// @Tags 测试分配
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AssignmentRequest true "测试分配信息"
// @Success 201 {object} util.Response
// @Router /api/admin/assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.Service.CreateAssignment(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCategoryNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrQuotaExceedsCategory):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, assignment)
}

// @Summary 获取测试分配列表
// @Tags 测试分配
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/assignments [get]
func (c *AssignmentController) ListAssignments(ctx *gin.Context) {
	views, err := c.Service.ListAssignments()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, views)
}

// @Summary 获取测试分配详情
// @Tags 测试分配
// @Produce json
// @Security BearerAuth
// @Param id path int true "测试分配ID"
// @Success 200 {object} util.Response
// @Router /api/admin/assignments/{id} [get]
func (c *AssignmentController) GetAssignment(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	view, err := c.Service.GetAssignment(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrAssignmentNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary 获取用户可作答的测试分配
// @Tags 测试分配
// @Produce json
// @Security BearerAuth
// @Param userId path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/user/{userId}/assignments [get]
func (c *AssignmentController) ListUserAssignments(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, "invalid userId")
		return
	}

	views, err := c.Service.ListUserAssignments(uint(userID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, views)
}

// @Summary 按配额抽取题目
// @Tags 测试分配
// @Produce json
// @Security BearerAuth
// @Param userId path int true "用户ID"
// @Param assignmentId path int true "测试分配ID"
// @Success 200 {object} util.Response
// @Router /api/user/{userId}/assignments/{assignmentId}/questions [get]
func (c *AssignmentController) GetAssignmentQuestions(ctx *gin.Context) {
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

	questions, err := c.Service.DeliverQuestions(uint(userID), uint(assignmentID))
	if err != nil {
		if errors.Is(err, util.ErrAssignmentNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}
