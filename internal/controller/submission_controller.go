package controller

import (
	"errors"
	"net/http"
	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"
	"quizdesk_backend/pkg/monitoring"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	Service *service.SubmissionService
}

func NewSubmissionController(svc *service.SubmissionService) *SubmissionController {
	return &SubmissionController{Service: svc}
}

// @Summary 提交答题
// @Tags 答题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "用户ID"
// @Param assignmentId path int true "测试分配ID"
// @Param body body service.SubmitRequest true "答题内容"
// @Success 200 {object} util.Response
// @Router /api/user/{userId}/assignments/{assignmentId}/submit [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
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

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Submit(uint(userID), uint(assignmentID), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssignmentCompleted):
			monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
			util.Error(ctx, http.StatusConflict, err.Error())
		case errors.Is(err, util.ErrQuestionNotFound):
			monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
			util.NotFound(ctx, err.Error())
		default:
			monitoring.SubmissionCounter.WithLabelValues("error").Inc()
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.SubmissionCounter.WithLabelValues("success").Inc()
	util.Success(ctx, resp)
}
