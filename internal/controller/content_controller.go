package controller

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContentController 题库管理接口（仅管理员）
type ContentController struct {
	Service *service.ContentService
	Storage *service.StorageService
}

func NewContentController(svc *service.ContentService, storage *service.StorageService) *ContentController {
	return &ContentController{Service: svc, Storage: storage}
}

// @Summary 创建分类
// @Tags 题库管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CategoryRequest true "分类信息"
// @Success 201 {object} util.Response
// @Router /api/admin/categories [post]
func (c *ContentController) CreateCategory(ctx *gin.Context) {
	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.Service.CreateCategory(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, category)
}

// @Summary 获取分类列表
// @Tags 题库管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/categories [get]
func (c *ContentController) ListCategories(ctx *gin.Context) {
	categories, err := c.Service.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, categories)
}

// saveUploadedFile 校验 MIME 类型后交给存储服务落盘，返回可访问路径
func (c *ContentController) saveUploadedFile(ctx *gin.Context, header *multipart.FileHeader, allowedTypes []string) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	contentType, err := util.ValidateMimeType(src, allowedTypes)
	src.Close()
	if err != nil {
		return "", err
	}

	return c.Storage.SaveUpload(ctx.Request.Context(), header, contentType)
}

// @Summary 创建题目
// @Tags 题库管理
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param categoryId formData int true "分类ID"
// @Param question formData string true "题干"
// @Param options formData string true "选项 JSON 数组"
// @Param correctAnswer formData string true "正确答案"
// @Param shortContent formData string false "短反馈内容"
// @Param longContentText formData string false "长反馈文本"
// @Param questionMedia formData file false "题目媒体文件"
// @Param longContentFile formData file false "长反馈附件"
// @Success 201 {object} util.Response
// @Router /api/admin/questions [post]
func (c *ContentController) CreateQuestion(ctx *gin.Context) {
	categoryID, err := strconv.Atoi(ctx.PostForm("categoryId"))
	if err != nil {
		util.BadRequest(ctx, "invalid categoryId")
		return
	}

	var options []string
	if err := json.Unmarshal([]byte(ctx.PostForm("options")), &options); err != nil || len(options) < 2 {
		util.BadRequest(ctx, "options must be a JSON array with at least 2 entries")
		return
	}

	req := service.QuestionRequest{
		CategoryID:      uint(categoryID),
		Question:        ctx.PostForm("question"),
		Options:         options,
		CorrectAnswer:   ctx.PostForm("correctAnswer"),
		ShortContent:    ctx.PostForm("shortContent"),
		LongContentText: ctx.PostForm("longContentText"),
	}
	if req.Question == "" || req.CorrectAnswer == "" {
		util.BadRequest(ctx, "question and correctAnswer are required")
		return
	}

	if header, err := ctx.FormFile("questionMedia"); err == nil {
		path, err := c.saveUploadedFile(ctx, header, []string{"image/", "video/", "audio/"})
		if err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
		req.MediaPath = path
	}

	if header, err := ctx.FormFile("longContentFile"); err == nil {
		path, err := c.saveUploadedFile(ctx, header, []string{"image/", "video/", "audio/", "application/pdf"})
		if err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
		req.LongContentFilePath = path
	}

	question, err := c.Service.CreateQuestion(req)
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// @Summary 批量导入题目
// @Tags 题库管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.BulkQuestionRequest true "题目列表"
// @Success 201 {object} util.Response
// @Router /api/admin/questions/bulk [post]
func (c *ContentController) BulkCreateQuestions(ctx *gin.Context) {
	var req service.BulkQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	affected, err := c.Service.BulkCreateQuestions(req)
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"affectedRows": affected})
}

// @Summary 获取分类下的题目列表
// @Tags 题库管理
// @Produce json
// @Security BearerAuth
// @Param categoryId path int true "分类ID"
// @Success 200 {object} util.Response
// @Router /api/admin/categories/{categoryId}/questions [get]
func (c *ContentController) ListQuestionsByCategory(ctx *gin.Context) {
	categoryID, err := strconv.Atoi(ctx.Param("categoryId"))
	if err != nil {
		util.BadRequest(ctx, "invalid categoryId")
		return
	}

	questions, err := c.Service.ListQuestionsByCategory(uint(categoryID))
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// @Summary 获取题目详情
// @Tags 题库管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [get]
func (c *ContentController) GetQuestion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	question, err := c.Service.GetQuestion(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, question)
}
