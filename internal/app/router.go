package app

import (
	"quizdesk_backend/docs"
	"quizdesk_backend/internal/config"
	"quizdesk_backend/internal/middleware"
	"quizdesk_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)

		// 用户侧：路径中的 userId 必须是本人，管理员不受限
		user := authGroup.Group("/user/:userId")
		user.Use(middleware.SelfOrAdminMiddleware())
		{
			user.GET("/assignments", c.assignment.ListUserAssignments)
			user.GET("/assignments/completion-details", c.report.GetCompletionDetails)
			user.GET("/assignments/:assignmentId/questions", c.assignment.GetAssignmentQuestions)
			user.POST("/assignments/:assignmentId/submit", c.submission.Submit)
			user.GET("/assignments/:assignmentId/results", c.report.GetResults)
			user.GET("/progress", c.report.GetProgress)
		}

		// 管理员侧
		admin := authGroup.Group("/admin")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/categories", c.content.CreateCategory)
			admin.GET("/categories", c.content.ListCategories)
			admin.GET("/categories/:categoryId/questions", c.content.ListQuestionsByCategory)

			admin.POST("/questions", c.content.CreateQuestion)
			admin.POST("/questions/bulk", c.content.BulkCreateQuestions)
			admin.GET("/questions/:id", c.content.GetQuestion)

			admin.POST("/assignments", c.assignment.CreateAssignment)
			admin.GET("/assignments", c.assignment.ListAssignments)
			admin.GET("/assignments/:id", c.assignment.GetAssignment)

			admin.GET("/users", c.report.ListRegularUsers)
			admin.GET("/users/:userId/history", c.report.GetHistory)
			admin.GET("/users/:userId/questions/:questionId/mastery", c.report.GetQuestionMastery)
		}
	}
}
