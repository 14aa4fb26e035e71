package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/flashcards-ai-backend/controllers"
	"github.com/vnkhanh/flashcards-ai-backend/middleware"
	"gorm.io/gorm"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	// Trang chủ công khai, không cần đăng nhập
	api.GET("/", controllers.Homepage)

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", controllers.Logout)
		auth.POST("/logingoogle", controllers.GoogleLogin)
	}

	// Mọi route flashcard / generation đều yêu cầu phiên đăng nhập
	user := api.Group("")
	{
		user.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db))

		// Quản lý flashcard
		user.GET("/flashcards", controllers.ListFlashcards)
		user.GET("/flashcards/:id", controllers.GetFlashcard)
		user.POST("/flashcards", controllers.CreateFlashcards)
		user.PUT("/flashcards/:id", controllers.UpdateFlashcard)
		user.DELETE("/flashcards/:id", controllers.DeleteFlashcard)

		// Sinh flashcard bằng AI
		user.POST("/generations", controllers.GenerateFlashcards)

		// Duyệt proposal trước khi lưu
		user.GET("/generations/:id/proposals", controllers.ListProposals)
		user.PATCH("/generations/:id/proposals/:pid/status", controllers.UpdateProposalStatus)
		user.PUT("/generations/:id/proposals/:pid", controllers.EditProposal)
		user.DELETE("/generations/:id/proposals", controllers.DropProposals)
	}

	return r
}
