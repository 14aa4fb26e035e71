package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/flashcards-ai-backend/schemas"
	"github.com/vnkhanh/flashcards-ai-backend/services"
)

// Review giữ các phiên duyệt proposal đang mở, dùng chung cho cả process
var Review = services.NewReviewManager()

// generator cho phép test thay AI backend thật bằng bản giả lập
var generator services.TextGenerator

func SetTextGenerator(g services.TextGenerator) {
	generator = g
}

func aiGenerator() services.TextGenerator {
	if generator != nil {
		return generator
	}
	return services.NewGeminiGenerator()
}

// ======== API SINH FLASHCARD ========

// POST /api/generations — body {"source_text": "..."} (1000-10000 ký tự)
func GenerateFlashcards(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var cmd schemas.GenerateFlashcardsCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body không phải JSON hợp lệ"})
		return
	}

	svc := services.NewGenerationService(db, aiGenerator())
	result, err := svc.Generate(c.Request.Context(), userID, cmd.SourceText)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	// Mở phiên duyệt để người dùng accept/reject/sửa trước khi lưu
	Review.Start(result.GenerationID, userID, result.Proposals)

	c.JSON(http.StatusCreated, result)
}
