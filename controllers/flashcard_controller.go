package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/flashcards-ai-backend/schemas"
	"github.com/vnkhanh/flashcards-ai-backend/services"
)

// ======== API QUẢN LÝ FLASHCARD ========

// GET /api/flashcards?page&limit&sort&order&source&generation_id
func ListFlashcards(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query, fieldErrs := schemas.ParseFlashcardsListQuery(c.Request.URL.Query())
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Tham số truy vấn không hợp lệ",
			"details": fieldErrs,
		})
		return
	}

	result, err := services.NewFlashcardService(db).List(userID, query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GET /api/flashcards/:id
func GetFlashcard(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, fieldErr := schemas.ParseIDParam(c.Param("id"))
	if fieldErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
		return
	}

	flashcard, err := services.NewFlashcardService(db).GetByID(userID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, flashcard)
}

// POST /api/flashcards — tạo 1-50 flashcard trong một lần
func CreateFlashcards(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var cmd schemas.FlashcardsCreateCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body không phải JSON hợp lệ"})
		return
	}

	flashcards, err := services.NewFlashcardService(db).CreateBatch(userID, &cmd)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"flashcards": flashcards})
}

// PUT /api/flashcards/:id — patch từng phần
func UpdateFlashcard(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, fieldErr := schemas.ParseIDParam(c.Param("id"))
	if fieldErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
		return
	}

	var patch schemas.FlashcardUpdateInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body không phải JSON hợp lệ"})
		return
	}

	flashcard, err := services.NewFlashcardService(db).Update(userID, id, &patch)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, flashcard)
}

// DELETE /api/flashcards/:id
func DeleteFlashcard(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, fieldErr := schemas.ParseIDParam(c.Param("id"))
	if fieldErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
		return
	}

	deleted, err := services.NewFlashcardService(db).Delete(userID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy flashcard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã xoá flashcard"})
}
