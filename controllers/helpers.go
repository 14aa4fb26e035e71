package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vnkhanh/flashcards-ai-backend/services"
)

// currentUserID lấy user id do AuthMiddleware đặt vào context
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userUUID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Không tìm thấy user_id"})
		return uuid.Nil, false
	}
	return userUUID, true
}

// handleServiceError map lỗi của tầng service sang mã HTTP, đúng một nơi duy nhất:
// ValidationError -> 400 kèm danh sách lỗi theo trường, ErrNotFound -> 404,
// còn lại -> 500 với thông báo chung, chi tiết chỉ ghi log phía server.
func handleServiceError(c *gin.Context, err error) {
	if ve, ok := services.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dữ liệu không hợp lệ",
			"details": ve.Fields,
		})
		return
	}

	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bản ghi"})
		return
	}

	log.Printf("Lỗi hệ thống tại %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Đã xảy ra lỗi hệ thống, vui lòng thử lại sau"})
}
