package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/flashcards-ai-backend/schemas"
	"github.com/vnkhanh/flashcards-ai-backend/services"
)

// ======== API DUYỆT PROPOSAL ========
// Phiên duyệt nằm hoàn toàn trong bộ nhớ; chỉ khi người dùng lưu qua
// POST /api/flashcards thì proposal mới thành flashcard thật.

// GET /api/generations/:id/proposals?status=accepted
func ListProposals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	generationID, fieldErr := schemas.ParseIDParam(c.Param("id"))
	if fieldErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
		return
	}

	var (
		proposals []services.FlashcardProposal
		err       error
	)
	switch c.Query("status") {
	case "":
		proposals, err = Review.All(generationID, userID)
	case string(services.ProposalAccepted):
		proposals, err = Review.Accepted(generationID, userID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chỉ hỗ trợ lọc status=accepted"})
		return
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposals": proposals,
		"count":     len(proposals),
	})
}

// DELETE /api/generations/:id/proposals — kết thúc phiên duyệt và giải
// phóng bộ nhớ của nó. Client gọi sau khi đã lưu (hoặc bỏ) các proposal.
func DropProposals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	generationID, fieldErr := schemas.ParseIDParam(c.Param("id"))
	if fieldErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
		return
	}

	if !Review.Drop(generationID, userID) {
		handleServiceError(c, services.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã kết thúc phiên duyệt"})
}

type proposalStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /api/generations/:id/proposals/:pid/status
func UpdateProposalStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	generationID, fieldErr := schemas.ParseIDParam(c.Param("id"))
	if fieldErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
		return
	}
	proposalID, fieldErr := schemas.ParseIDParam(c.Param("pid"))
	if fieldErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
		return
	}

	var input proposalStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body không phải JSON hợp lệ"})
		return
	}

	proposal, err := Review.SetStatus(generationID, userID, int(proposalID), services.ProposalStatus(input.Status))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

type proposalEditInput struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// PUT /api/generations/:id/proposals/:pid — sửa nội dung proposal,
// source tự chuyển thành ai-edited
func EditProposal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	generationID, fieldErr := schemas.ParseIDParam(c.Param("id"))
	if fieldErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
		return
	}
	proposalID, fieldErr := schemas.ParseIDParam(c.Param("pid"))
	if fieldErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
		return
	}

	var input proposalEditInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body không phải JSON hợp lệ"})
		return
	}

	proposal, err := Review.Edit(generationID, userID, int(proposalID), input.Front, input.Back)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}
