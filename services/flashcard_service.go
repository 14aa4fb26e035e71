package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/flashcards-ai-backend/models"
	"github.com/vnkhanh/flashcards-ai-backend/schemas"
)

// Pagination đi kèm mọi kết quả phân trang
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type FlashcardListResult struct {
	Data       []models.Flashcard `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

// FlashcardService: CRUD flashcard, mọi thao tác đều gắn điều kiện
// user_id của người gọi nên dữ liệu hai người dùng không bao giờ chạm nhau.
type FlashcardService struct {
	DB *gorm.DB
}

func NewFlashcardService(db *gorm.DB) *FlashcardService {
	return &FlashcardService{DB: db}
}

// List trả về một trang flashcard. Total đếm trước khi cắt trang.
// Lọc generation_id không kiểm tra chủ sở hữu của generation: id của người
// khác chỉ cho ra trang rỗng vì điều kiện user_id đã loại hết bản ghi.
func (s *FlashcardService) List(userID uuid.UUID, q *schemas.FlashcardsListQuery) (*FlashcardListResult, error) {
	query := s.DB.Model(&models.Flashcard{}).Where("user_id = ?", userID)

	if q.Source != "" {
		query = query.Where("source = ?", q.Source)
	}
	if q.GenerationID != nil {
		query = query.Where("generation_id = ?", *q.GenerationID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, &InternalError{Op: "đếm flashcard", Err: err}
	}

	offset := (q.Page - 1) * q.Limit

	var flashcards []models.Flashcard
	if err := query.
		Order(q.Sort + " " + strings.ToUpper(q.Order)).
		Offset(offset).
		Limit(q.Limit).
		Find(&flashcards).Error; err != nil {
		return nil, &InternalError{Op: "lấy danh sách flashcard", Err: err}
	}

	return &FlashcardListResult{
		Data: flashcards,
		Pagination: Pagination{
			Page:  q.Page,
			Limit: q.Limit,
			Total: total,
		},
	}, nil
}

// GetByID trả về ErrNotFound khi flashcard không tồn tại hoặc thuộc người khác
func (s *FlashcardService) GetByID(userID uuid.UUID, id uint) (*models.Flashcard, error) {
	var flashcard models.Flashcard
	err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&flashcard).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &InternalError{Op: "lấy flashcard", Err: err}
	}
	return &flashcard, nil
}

// CreateBatch chèn 1-50 flashcard trong một transaction.
// Mọi generation_id được tham chiếu phải tồn tại và thuộc về người gọi,
// nếu không cả batch thất bại, không chèn bản ghi nào.
func (s *FlashcardService) CreateBatch(userID uuid.UUID, cmd *schemas.FlashcardsCreateCommand) ([]models.Flashcard, error) {
	if fieldErrs := cmd.Validate(); len(fieldErrs) > 0 {
		return nil, NewValidationError(fieldErrs...)
	}

	var generationIDs []uint
	for _, in := range cmd.Flashcards {
		if in.GenerationID != nil {
			generationIDs = append(generationIDs, *in.GenerationID)
		}
	}
	if err := s.validateGenerationIDs(userID, generationIDs); err != nil {
		return nil, err
	}

	flashcards := make([]models.Flashcard, 0, len(cmd.Flashcards))
	for _, in := range cmd.Flashcards {
		flashcards = append(flashcards, models.Flashcard{
			UserID:       userID,
			Front:        in.Front,
			Back:         in.Back,
			Source:       models.FlashcardSource(in.Source),
			GenerationID: in.GenerationID,
		})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&flashcards).Error
	})
	if err != nil {
		return nil, &InternalError{Op: "tạo flashcard", Err: err}
	}

	return flashcards, nil
}

// Update vá từng phần: chỉ trường được gửi lên mới thay đổi,
// updated_at luôn được làm mới. Trả ErrNotFound khi id không tồn tại
// hoặc không thuộc người gọi (hai trường hợp không phân biệt được).
func (s *FlashcardService) Update(userID uuid.UUID, id uint, patch *schemas.FlashcardUpdateInput) (*models.Flashcard, error) {
	if fieldErrs := patch.Validate(); len(fieldErrs) > 0 {
		return nil, NewValidationError(fieldErrs...)
	}

	flashcard, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Front != nil {
		updates["front"] = *patch.Front
	}
	if patch.Back != nil {
		updates["back"] = *patch.Back
	}
	if patch.Source != nil {
		updates["source"] = *patch.Source
	}
	if patch.GenerationIDSet {
		if patch.GenerationID != nil {
			if err := s.validateGenerationIDs(userID, []uint{*patch.GenerationID}); err != nil {
				return nil, err
			}
		}
		updates["generation_id"] = patch.GenerationID
	}

	if err := s.DB.Model(flashcard).Updates(updates).Error; err != nil {
		return nil, &InternalError{Op: "cập nhật flashcard", Err: err}
	}

	return s.GetByID(userID, id)
}

// Delete trả về false (không phải lỗi) khi id không tồn tại
// hoặc không thuộc người gọi
func (s *FlashcardService) Delete(userID uuid.UUID, id uint) (bool, error) {
	result := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Flashcard{})
	if result.Error != nil {
		return false, &InternalError{Op: "xoá flashcard", Err: result.Error}
	}
	return result.RowsAffected > 0, nil
}

// validateGenerationIDs kiểm tra mọi generation id đều tồn tại và thuộc về
// userID. Id vi phạm được nêu đích danh trong lỗi trả về.
func (s *FlashcardService) validateGenerationIDs(userID uuid.UUID, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	unique := map[uint]bool{}
	for _, id := range ids {
		unique[id] = true
	}
	checkIDs := make([]uint, 0, len(unique))
	for id := range unique {
		checkIDs = append(checkIDs, id)
	}

	var existing []uint
	err := s.DB.Model(&models.Generation{}).
		Where("id IN ? AND user_id = ?", checkIDs, userID).
		Pluck("id", &existing).Error
	if err != nil {
		return &InternalError{Op: "kiểm tra generation_id", Err: err}
	}

	found := map[uint]bool{}
	for _, id := range existing {
		found[id] = true
	}

	var missing []uint
	for _, id := range checkIDs {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	parts := make([]string, 0, len(missing))
	for _, id := range missing {
		parts = append(parts, fmt.Sprint(id))
	}
	return NewValidationError(schemas.FieldError{
		Field:   "generation_id",
		Message: "generation_id không tồn tại hoặc không thuộc về bạn: " + strings.Join(parts, ", "),
	})
}
