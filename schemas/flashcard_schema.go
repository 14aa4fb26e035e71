package schemas

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vnkhanh/flashcards-ai-backend/models"
)

// ======== GIỚI HẠN DÙNG CHUNG ========

const (
	FrontMaxLen = 200
	BackMaxLen  = 500

	BatchMinSize = 1
	BatchMaxSize = 50

	SourceTextMinLen = 1000
	SourceTextMaxLen = 10000
)

// FieldError mô tả lỗi validate gắn với một trường cụ thể
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ======== TẠO FLASHCARD ========

type FlashcardCreateInput struct {
	Front        string `json:"front"`
	Back         string `json:"back"`
	Source       string `json:"source"`
	GenerationID *uint  `json:"generation_id"`
}

// ValidateFrontBack trim hai mặt của flashcard rồi kiểm tra độ dài.
// Dùng chung cho tạo flashcard và sửa proposal; lỗi front/back độc lập nhau.
func ValidateFrontBack(front, back string) (string, string, []FieldError) {
	var errs []FieldError

	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)

	if front == "" {
		errs = append(errs, FieldError{Field: "front", Message: "Mặt trước không được để trống"})
	} else if utf8.RuneCountInString(front) > FrontMaxLen {
		errs = append(errs, FieldError{Field: "front", Message: "Mặt trước không được vượt quá 200 ký tự"})
	}

	if back == "" {
		errs = append(errs, FieldError{Field: "back", Message: "Mặt sau không được để trống"})
	} else if utf8.RuneCountInString(back) > BackMaxLen {
		errs = append(errs, FieldError{Field: "back", Message: "Mặt sau không được vượt quá 500 ký tự"})
	}

	return front, back, errs
}

// Validate trim front/back rồi kiểm tra độ dài, enum source và
// ràng buộc chéo source <-> generation_id. Lỗi gắn vào từng trường.
func (in *FlashcardCreateInput) Validate() []FieldError {
	front, back, errs := ValidateFrontBack(in.Front, in.Back)
	in.Front = front
	in.Back = back

	source := models.FlashcardSource(in.Source)
	if !source.IsValid() {
		errs = append(errs, FieldError{Field: "source", Message: "Source phải là một trong: ai-full, ai-edited, manual"})
		return errs
	}

	// Ràng buộc chéo: flashcard AI phải tham chiếu generation,
	// flashcard manual thì không được tham chiếu
	switch source {
	case models.SourceAIFull, models.SourceAIEdited:
		if in.GenerationID == nil {
			errs = append(errs, FieldError{Field: "generation_id", Message: "generation_id là bắt buộc với flashcard nguồn AI"})
		}
	case models.SourceManual:
		if in.GenerationID != nil {
			errs = append(errs, FieldError{Field: "generation_id", Message: "generation_id phải để trống với flashcard manual"})
		}
	}

	return errs
}

// ======== TẠO NHIỀU FLASHCARD (BATCH) ========

type FlashcardsCreateCommand struct {
	Flashcards []FlashcardCreateInput `json:"flashcards"`
}

func (c *FlashcardsCreateCommand) Validate() []FieldError {
	if len(c.Flashcards) < BatchMinSize {
		return []FieldError{{Field: "flashcards", Message: "Cần ít nhất 1 flashcard để lưu"}}
	}
	if len(c.Flashcards) > BatchMaxSize {
		return []FieldError{{Field: "flashcards", Message: "Không thể tạo quá 50 flashcard trong một lần"}}
	}

	var errs []FieldError
	for i := range c.Flashcards {
		for _, fe := range c.Flashcards[i].Validate() {
			errs = append(errs, FieldError{
				Field:   "flashcards[" + strconv.Itoa(i) + "]." + fe.Field,
				Message: fe.Message,
			})
		}
	}
	return errs
}

// ======== CẬP NHẬT FLASHCARD (PATCH) ========

// FlashcardUpdateInput: mọi trường đều tùy chọn. GenerationIDSet phân biệt
// "không gửi generation_id" với "gửi generation_id: null".
type FlashcardUpdateInput struct {
	Front        *string `json:"front"`
	Back         *string `json:"back"`
	Source       *string `json:"source"`
	GenerationID *uint   `json:"generation_id"`

	GenerationIDSet bool `json:"-"`
}

func (in *FlashcardUpdateInput) UnmarshalJSON(data []byte) error {
	type alias FlashcardUpdateInput
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	_, a.GenerationIDSet = raw["generation_id"]

	*in = FlashcardUpdateInput(a)
	return nil
}

// IsEmpty báo patch không chứa trường nào
func (in *FlashcardUpdateInput) IsEmpty() bool {
	return in.Front == nil && in.Back == nil && in.Source == nil && !in.GenerationIDSet
}

func (in *FlashcardUpdateInput) Validate() []FieldError {
	if in.IsEmpty() {
		return []FieldError{{Field: "body", Message: "Cần ít nhất một trường để cập nhật"}}
	}

	var errs []FieldError

	if in.Front != nil {
		trimmed := strings.TrimSpace(*in.Front)
		*in.Front = trimmed
		if trimmed == "" {
			errs = append(errs, FieldError{Field: "front", Message: "Mặt trước không được để trống"})
		} else if utf8.RuneCountInString(trimmed) > FrontMaxLen {
			errs = append(errs, FieldError{Field: "front", Message: "Mặt trước không được vượt quá 200 ký tự"})
		}
	}

	if in.Back != nil {
		trimmed := strings.TrimSpace(*in.Back)
		*in.Back = trimmed
		if trimmed == "" {
			errs = append(errs, FieldError{Field: "back", Message: "Mặt sau không được để trống"})
		} else if utf8.RuneCountInString(trimmed) > BackMaxLen {
			errs = append(errs, FieldError{Field: "back", Message: "Mặt sau không được vượt quá 500 ký tự"})
		}
	}

	if in.Source != nil && !models.FlashcardSource(*in.Source).IsValid() {
		errs = append(errs, FieldError{Field: "source", Message: "Source phải là một trong: ai-full, ai-edited, manual"})
		return errs
	}

	// Ràng buộc chéo chỉ áp dụng khi patch chứa cả source lẫn generation_id
	if in.Source != nil && in.GenerationIDSet {
		switch models.FlashcardSource(*in.Source) {
		case models.SourceAIFull, models.SourceAIEdited:
			if in.GenerationID == nil {
				errs = append(errs, FieldError{Field: "generation_id", Message: "generation_id là bắt buộc với flashcard nguồn AI"})
			}
		case models.SourceManual:
			if in.GenerationID != nil {
				errs = append(errs, FieldError{Field: "generation_id", Message: "generation_id phải để trống với flashcard manual"})
			}
		}
	}

	return errs
}

// ======== QUERY PARAMS CHO GET /api/flashcards ========

type FlashcardsListQuery struct {
	Page         int
	Limit        int
	Sort         string
	Order        string
	Source       string // rỗng = không lọc
	GenerationID *uint  // nil = không lọc
}

var validSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"front":      true,
	"back":       true,
}

// ParseFlashcardsListQuery ép kiểu query string và áp mặc định:
// page=1, limit=10, sort=created_at, order=desc
func ParseFlashcardsListQuery(values url.Values) (*FlashcardsListQuery, []FieldError) {
	q := &FlashcardsListQuery{
		Page:  1,
		Limit: 10,
		Sort:  "created_at",
		Order: "desc",
	}
	var errs []FieldError

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			errs = append(errs, FieldError{Field: "page", Message: "page phải là số nguyên dương"})
		} else {
			q.Page = page
		}
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			errs = append(errs, FieldError{Field: "limit", Message: "limit phải nằm trong khoảng 1 đến 100"})
		} else {
			q.Limit = limit
		}
	}

	if raw := values.Get("sort"); raw != "" {
		if !validSortColumns[raw] {
			errs = append(errs, FieldError{Field: "sort", Message: "sort phải là một trong: created_at, updated_at, front, back"})
		} else {
			q.Sort = raw
		}
	}

	if raw := values.Get("order"); raw != "" {
		if raw != "asc" && raw != "desc" {
			errs = append(errs, FieldError{Field: "order", Message: "order phải là asc hoặc desc"})
		} else {
			q.Order = raw
		}
	}

	if raw := values.Get("source"); raw != "" {
		if !models.FlashcardSource(raw).IsValid() {
			errs = append(errs, FieldError{Field: "source", Message: "Source phải là một trong: ai-full, ai-edited, manual"})
		} else {
			q.Source = raw
		}
	}

	if raw := values.Get("generation_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			errs = append(errs, FieldError{Field: "generation_id", Message: "generation_id phải là số nguyên dương"})
		} else {
			v := uint(id)
			q.GenerationID = &v
		}
	}

	return q, errs
}

// ======== THAM SỐ ID TRÊN PATH ========

// ParseIDParam ép path param thành số nguyên dương
func ParseIDParam(raw string) (uint, *FieldError) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, &FieldError{Field: "id", Message: "ID phải là số nguyên dương"}
	}
	return uint(id), nil
}

// ======== SINH FLASHCARD ========

type GenerateFlashcardsCommand struct {
	SourceText string `json:"source_text"`
}

func (c *GenerateFlashcardsCommand) Validate() []FieldError {
	n := utf8.RuneCountInString(c.SourceText)
	if n < SourceTextMinLen {
		return []FieldError{{Field: "source_text", Message: "Văn bản nguồn phải có ít nhất 1000 ký tự"}}
	}
	if n > SourceTextMaxLen {
		return []FieldError{{Field: "source_text", Message: "Văn bản nguồn không được vượt quá 10000 ký tự"}}
	}
	return nil
}
