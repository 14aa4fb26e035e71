package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vnkhanh/flashcards-ai-backend/schemas"
)

// Phân loại lỗi của tầng service. Controller chỉ map một lần
// sang mã HTTP, không tầng nào khác bắt rồi ném lại.

// ValidationError: dữ liệu vào sai, kèm danh sách lỗi theo từng trường (400)
type ValidationError struct {
	Fields []schemas.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "dữ liệu không hợp lệ: " + strings.Join(msgs, "; ")
}

// NewValidationError gom danh sách lỗi trường thành một ValidationError
func NewValidationError(fields ...schemas.FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// InternalError: lỗi storage hoặc AI backend, chi tiết chỉ log phía server (500)
type InternalError struct {
	Op  string // thao tác đang thực hiện
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// ErrNotFound: bản ghi không tồn tại hoặc không thuộc về người gọi.
// Hai trường hợp cố ý không phân biệt được để không lộ sự tồn tại của dữ liệu.
var ErrNotFound = errors.New("không tìm thấy bản ghi")

// AsValidationError trả về ValidationError nếu err thuộc loại đó
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
