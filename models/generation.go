package models

import (
	"time"

	"github.com/google/uuid"
)

// Generation lưu metadata của một lần gọi AI sinh flashcard.
// Không lưu văn bản gốc, chỉ lưu hash để bảo vệ quyền riêng tư.
// Bản ghi bất biến sau khi tạo.
type Generation struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	User   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Model              string `gorm:"size:100;not null" json:"model"`
	SourceTextHash     string `gorm:"size:32;not null" json:"source_text_hash"`
	SourceTextLength   int    `gorm:"not null" json:"source_text_length"`
	GeneratedCount     int    `gorm:"not null" json:"generated_count"`
	GenerationDuration int64  `gorm:"not null" json:"generation_duration"` // mili giây

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// GenerationErrorLog ghi nhận lỗi của pipeline sinh flashcard.
// Chỉ ghi thêm, không bao giờ cập nhật.
type GenerationErrorLog struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	User   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	ErrorCode        string `gorm:"size:100;not null" json:"error_code"`
	ErrorMessage     string `gorm:"type:text;not null" json:"error_message"`
	Model            string `gorm:"size:100;not null" json:"model"`
	SourceTextHash   string `gorm:"size:32;not null" json:"source_text_hash"`
	SourceTextLength int    `gorm:"not null" json:"source_text_length"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
