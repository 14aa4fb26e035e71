package models

import (
	"time"

	"github.com/google/uuid"
)

type FlashcardSource string

const (
	SourceAIFull   FlashcardSource = "ai-full"   // AI sinh, giữ nguyên
	SourceAIEdited FlashcardSource = "ai-edited" // AI sinh, người dùng đã sửa
	SourceManual   FlashcardSource = "manual"    // Người dùng tự tạo
)

// IsValid kiểm tra giá trị source có nằm trong enum không
func (s FlashcardSource) IsValid() bool {
	switch s {
	case SourceAIFull, SourceAIEdited, SourceManual:
		return true
	}
	return false
}

type Flashcard struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	User   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Front  string          `gorm:"size:200;not null" json:"front"`
	Back   string          `gorm:"size:500;not null" json:"back"`
	Source FlashcardSource `gorm:"type:varchar(20);not null" json:"source"`

	// NULL khi source = manual, bắt buộc khi source = ai-full / ai-edited
	GenerationID *uint       `gorm:"index" json:"generation_id"`
	Generation   *Generation `gorm:"constraint:OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
