package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/flashcards-ai-backend/models"
	"github.com/vnkhanh/flashcards-ai-backend/schemas"
)

// Mã lỗi ghi vào generation_error_logs
const (
	ErrCodeAIBackend = "AI_BACKEND_ERROR"
	ErrCodeParse     = "PARSE_ERROR"
	ErrCodeDatabase  = "DATABASE_ERROR"
)

// GenerationResult là kết quả trả về cho POST /api/generations
type GenerationResult struct {
	GenerationID   uint                `json:"generation_id"`
	Proposals      []FlashcardProposal `json:"flashcards_proposals"`
	GeneratedCount int                 `json:"generated_count"`
}

// GenerationService điều phối pipeline: hash văn bản nguồn, gọi AI,
// parse kết quả, lưu metadata, ghi error log khi thất bại.
type GenerationService struct {
	DB        *gorm.DB
	Generator TextGenerator
}

func NewGenerationService(db *gorm.DB, generator TextGenerator) *GenerationService {
	return &GenerationService{DB: db, Generator: generator}
}

// Generate chạy trọn một lượt sinh flashcard cho userID.
// Văn bản nguồn phải có 1000-10000 ký tự, kiểm tra trước khi gọi mạng.
// Thành công: một bản ghi Generation. Thất bại: một bản ghi GenerationErrorLog
// (best-effort) và lỗi gốc được trả về nguyên vẹn cho caller.
func (s *GenerationService) Generate(ctx context.Context, userID uuid.UUID, sourceText string) (*GenerationResult, error) {
	cmd := schemas.GenerateFlashcardsCommand{SourceText: sourceText}
	if fieldErrs := cmd.Validate(); len(fieldErrs) > 0 {
		return nil, NewValidationError(fieldErrs...)
	}

	// Chỉ lưu hash, không lưu văn bản gốc
	sum := md5.Sum([]byte(sourceText))
	sourceTextHash := hex.EncodeToString(sum[:])
	sourceTextLength := len([]rune(sourceText))

	start := time.Now()

	raw, err := s.Generator.GenerateFlashcards(ctx, sourceText)
	if err != nil {
		s.logGenerationError(userID, ErrCodeAIBackend, err, sourceTextHash, sourceTextLength)
		return nil, &InternalError{Op: "gọi AI backend", Err: err}
	}

	pairs, err := parseFlashcardsJSON(raw)
	if err != nil {
		s.logGenerationError(userID, ErrCodeParse, err, sourceTextHash, sourceTextLength)
		return nil, &InternalError{Op: "parse kết quả AI", Err: err}
	}

	generation := models.Generation{
		UserID:             userID,
		Model:              s.Generator.ModelName(),
		SourceTextHash:     sourceTextHash,
		SourceTextLength:   sourceTextLength,
		GeneratedCount:     len(pairs),
		GenerationDuration: time.Since(start).Milliseconds(),
	}
	if err := s.DB.Create(&generation).Error; err != nil {
		s.logGenerationError(userID, ErrCodeDatabase, err, sourceTextHash, sourceTextLength)
		return nil, &InternalError{Op: "lưu generation", Err: err}
	}

	proposals := make([]FlashcardProposal, 0, len(pairs))
	for i, qa := range pairs {
		proposals = append(proposals, FlashcardProposal{
			ID:           i + 1,
			Front:        qa.Front,
			Back:         qa.Back,
			Source:       models.SourceAIFull,
			GenerationID: generation.ID,
			Status:       ProposalPending,
		})
	}

	return &GenerationResult{
		GenerationID:   generation.ID,
		Proposals:      proposals,
		GeneratedCount: len(pairs),
	}, nil
}

type flashcardPair struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// parseFlashcardsJSON làm sạch markdown fence rồi unmarshal theo hợp đồng
// {"flashcards":[{"front":...,"back":...}]}. Cặp rỗng bị loại bỏ.
func parseFlashcardsJSON(raw string) ([]flashcardPair, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var parsed struct {
		Flashcards []flashcardPair `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, err
	}

	pairs := make([]flashcardPair, 0, len(parsed.Flashcards))
	for _, qa := range parsed.Flashcards {
		if qa.Front == "" || qa.Back == "" {
			continue
		}
		pairs = append(pairs, qa)
	}
	return pairs, nil
}

// logGenerationError ghi bản ghi lỗi best-effort: nếu chính việc ghi log
// thất bại thì chỉ in ra console, không che lỗi gốc.
func (s *GenerationService) logGenerationError(userID uuid.UUID, code string, cause error, hash string, length int) {
	entry := models.GenerationErrorLog{
		UserID:           userID,
		ErrorCode:        code,
		ErrorMessage:     cause.Error(),
		Model:            s.Generator.ModelName(),
		SourceTextHash:   hash,
		SourceTextLength: length,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		log.Printf("Không thể ghi generation error log: %v (lỗi gốc: %v)", err, cause)
	}
}
