package services

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextGenerator trừu tượng hóa AI backend sinh flashcard,
// để test có thể thay bằng generator giả lập.
type TextGenerator interface {
	// GenerateFlashcards nhận văn bản nguồn, trả về chuỗi JSON thô
	// theo hợp đồng {"flashcards":[{"front":...,"back":...}]}
	GenerateFlashcards(ctx context.Context, sourceText string) (string, error)
	// ModelName trả về định danh model để ghi vào metadata
	ModelName() string
}

// System instruction cố định mô tả tiêu chuẩn soạn flashcard
const flashcardSystemInstruction = `Bạn là chuyên gia soạn nội dung học tập, chuyên tạo flashcard chất lượng cao.

Nhiệm vụ của bạn là phân tích văn bản được cung cấp và tạo các flashcard hiệu quả giúp người học ghi nhớ khái niệm, sự kiện và mối liên hệ quan trọng.

Tiêu chuẩn soạn flashcard:
1. Câu hỏi rõ ràng, ngắn gọn, kiểm tra mức độ hiểu
2. Câu trả lời đầy đủ và chính xác
3. Tập trung vào khái niệm và sự kiện quan trọng nhất
4. Đa dạng kiểu câu hỏi (định nghĩa, giải thích, ví dụ, vận dụng)
5. Câu hỏi cụ thể, không mơ hồ
6. Câu trả lời đầy đủ nhưng không quá dài

Tạo từ 2 đến 10 flashcard tùy độ dài và độ phức tạp của nội dung.
Mỗi flashcard gồm "front" (câu hỏi) và "back" (câu trả lời).

Chỉ trả về JSON hợp lệ đúng cấu trúc {"flashcards":[{"front":"...","back":"..."}]}, không thêm bất kỳ văn bản nào khác.`

const geminiModelName = "gemini-2.0-flash"

// GeminiGenerator gọi Gemini với prompt cố định ở trên
type GeminiGenerator struct {
	apiKey string
	model  string
}

func NewGeminiGenerator() *GeminiGenerator {
	return &GeminiGenerator{
		apiKey: os.Getenv("GEMINI_API_KEY"),
		model:  geminiModelName,
	}
}

func (g *GeminiGenerator) ModelName() string {
	return g.model
}

func (g *GeminiGenerator) GenerateFlashcards(ctx context.Context, sourceText string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("không thể tạo Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(flashcardSystemInstruction)},
	}
	model.ResponseMIMEType = "application/json"

	prompt := fmt.Sprintf("Hãy tạo flashcard từ văn bản sau:\n\n%s", sourceText)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("lỗi Gemini xử lý: %v", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini không trả kết quả hợp lệ")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
