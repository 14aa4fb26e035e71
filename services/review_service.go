package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vnkhanh/flashcards-ai-backend/models"
	"github.com/vnkhanh/flashcards-ai-backend/schemas"
)

// Trạng thái duyệt của một proposal
type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
)

func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalPending, ProposalAccepted, ProposalRejected:
		return true
	}
	return false
}

// FlashcardProposal là flashcard do AI đề xuất, chưa lưu vào DB.
// Người dùng duyệt (accept/reject/sửa) trước khi lưu qua POST /api/flashcards.
type FlashcardProposal struct {
	ID           int                    `json:"id"`
	Front        string                 `json:"front"`
	Back         string                 `json:"back"`
	Source       models.FlashcardSource `json:"source"`
	GenerationID uint                   `json:"generation_id"`
	Status       ProposalStatus         `json:"status"`
}

// Một phiên duyệt proposal, gắn với một generation và chủ của nó
type reviewSession struct {
	ownerID   uuid.UUID
	proposals []FlashcardProposal
}

// ReviewManager giữ các phiên duyệt proposal hoàn toàn trong bộ nhớ,
// không bao giờ ghi DB. Mutation áp dụng tuần tự theo thứ tự nhận được.
type ReviewManager struct {
	mu       sync.RWMutex
	sessions map[uint]*reviewSession // theo generation ID
}

func NewReviewManager() *ReviewManager {
	return &ReviewManager{
		sessions: make(map[uint]*reviewSession),
	}
}

// Start mở phiên duyệt cho một generation vừa sinh xong.
// Gọi lại với cùng generation ID sẽ thay thế phiên cũ.
func (m *ReviewManager) Start(generationID uint, ownerID uuid.UUID, proposals []FlashcardProposal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]FlashcardProposal, len(proposals))
	copy(copied, proposals)
	m.sessions[generationID] = &reviewSession{
		ownerID:   ownerID,
		proposals: copied,
	}
}

// find trả về session nếu tồn tại và thuộc về ownerID.
// Phiên của người khác trông y hệt phiên không tồn tại.
func (m *ReviewManager) find(generationID uint, ownerID uuid.UUID) *reviewSession {
	session, ok := m.sessions[generationID]
	if !ok || session.ownerID != ownerID {
		return nil
	}
	return session
}

// SetStatus chuyển trạng thái một proposal. Idempotent: áp lại cùng
// trạng thái không tạo thay đổi quan sát được; các proposal khác giữ nguyên.
func (m *ReviewManager) SetStatus(generationID uint, ownerID uuid.UUID, proposalID int, status ProposalStatus) (*FlashcardProposal, error) {
	if !status.IsValid() {
		return nil, NewValidationError(schemas.FieldError{
			Field: "status", Message: "Status phải là một trong: pending, accepted, rejected",
		})
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.find(generationID, ownerID)
	if session == nil {
		return nil, ErrNotFound
	}

	for i := range session.proposals {
		if session.proposals[i].ID == proposalID {
			session.proposals[i].Status = status
			p := session.proposals[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// Edit thay nội dung một proposal sau khi validate lại front/back.
// Thành công: source chuyển thành ai-edited bất kể giá trị trước đó,
// status giữ nguyên. Thất bại: proposal không đổi, trả lỗi theo trường.
func (m *ReviewManager) Edit(generationID uint, ownerID uuid.UUID, proposalID int, front, back string) (*FlashcardProposal, error) {
	front, back, fieldErrs := schemas.ValidateFrontBack(front, back)
	if len(fieldErrs) > 0 {
		return nil, NewValidationError(fieldErrs...)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.find(generationID, ownerID)
	if session == nil {
		return nil, ErrNotFound
	}

	for i := range session.proposals {
		if session.proposals[i].ID == proposalID {
			session.proposals[i].Front = front
			session.proposals[i].Back = back
			session.proposals[i].Source = models.SourceAIEdited
			p := session.proposals[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// All trả về toàn bộ proposal của phiên, tính lại mỗi lần gọi
func (m *ReviewManager) All(generationID uint, ownerID uuid.UUID) ([]FlashcardProposal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session := m.find(generationID, ownerID)
	if session == nil {
		return nil, ErrNotFound
	}

	out := make([]FlashcardProposal, len(session.proposals))
	copy(out, session.proposals)
	return out, nil
}

// Accepted trả về tập proposal đã được chấp nhận (tập đủ điều kiện lưu)
func (m *ReviewManager) Accepted(generationID uint, ownerID uuid.UUID) ([]FlashcardProposal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session := m.find(generationID, ownerID)
	if session == nil {
		return nil, ErrNotFound
	}

	out := make([]FlashcardProposal, 0)
	for _, p := range session.proposals {
		if p.Status == ProposalAccepted {
			out = append(out, p)
		}
	}
	return out, nil
}

// Drop hủy phiên duyệt và giải phóng bộ nhớ của nó; proposal chưa lưu sẽ mất.
// Trả về false khi phiên không tồn tại hoặc không thuộc ownerID.
func (m *ReviewManager) Drop(generationID uint, ownerID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.find(generationID, ownerID) == nil {
		return false
	}
	delete(m.sessions, generationID)
	return true
}

// Len đếm số phiên đang mở
func (m *ReviewManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
