package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/flashcards-ai-backend/models"
	"github.com/vnkhanh/flashcards-ai-backend/schemas"
)

func manualCard(front, back string) schemas.FlashcardCreateInput {
	return schemas.FlashcardCreateInput{Front: front, Back: back, Source: "manual"}
}

func defaultListQuery() *schemas.FlashcardsListQuery {
	return &schemas.FlashcardsListQuery{Page: 1, Limit: 10, Sort: "created_at", Order: "desc"}
}

// ─────────────────────────────────────────────
// CreateBatch + GetByID
// ─────────────────────────────────────────────

func TestCreateBatch_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	genID := createTestGeneration(t, db, userID)
	svc := NewFlashcardService(db)

	cmd := &schemas.FlashcardsCreateCommand{Flashcards: []schemas.FlashcardCreateInput{
		{Front: "Thủ đô của Việt Nam?", Back: "Hà Nội", Source: "ai-full", GenerationID: &genID},
	}}

	created, err := svc.CreateBatch(userID, cmd)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.NotZero(t, created[0].ID, "id phải do store gán")
	assert.False(t, created[0].CreatedAt.IsZero())

	// Fetch lại theo id vừa trả về phải cho đúng nội dung
	fetched, err := svc.GetByID(userID, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Thủ đô của Việt Nam?", fetched.Front)
	assert.Equal(t, "Hà Nội", fetched.Back)
	assert.Equal(t, models.SourceAIFull, fetched.Source)
	require.NotNil(t, fetched.GenerationID)
	assert.Equal(t, genID, *fetched.GenerationID)
}

func TestCreateBatch_FiftyCardsSucceeds(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	svc := NewFlashcardService(db)

	cards := make([]schemas.FlashcardCreateInput, 50)
	for i := range cards {
		cards[i] = manualCard(fmt.Sprintf("Câu %d?", i), "Đáp")
	}

	created, err := svc.CreateBatch(userID, &schemas.FlashcardsCreateCommand{Flashcards: cards})

	require.NoError(t, err)
	assert.Len(t, created, 50)
}

func TestCreateBatch_SizeViolations(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	svc := NewFlashcardService(db)

	_, err := svc.CreateBatch(userID, &schemas.FlashcardsCreateCommand{})
	_, ok := AsValidationError(err)
	assert.True(t, ok, "batch rỗng phải bị chặn")

	cards := make([]schemas.FlashcardCreateInput, 51)
	for i := range cards {
		cards[i] = manualCard("f", "b")
	}
	_, err = svc.CreateBatch(userID, &schemas.FlashcardsCreateCommand{Flashcards: cards})
	_, ok = AsValidationError(err)
	assert.True(t, ok, "batch 51 phần tử phải bị chặn")
}

func TestCreateBatch_ForeignGenerationFailsAtomically(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	otherID := createTestUser(t, db)
	foreignGen := createTestGeneration(t, db, otherID)
	svc := NewFlashcardService(db)

	cmd := &schemas.FlashcardsCreateCommand{Flashcards: []schemas.FlashcardCreateInput{
		manualCard("hợp lệ", "hợp lệ"),
		{Front: "f", Back: "b", Source: "ai-full", GenerationID: &foreignGen},
	}}

	_, err := svc.CreateBatch(userID, cmd)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	// Lỗi phải nêu đích danh id vi phạm
	assert.Contains(t, ve.Fields[0].Message, fmt.Sprint(foreignGen))

	// Không được chèn bản ghi nào (kể cả phần tử hợp lệ)
	var count int64
	require.NoError(t, db.Model(&models.Flashcard{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateBatch_MissingGenerationNamed(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	svc := NewFlashcardService(db)

	missing := uint(999)
	cmd := &schemas.FlashcardsCreateCommand{Flashcards: []schemas.FlashcardCreateInput{
		{Front: "f", Back: "b", Source: "ai-edited", GenerationID: &missing},
	}}

	_, err := svc.CreateBatch(userID, cmd)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "generation_id", ve.Fields[0].Field)
	assert.Contains(t, ve.Fields[0].Message, "999")
}

func TestGetByID_NotFoundAndForeign(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	otherID := createTestUser(t, db)
	svc := NewFlashcardService(db)

	created, err := svc.CreateBatch(otherID, &schemas.FlashcardsCreateCommand{
		Flashcards: []schemas.FlashcardCreateInput{manualCard("f", "b")},
	})
	require.NoError(t, err)

	_, err = svc.GetByID(userID, 12345)
	assert.ErrorIs(t, err, ErrNotFound)

	// Flashcard của người khác trông y hệt không tồn tại
	_, err = svc.GetByID(userID, created[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ─────────────────────────────────────────────
// List + phân trang
// ─────────────────────────────────────────────

func TestList_Pagination(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	svc := NewFlashcardService(db)

	cards := make([]schemas.FlashcardCreateInput, 25)
	for i := range cards {
		cards[i] = manualCard(fmt.Sprintf("Câu %02d?", i), "Đáp")
	}
	_, err := svc.CreateBatch(userID, &schemas.FlashcardsCreateCommand{Flashcards: cards})
	require.NoError(t, err)

	// total=25, limit=10: trang 1-2 đủ 10, trang 3 còn 5, trang 4 rỗng
	for page, want := range map[int]int{1: 10, 2: 10, 3: 5, 4: 0} {
		q := defaultListQuery()
		q.Page = page

		result, err := svc.List(userID, q)
		require.NoError(t, err)
		assert.Len(t, result.Data, want, "trang %d", page)
		assert.Equal(t, int64(25), result.Pagination.Total)
		assert.Equal(t, page, result.Pagination.Page)
	}
}

func TestList_SortAndFilter(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	genID := createTestGeneration(t, db, userID)
	svc := NewFlashcardService(db)

	_, err := svc.CreateBatch(userID, &schemas.FlashcardsCreateCommand{Flashcards: []schemas.FlashcardCreateInput{
		manualCard("bbb", "1"),
		manualCard("aaa", "2"),
		{Front: "ccc", Back: "3", Source: "ai-full", GenerationID: &genID},
	}})
	require.NoError(t, err)

	q := defaultListQuery()
	q.Sort = "front"
	q.Order = "asc"
	result, err := svc.List(userID, q)
	require.NoError(t, err)
	require.Len(t, result.Data, 3)
	assert.Equal(t, "aaa", result.Data[0].Front)
	assert.Equal(t, "ccc", result.Data[2].Front)

	q = defaultListQuery()
	q.Source = "manual"
	result, err = svc.List(userID, q)
	require.NoError(t, err)
	assert.Len(t, result.Data, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)

	q = defaultListQuery()
	q.GenerationID = &genID
	result, err = svc.List(userID, q)
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "ccc", result.Data[0].Front)
}

func TestList_ForeignGenerationFilterSilentlyEmpty(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	otherID := createTestUser(t, db)
	foreignGen := createTestGeneration(t, db, otherID)
	svc := NewFlashcardService(db)

	// Lọc theo generation của người khác: trang rỗng, không phải lỗi
	q := defaultListQuery()
	q.GenerationID = &foreignGen

	result, err := svc.List(userID, q)

	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.Zero(t, result.Pagination.Total)
}

func TestList_OwnerIsolation(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	otherID := createTestUser(t, db)
	svc := NewFlashcardService(db)

	_, err := svc.CreateBatch(otherID, &schemas.FlashcardsCreateCommand{
		Flashcards: []schemas.FlashcardCreateInput{manualCard("của người khác", "x")},
	})
	require.NoError(t, err)

	result, err := svc.List(userID, defaultListQuery())
	require.NoError(t, err)
	assert.Empty(t, result.Data)
}

// ─────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────

func TestUpdate_PartialPatch(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	svc := NewFlashcardService(db)

	created, err := svc.CreateBatch(userID, &schemas.FlashcardsCreateCommand{
		Flashcards: []schemas.FlashcardCreateInput{manualCard("cũ", "giữ nguyên")},
	})
	require.NoError(t, err)

	front := "mới"
	updated, err := svc.Update(userID, created[0].ID, &schemas.FlashcardUpdateInput{Front: &front})

	require.NoError(t, err)
	assert.Equal(t, "mới", updated.Front)
	assert.Equal(t, "giữ nguyên", updated.Back, "trường không gửi lên phải giữ nguyên")
	assert.False(t, updated.UpdatedAt.Before(created[0].UpdatedAt))
}

func TestUpdate_EmptyPatchRejected(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	svc := NewFlashcardService(db)

	created, err := svc.CreateBatch(userID, &schemas.FlashcardsCreateCommand{
		Flashcards: []schemas.FlashcardCreateInput{manualCard("f", "b")},
	})
	require.NoError(t, err)

	_, err = svc.Update(userID, created[0].ID, &schemas.FlashcardUpdateInput{})

	_, ok := AsValidationError(err)
	assert.True(t, ok)
}

func TestUpdate_ForeignGenerationRejected(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	otherID := createTestUser(t, db)
	foreignGen := createTestGeneration(t, db, otherID)
	svc := NewFlashcardService(db)

	created, err := svc.CreateBatch(userID, &schemas.FlashcardsCreateCommand{
		Flashcards: []schemas.FlashcardCreateInput{manualCard("f", "b")},
	})
	require.NoError(t, err)

	source := "ai-edited"
	patch := &schemas.FlashcardUpdateInput{
		Source:          &source,
		GenerationID:    &foreignGen,
		GenerationIDSet: true,
	}

	_, err = svc.Update(userID, created[0].ID, patch)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields[0].Message, fmt.Sprint(foreignGen))
}

func TestUpdate_NotFoundIndistinguishable(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	otherID := createTestUser(t, db)
	svc := NewFlashcardService(db)

	created, err := svc.CreateBatch(otherID, &schemas.FlashcardsCreateCommand{
		Flashcards: []schemas.FlashcardCreateInput{manualCard("f", "b")},
	})
	require.NoError(t, err)

	front := "x"
	_, err = svc.Update(userID, 9999, &schemas.FlashcardUpdateInput{Front: &front})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(userID, created[0].ID, &schemas.FlashcardUpdateInput{Front: &front})
	assert.ErrorIs(t, err, ErrNotFound, "id của người khác phải trông như không tồn tại")
}

// ─────────────────────────────────────────────
// Delete
// ─────────────────────────────────────────────

func TestDelete_Semantics(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	otherID := createTestUser(t, db)
	svc := NewFlashcardService(db)

	created, err := svc.CreateBatch(userID, &schemas.FlashcardsCreateCommand{
		Flashcards: []schemas.FlashcardCreateInput{manualCard("f", "b")},
	})
	require.NoError(t, err)

	foreign, err := svc.CreateBatch(otherID, &schemas.FlashcardsCreateCommand{
		Flashcards: []schemas.FlashcardCreateInput{manualCard("f2", "b2")},
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(userID, created[0].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Xoá lần hai: false, không phải lỗi
	deleted, err = svc.Delete(userID, created[0].ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// Không xoá được flashcard của người khác
	deleted, err = svc.Delete(userID, foreign[0].ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = svc.GetByID(otherID, foreign[0].ID)
	assert.NoError(t, err)
}
