package conversation

import (
	"context"
	"time"

	"github.com/medscience/medscience/internal/platform/store"
)

type chatHistoryRepoMem struct {
	items *store.Collection[ChatHistory]
	now   func() time.Time
}

func NewChatHistoryRepoMem() ChatHistoryRepository {
	return &chatHistoryRepoMem{items: store.NewCollection[ChatHistory](), now: time.Now}
}

func (r *chatHistoryRepoMem) Create(_ context.Context, h *ChatHistory) error {
	msgs := append([]Message(nil), h.Messages...)
	*h = r.items.Insert(func(id int64) ChatHistory {
		rec := *h
		rec.ID = id
		rec.Messages = msgs
		rec.CreatedAt = r.now().UTC()
		return rec
	})
	h.Messages = append([]Message(nil), msgs...)
	return nil
}

func (r *chatHistoryRepoMem) ListByUser(_ context.Context, userID int64) ([]*ChatHistory, error) {
	items := r.items.Filter(func(h ChatHistory) bool {
		return h.UserID != nil && *h.UserID == userID
	})
	for i := range items {
		items[i].Messages = append([]Message(nil), items[i].Messages...)
	}
	return store.Ptrs(items), nil
}
