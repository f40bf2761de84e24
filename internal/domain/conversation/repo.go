package conversation

import (
	"context"
)

type ChatHistoryRepository interface {
	// Create always overwrites CreatedAt with the current time.
	Create(ctx context.Context, h *ChatHistory) error
	ListByUser(ctx context.Context, userID int64) ([]*ChatHistory, error)
}
