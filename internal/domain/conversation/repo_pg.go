package conversation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medscience/medscience/internal/platform/db"
)

type chatHistoryRepoPG struct{ pool *pgxpool.Pool }

func NewChatHistoryRepoPG(pool *pgxpool.Pool) ChatHistoryRepository {
	return &chatHistoryRepoPG{pool: pool}
}

func (r *chatHistoryRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

func (r *chatHistoryRepoPG) Create(ctx context.Context, h *ChatHistory) error {
	if h.Messages == nil {
		h.Messages = []Message{}
	}
	payload, err := json.Marshal(h.Messages)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}
	err = r.conn(ctx).QueryRow(ctx, `
		INSERT INTO chat_history (user_id, messages, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at`,
		h.UserID, payload).Scan(&h.ID, &h.CreatedAt)
	return db.MapError(err)
}

func (r *chatHistoryRepoPG) ListByUser(ctx context.Context, userID int64) ([]*ChatHistory, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, user_id, messages, created_at FROM chat_history
		WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()
	items := make([]*ChatHistory, 0)
	for rows.Next() {
		var h ChatHistory
		var payload []byte
		if err := rows.Scan(&h.ID, &h.UserID, &payload, &h.CreatedAt); err != nil {
			return nil, db.MapError(err)
		}
		if err := json.Unmarshal(payload, &h.Messages); err != nil {
			return nil, fmt.Errorf("decode messages of chat %d: %w", h.ID, err)
		}
		items = append(items, &h)
	}
	return items, db.MapError(rows.Err())
}
