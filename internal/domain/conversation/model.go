package conversation

import "time"

// Message is one role-tagged turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatHistory is a stored conversation. CreatedAt is assigned by the
// repository.
type ChatHistory struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"userId"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}
