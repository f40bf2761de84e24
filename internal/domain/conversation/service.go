package conversation

import (
	"context"
	"fmt"
)

type Service struct {
	repo ChatHistoryRepository
}

func NewService(repo ChatHistoryRepository) *Service {
	return &Service{repo: repo}
}

// Record stores messages as one conversation belonging to userID.
func (s *Service) Record(ctx context.Context, userID int64, messages []Message) (*ChatHistory, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("conversation has no messages")
	}
	h := &ChatHistory{UserID: &userID, Messages: messages}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("store chat history: %w", err)
	}
	return h, nil
}

func (s *Service) History(ctx context.Context, userID int64) ([]*ChatHistory, error) {
	return s.repo.ListByUser(ctx, userID)
}
