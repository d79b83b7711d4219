package service

import (
	"context"

	"github.com/spec-kit/freelance-directory/internal/events"
	"github.com/spec-kit/freelance-directory/internal/repository"
)

// LikeService increments profile like counters.
type LikeService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewLikeService constructs the service.
func NewLikeService(users repository.UserRepository, dispatcher events.Dispatcher) *LikeService {
	return &LikeService{users: users, dispatcher: dispatcher}
}

// Increment adds one like and returns the new count. The repository performs
// the read-modify-write as one statement, so concurrent likes are never lost.
func (s *LikeService) Increment(ctx context.Context, userID string) (int, error) {
	likes, err := s.users.IncrementLike(ctx, userID)
	if err != nil {
		return 0, err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventProfileLiked,
			UserID:  userID,
			Payload: events.ProfileLikedPayload{Likes: likes},
		})
	}
	return likes, nil
}
