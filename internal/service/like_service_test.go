package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/freelance-directory/internal/domain"
	"github.com/spec-kit/freelance-directory/internal/events"
)

func TestLikeIncrement(t *testing.T) {
	repo := newMemoryUserRepo()
	alice := seedUsers(t, repo, domain.User{Username: "alice"})[0]
	dispatcher := events.NewInMemoryDispatcher(nil)

	var seen []int
	dispatcher.Subscribe(events.EventProfileLiked, func(_ context.Context, e events.Event) error {
		seen = append(seen, e.Payload.(events.ProfileLikedPayload).Likes)
		return nil
	})

	svc := NewLikeService(repo, dispatcher)
	for i := 1; i <= 5; i++ {
		likes, err := svc.Increment(context.Background(), alice.ID)
		require.NoError(t, err)
		assert.Equal(t, i, likes)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, seen)

	stored, err := repo.GetByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Like)
}

func TestLikeIncrementConcurrent(t *testing.T) {
	repo := newMemoryUserRepo()
	alice := seedUsers(t, repo, domain.User{Username: "alice"})[0]
	svc := NewLikeService(repo, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Increment(context.Background(), alice.ID)
		}()
	}
	wg.Wait()

	stored, err := repo.GetByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, stored.Like)
}

func TestLikeIncrementUnknownUser(t *testing.T) {
	svc := NewLikeService(newMemoryUserRepo(), nil)

	_, err := svc.Increment(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
