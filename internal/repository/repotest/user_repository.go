// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/freelance-directory/internal/domain"
	"github.com/spec-kit/freelance-directory/internal/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository is an in-memory repository.UserRepository that keeps insertion order.
type UserRepository struct {
	mu    sync.Mutex
	users []*domain.User

	// Err, when set, is returned by Create and every read.
	Err error
}

// NewUserRepository returns an empty repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) find(id string) *domain.User {
	for _, u := range r.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().Add(time.Duration(len(r.users)) * time.Millisecond)
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users = append(r.users, &stored)
	return nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.find(user.ID)
	if existing == nil {
		return domain.ErrUserNotFound
	}
	*existing = *user
	return nil
}

func (r *UserRepository) get(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	return r.get(func(u *domain.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.get(func(u *domain.User) bool { return u.Username == username })
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.get(func(u *domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) Activate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(id)
	if u == nil {
		return domain.ErrUserNotFound
	}
	if u.IsActive {
		return domain.ErrAlreadyActive
	}
	u.IsActive = true
	return nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(id)
	if u == nil {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *UserRepository) IncrementLike(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(id)
	if u == nil {
		return 0, domain.ErrUserNotFound
	}
	u.Like++
	return u.Like, nil
}

func (r *UserRepository) filter(match func(*domain.User) bool) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []domain.User{}
	for _, u := range r.users {
		if match(u) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *UserRepository) SearchByText(_ context.Context, query string) ([]domain.User, error) {
	return r.filter(func(u *domain.User) bool {
		return containsFold(u.Username, query) || containsFold(u.SelfIntroduction, query)
	})
}

func (r *UserRepository) FilterBySkill(_ context.Context, skill string) ([]domain.User, error) {
	return r.filter(func(u *domain.User) bool { return containsFold(string(u.Skill), skill) })
}

func (r *UserRepository) ListRecent(_ context.Context, limit, offset int) ([]domain.User, error) {
	all, err := r.filter(func(*domain.User) bool { return true })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset > len(all) {
		return []domain.User{}, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *UserRepository) ListMostLiked(_ context.Context, limit int) ([]domain.User, error) {
	all, err := r.filter(func(*domain.User) bool { return true })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Like > all[j].Like })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return len(r.users), nil
}
