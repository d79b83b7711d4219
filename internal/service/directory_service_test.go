package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/freelance-directory/internal/config"
	"github.com/spec-kit/freelance-directory/internal/domain"
	"github.com/spec-kit/freelance-directory/internal/repository/repotest"
)

type stubDirectoryCache struct {
	users  []domain.User
	hit    bool
	getErr error
	sets   int
}

func (c *stubDirectoryCache) GetMostLiked(context.Context) ([]domain.User, bool, error) {
	return c.users, c.hit, c.getErr
}

func (c *stubDirectoryCache) SetMostLiked(_ context.Context, users []domain.User) error {
	c.sets++
	c.users = users
	c.hit = true
	return nil
}

func seedUsers(t *testing.T, repo *repotest.UserRepository, users ...domain.User) []domain.User {
	t.Helper()
	out := make([]domain.User, 0, len(users))
	for i := range users {
		u := users[i]
		require.NoError(t, repo.Create(context.Background(), &u))
		out = append(out, u)
	}
	return out
}

func directoryFixture(t *testing.T) (*DirectoryService, *repotest.UserRepository) {
	t.Helper()
	repo := newMemoryUserRepo()
	seedUsers(t, repo,
		domain.User{Username: "alice", Skill: domain.SkillBackendEngineer, SelfIntroduction: "Go services"},
		domain.User{Username: "bob", Skill: domain.SkillFrontendEngineer, SelfIntroduction: "React and CSS"},
		domain.User{Username: "carol", Skill: domain.SkillPhotographer, SelfIntroduction: "Weddings"},
	)
	return NewDirectoryService(testConfig().Directory, repo, nil, nil), repo
}

func usernames(users []domain.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Username)
	}
	return out
}

func TestSearchByText(t *testing.T) {
	svc, _ := directoryFixture(t)

	res, err := svc.Search(context.Background(), "alice", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, usernames(res.Users))
	assert.Equal(t, "alice", res.Term)
	assert.Equal(t, `results for "alice"`, res.Message)

	res, err = svc.Search(context.Background(), "  react ", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, usernames(res.Users))
}

func TestSearchNoMatches(t *testing.T) {
	svc, _ := directoryFixture(t)

	res, err := svc.Search(context.Background(), "zzz", "")
	require.NoError(t, err)
	assert.Empty(t, res.Users)
	assert.Equal(t, `no results for "zzz"`, res.Message)
}

func TestSearchBySkill(t *testing.T) {
	svc, _ := directoryFixture(t)

	res, err := svc.Search(context.Background(), "", "engineer")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, usernames(res.Users))
	assert.Equal(t, "engineer", res.Term)
}

func TestSearchTextTakesPrecedenceOverSkill(t *testing.T) {
	svc, _ := directoryFixture(t)

	res, err := svc.Search(context.Background(), "carol", "engineer")
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, usernames(res.Users))
}

func TestSearchWithoutTerms(t *testing.T) {
	svc, _ := directoryFixture(t)

	res, err := svc.Search(context.Background(), "", " ")
	require.NoError(t, err)
	assert.Empty(t, res.Users)
	assert.Empty(t, res.Message)
}

func TestSearchPropagatesRepositoryErrors(t *testing.T) {
	svc, repo := directoryFixture(t)
	repo.Err = errors.New("db down")

	_, err := svc.Search(context.Background(), "alice", "")
	assert.Error(t, err)
}

func TestRecentPages(t *testing.T) {
	repo := newMemoryUserRepo()
	for i := 0; i < 10; i++ {
		seedUsers(t, repo, domain.User{Username: fmt.Sprintf("user%02d", i)})
	}
	svc := NewDirectoryService(config.DirectoryConfig{PageSize: 4}, repo, nil, nil)

	first, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, []string{"user09", "user08", "user07", "user06"}, usernames(first.Users))
	assert.Equal(t, 3, first.NumPages)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrev)

	last, err := svc.Recent(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"user01", "user00"}, usernames(last.Users))
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	beyond, err := svc.Recent(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, beyond.Users)
}

func TestMostLikedUsesCache(t *testing.T) {
	repo := newMemoryUserRepo()
	seeded := seedUsers(t, repo, domain.User{Username: "quiet"}, domain.User{Username: "popular"})
	_, err := repo.IncrementLike(context.Background(), seeded[1].ID)
	require.NoError(t, err)

	cache := &stubDirectoryCache{}
	svc := NewDirectoryService(testConfig().Directory, repo, cache, nil)

	users, err := svc.MostLiked(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"popular", "quiet"}, usernames(users))
	assert.Equal(t, 1, cache.sets)

	cache.users = []domain.User{{Username: "cached"}}
	users, err = svc.MostLiked(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cached"}, usernames(users))
	assert.Equal(t, 1, cache.sets)
}

func TestMostLikedFallsBackWhenCacheFails(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUsers(t, repo, domain.User{Username: "alice"})
	cache := &stubDirectoryCache{getErr: errors.New("redis down")}
	svc := NewDirectoryService(testConfig().Directory, repo, cache, nil)

	users, err := svc.MostLiked(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, usernames(users))
}

func TestMostLikedRespectsLimit(t *testing.T) {
	repo := newMemoryUserRepo()
	for i := 0; i < 9; i++ {
		seedUsers(t, repo, domain.User{Username: fmt.Sprintf("u%d", i)})
	}
	svc := NewDirectoryService(config.DirectoryConfig{}, repo, nil, nil)

	users, err := svc.MostLiked(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 6)
	assert.Equal(t, 8, svc.PageSize())
}

func TestPaginate(t *testing.T) {
	users := make([]domain.User, 0, 17)
	for i := 0; i < 17; i++ {
		users = append(users, domain.User{ID: fmt.Sprint(i)})
	}

	p := Paginate(users, 3, 8)
	assert.Len(t, p.Users, 1)
	assert.Equal(t, 17, p.Total)
	assert.Equal(t, 3, p.NumPages)
	assert.False(t, p.HasNext)

	p = Paginate(users, -1, 8)
	assert.Equal(t, 1, p.Number)
	assert.Len(t, p.Users, 8)

	p = Paginate(users, 5, 8)
	assert.Empty(t, p.Users)

	p = Paginate(nil, 1, 8)
	assert.Empty(t, p.Users)
	assert.Equal(t, 0, p.NumPages)
	assert.False(t, p.HasNext)
}

func TestDedupe(t *testing.T) {
	in := []domain.User{{ID: "a"}, {ID: "b"}, {ID: "a"}}
	assert.Len(t, dedupe(in), 2)
}
