package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/freelance-directory/internal/config"
	"github.com/spec-kit/freelance-directory/internal/domain"
	"github.com/spec-kit/freelance-directory/internal/repository"
)

// DirectoryCache caches the most-liked projection.
type DirectoryCache interface {
	GetMostLiked(ctx context.Context) ([]domain.User, bool, error)
	SetMostLiked(ctx context.Context, users []domain.User) error
}

// SearchResult is the outcome of a directory search.
type SearchResult struct {
	Term    string
	Users   []domain.User
	Message string
}

// Page is one slice of an ordered user sequence.
type Page struct {
	Users    []domain.User
	Number   int
	Size     int
	Total    int
	HasNext  bool
	HasPrev  bool
	NumPages int
}

// DirectoryService answers read-only queries over the user directory.
type DirectoryService struct {
	users          repository.UserRepository
	cache          DirectoryCache
	logger         *zap.Logger
	pageSize       int
	mostLikedLimit int
}

// NewDirectoryService constructs the service. cache may be nil.
func NewDirectoryService(cfg config.DirectoryConfig, users repository.UserRepository, cache DirectoryCache, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 8
	}
	limit := cfg.MostLikedLimit
	if limit <= 0 {
		limit = 6
	}
	return &DirectoryService{
		users:          users,
		cache:          cache,
		logger:         logger,
		pageSize:       pageSize,
		mostLikedLimit: limit,
	}
}

// PageSize is the number of profiles per listing page.
func (s *DirectoryService) PageSize() int {
	return s.pageSize
}

// Search matches query against username and bio, or else skill against the
// skill code. With neither term the result is empty.
func (s *DirectoryService) Search(ctx context.Context, query, skill string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	skill = strings.TrimSpace(skill)

	var (
		term  string
		users []domain.User
		err   error
	)
	switch {
	case query != "":
		term = query
		users, err = s.users.SearchByText(ctx, query)
	case skill != "":
		term = skill
		users, err = s.users.FilterBySkill(ctx, skill)
	default:
		return &SearchResult{Users: []domain.User{}}, nil
	}
	if err != nil {
		return nil, err
	}

	users = dedupe(users)
	result := &SearchResult{Term: term, Users: users}
	if len(users) == 0 {
		result.Message = fmt.Sprintf("no results for %q", term)
	} else {
		result.Message = fmt.Sprintf("results for %q", term)
	}
	return result, nil
}

// Recent lists profiles newest first.
func (s *DirectoryService) Recent(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ListRecent(ctx, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, err
	}
	return newPage(users, page, s.pageSize, total), nil
}

// MostLiked lists the profiles with the most likes, served from cache when possible.
func (s *DirectoryService) MostLiked(ctx context.Context) ([]domain.User, error) {
	if s.cache != nil {
		users, ok, err := s.cache.GetMostLiked(ctx)
		if err != nil {
			s.logger.Warn("most liked cache read failed", zap.Error(err))
		} else if ok {
			return users, nil
		}
	}

	users, err := s.users.ListMostLiked(ctx, s.mostLikedLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetMostLiked(ctx, users); err != nil {
			s.logger.Warn("most liked cache write failed", zap.Error(err))
		}
	}
	return users, nil
}

// Profile loads one public profile.
func (s *DirectoryService) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Paginate slices users into the requested page; out of range pages are empty.
func Paginate(users []domain.User, page, size int) *Page {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start > len(users) {
		start = len(users)
	}
	end := start + size
	if end > len(users) {
		end = len(users)
	}
	return newPage(users[start:end], page, size, len(users))
}

func newPage(users []domain.User, number, size, total int) *Page {
	numPages := 0
	if size > 0 {
		numPages = (total + size - 1) / size
	}
	return &Page{
		Users:    users,
		Number:   number,
		Size:     size,
		Total:    total,
		HasNext:  number < numPages,
		HasPrev:  number > 1,
		NumPages: numPages,
	}
}

func dedupe(users []domain.User) []domain.User {
	seen := make(map[string]struct{}, len(users))
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u)
	}
	return out
}
