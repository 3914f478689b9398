package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/blog-post-api/internal/models"
	"github.com/blog-post-api/internal/repository"
)

// MockPostRepository is an in-memory implementation of PostRepository.
// Filters and ordering behave like the real queries so service tests
// can exercise pagination and predicate logic.
type MockPostRepository struct {
	Posts       map[string]*models.Post
	CreateError error
	QueryError  error
	UpdateCalls int

	// UpdateFunc overrides Update when set
	UpdateFunc func(ctx context.Context, post *models.Post) (int64, error)
}

// Verify interface compliance
var _ repository.PostRepository = (*MockPostRepository)(nil)

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		Posts: make(map[string]*models.Post),
	}
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	copied := *post
	m.Posts[post.ID] = &copied
	return nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	post, ok := m.Posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (m *MockPostRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	for _, post := range m.Posts {
		if post.Slug == slug && post.Published {
			copied := *post
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockPostRepository) List(ctx context.Context, filter repository.PostFilter) ([]*models.Post, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}

	matched := m.match(filter)
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Offset >= len(matched) {
		return []*models.Post{}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (m *MockPostRepository) Count(ctx context.Context, filter repository.PostFilter) (int, error) {
	if m.QueryError != nil {
		return 0, m.QueryError
	}
	return len(m.match(filter)), nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) (int64, error) {
	m.UpdateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, post)
	}
	if m.QueryError != nil {
		return 0, m.QueryError
	}
	if _, ok := m.Posts[post.ID]; !ok {
		return 0, nil
	}
	copied := *post
	m.Posts[post.ID] = &copied
	return 1, nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) (int64, error) {
	if m.QueryError != nil {
		return 0, m.QueryError
	}
	if _, ok := m.Posts[id]; !ok {
		return 0, nil
	}
	delete(m.Posts, id)
	return 1, nil
}

func (m *MockPostRepository) match(filter repository.PostFilter) []*models.Post {
	var matched []*models.Post
	for _, post := range m.Posts {
		if filter.PublishedOnly && !post.Published {
			continue
		}
		if filter.Tag != "" && !containsTag(post.Tags, filter.Tag) {
			continue
		}
		if filter.Search != "" && !matchesSearch(post, filter.Search) {
			continue
		}
		copied := *post
		matched = append(matched, &copied)
	}
	return matched
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func matchesSearch(post *models.Post, search string) bool {
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(post.Title), search) ||
		strings.Contains(strings.ToLower(post.Content), search)
}
