package mocks

import (
	"context"

	"github.com/blog-post-api/internal/models"
	"github.com/blog-post-api/internal/service"
)

// MockPostService is a mock implementation of PostService
type MockPostService struct {
	ListPublishedFunc func(ctx context.Context, params models.ListParams) (*models.PostList, error)
	ListAllFunc       func(ctx context.Context, params models.ListParams) (*models.PostList, error)
	GetBySlugFunc     func(ctx context.Context, slug string) (*models.Post, error)
	GetByIDFunc       func(ctx context.Context, id string) (*models.Post, error)
	CreateFunc        func(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error)
	UpdateFunc        func(ctx context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error)
	DeleteFunc        func(ctx context.Context, id string) error

	// Inputs recorded for assertions
	ListParams     []models.ListParams
	CreatedIDs     []string
	DeletedIDs     []string
	UpdateRequests []*models.UpdatePostRequest
}

// Verify interface compliance
var _ service.PostService = (*MockPostService)(nil)

func NewMockPostService() *MockPostService {
	return &MockPostService{}
}

func (m *MockPostService) ListPublished(ctx context.Context, params models.ListParams) (*models.PostList, error) {
	m.ListParams = append(m.ListParams, params)
	if m.ListPublishedFunc != nil {
		return m.ListPublishedFunc(ctx, params)
	}
	return &models.PostList{Posts: []*models.Post{}}, nil
}

func (m *MockPostService) ListAll(ctx context.Context, params models.ListParams) (*models.PostList, error) {
	m.ListParams = append(m.ListParams, params)
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, params)
	}
	return &models.PostList{Posts: []*models.Post{}}, nil
}

func (m *MockPostService) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, models.ErrPostNotFound
}

func (m *MockPostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrPostNotFound
}

func (m *MockPostService) Create(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	post := &models.Post{
		ID:        "test-post-id",
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Slug:      req.Slug,
		Author:    req.Author,
		Published: req.Published,
		Tags:      req.Tags,
	}
	m.CreatedIDs = append(m.CreatedIDs, post.ID)
	return post, nil
}

func (m *MockPostService) Update(ctx context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error) {
	m.UpdateRequests = append(m.UpdateRequests, req)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	return nil, models.ErrPostNotFound
}

func (m *MockPostService) Delete(ctx context.Context, id string) error {
	m.DeletedIDs = append(m.DeletedIDs, id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
