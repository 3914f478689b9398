package service

import (
	"context"

	"github.com/blog-post-api/internal/config"
	"github.com/blog-post-api/internal/models"
	"github.com/blog-post-api/internal/repository"
	"github.com/rs/zerolog"
)

// PostService defines the interface for post operations
type PostService interface {
	ListPublished(ctx context.Context, params models.ListParams) (*models.PostList, error)
	ListAll(ctx context.Context, params models.ListParams) (*models.PostList, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error)
	Update(ctx context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}

// Services holds all service interfaces
type Services struct {
	Post PostService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Post: newPostService(repos.Post, cfg, log),
	}
}
