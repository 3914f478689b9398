package repository

import (
	"context"

	"github.com/blog-post-api/internal/database"
	"github.com/blog-post-api/internal/models"
)

// PostFilter carries the predicates and window for list queries. The
// same filter is used for both the page query and the count query so
// the two always evaluate identical predicates.
type PostFilter struct {
	PublishedOnly bool
	Tag           string
	Search        string
	Limit         int
	Offset        int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]*models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int, error)
	Update(ctx context.Context, post *models.Post) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Post PostRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Post: NewPostRepo(db),
	}
}
