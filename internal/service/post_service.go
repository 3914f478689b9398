package service

import (
	"context"
	"time"

	"github.com/blog-post-api/internal/config"
	"github.com/blog-post-api/internal/models"
	"github.com/blog-post-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// maxPublicLimit is the hard cap on page size for the public listing
	maxPublicLimit = 50

	// defaultAdminLimit is the page size for the admin listing when the
	// request does not specify one
	defaultAdminLimit = 10
)

// postService is the concrete implementation of PostService
type postService struct {
	repo repository.PostRepository
	cfg  *config.Config
	log  zerolog.Logger
}

func newPostService(repo repository.PostRepository, cfg *config.Config, log zerolog.Logger) PostService {
	return &postService{
		repo: repo,
		cfg:  cfg,
		log:  log.With().Str("service", "post").Logger(),
	}
}

// ListPublished returns a page of published posts. The limit defaults
// to the configured posts-per-page and is capped at maxPublicLimit.
func (s *postService) ListPublished(ctx context.Context, params models.ListParams) (*models.PostList, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = s.cfg.Site.PostsPerPage
	}
	if limit > maxPublicLimit {
		limit = maxPublicLimit
	}

	filter := repository.PostFilter{
		PublishedOnly: true,
		Tag:           params.Tag,
		Search:        params.Search,
		Limit:         limit,
		Offset:        (page - 1) * limit,
	}
	return s.list(ctx, page, limit, filter)
}

// ListAll returns a page of posts regardless of publication state.
func (s *postService) ListAll(ctx context.Context, params models.ListParams) (*models.PostList, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultAdminLimit
	}

	filter := repository.PostFilter{
		Tag:    params.Tag,
		Search: params.Search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	return s.list(ctx, page, limit, filter)
}

// list runs the page query and the count query with the same
// predicates. The two queries are not wrapped in a transaction, so the
// totals can lag the page contents under concurrent writes.
func (s *postService) list(ctx context.Context, page, limit int, filter repository.PostFilter) (*models.PostList, error) {
	posts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.PostList{
		Posts: posts,
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   (total + limit - 1) / limit,
			TotalPosts:   total,
			PostsPerPage: limit,
		},
	}, nil
}

// GetBySlug returns the published post with the given slug. Unpublished
// posts are indistinguishable from missing ones through this path.
func (s *postService) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, err := s.repo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.ErrPostNotFound
	}
	return post, nil
}

// GetByID returns the post with the given id regardless of publication
// state.
func (s *postService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.ErrPostNotFound
	}
	return post, nil
}

// Create persists a new post with a generated id and equal timestamps.
func (s *postService) Create(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	now := time.Now().UTC()
	post := &models.Post{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Slug:          req.Slug,
		Author:        req.Author,
		Published:     req.Published,
		FeaturedImage: req.FeaturedImage,
		Tags:          req.Tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.log.Info().Str("id", post.ID).Str("slug", post.Slug).Msg("Post created")
	return post, nil
}

// Update merges the payload onto the current record and persists the
// result. Fields the payload leaves nil keep their current value; that
// includes featured_image, so an explicit null never clears an image.
// The read and the write are two round trips with no transaction
// between them; a concurrent update interleaves last-write-wins.
func (s *postService) Update(ctx context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.ErrPostNotFound
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Slug != nil {
		post.Slug = *req.Slug
	}
	if req.Author != nil {
		post.Author = *req.Author
	}
	if req.Published != nil {
		post.Published = *req.Published
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = req.FeaturedImage
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
	}
	post.UpdatedAt = time.Now().UTC()

	affected, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// The row vanished between the read and the write
		return nil, models.ErrPostNotFound
	}

	s.log.Info().Str("id", post.ID).Msg("Post updated")
	return post, nil
}

// Delete removes the post. Deleting an already-deleted id reports
// ErrPostNotFound.
func (s *postService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrPostNotFound
	}

	s.log.Info().Str("id", id).Msg("Post deleted")
	return nil
}
