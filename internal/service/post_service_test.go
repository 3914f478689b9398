package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/blog-post-api/internal/config"
	"github.com/blog-post-api/internal/mocks"
	"github.com/blog-post-api/internal/models"
	"github.com/blog-post-api/internal/repository"
	"github.com/blog-post-api/internal/service"
	"github.com/rs/zerolog"
)

func setupPostService(repo *mocks.MockPostRepository) service.PostService {
	cfg := &config.Config{
		Site: config.SiteConfig{PostsPerPage: 10},
	}
	repos := &repository.Repositories{Post: repo}
	return service.NewServices(repos, cfg, zerolog.Nop()).Post
}

func seedPost(repo *mocks.MockPostRepository, id, slug string, published bool, tags []string, createdAt time.Time) *models.Post {
	post := &models.Post{
		ID:        id,
		Title:     "Title " + id,
		Content:   "Content " + id,
		Excerpt:   "Excerpt " + id,
		Slug:      slug,
		Author:    "author",
		Published: published,
		Tags:      tags,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	repo.Posts[id] = post
	return post
}

func TestCreatePost(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)
	ctx := context.Background()

	req := &models.CreatePostRequest{
		Title:     "A",
		Content:   "body",
		Excerpt:   "ex",
		Slug:      "a",
		Author:    "me",
		Published: true,
		Tags:      []string{"x", "y"},
	}

	first, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if first.ID == "" || first.ID == second.ID {
		t.Errorf("Expected unique ids, got %q and %q", first.ID, second.ID)
	}
	if !first.CreatedAt.Equal(first.UpdatedAt) {
		t.Errorf("Expected equal timestamps at creation, got %v and %v", first.CreatedAt, first.UpdatedAt)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "x" || first.Tags[1] != "y" {
		t.Errorf("Expected tag order preserved, got %v", first.Tags)
	}
}

func TestCreatePost_NilTags(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)

	post, err := svc.Create(context.Background(), &models.CreatePostRequest{Title: "A", Slug: "a"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.Tags == nil || len(post.Tags) != 0 {
		t.Errorf("Expected empty tags slice, got %v", post.Tags)
	}
}

func TestCreatePost_RepoError(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	repo.CreateError = errors.New("duplicate key value violates unique constraint")
	svc := setupPostService(repo)

	_, err := svc.Create(context.Background(), &models.CreatePostRequest{Title: "A", Slug: "a"})
	if err == nil {
		t.Fatal("Expected error from failed insert")
	}
}

func TestGetBySlug_UnpublishedHidden(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)
	ctx := context.Background()

	seedPost(repo, "id-1", "draft-post", false, nil, time.Now())

	_, err := svc.GetBySlug(ctx, "draft-post")
	if !errors.Is(err, models.ErrPostNotFound) {
		t.Errorf("Expected ErrPostNotFound for unpublished slug, got %v", err)
	}

	// The same post is visible through the admin path
	post, err := svc.GetByID(ctx, "id-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if post.Slug != "draft-post" {
		t.Errorf("Expected draft-post, got %q", post.Slug)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, models.ErrPostNotFound) {
		t.Errorf("Expected ErrPostNotFound, got %v", err)
	}
}

func TestListPublished_Pagination(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		seedPost(repo, fmt.Sprintf("id-%02d", i), fmt.Sprintf("slug-%02d", i), true, nil, base.Add(time.Duration(i)*time.Minute))
	}
	// Unpublished posts never count toward the public listing
	seedPost(repo, "draft", "slug-draft", false, nil, base)

	list, err := svc.ListPublished(ctx, models.ListParams{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}

	if list.Pagination.TotalPosts != 25 {
		t.Errorf("Expected 25 total posts, got %d", list.Pagination.TotalPosts)
	}
	if list.Pagination.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", list.Pagination.TotalPages)
	}
	if list.Pagination.CurrentPage != 3 {
		t.Errorf("Expected current page 3, got %d", list.Pagination.CurrentPage)
	}
	if len(list.Posts) != 5 {
		t.Errorf("Expected 5 posts on the last page, got %d", len(list.Posts))
	}

	// Newest first
	page1, _ := svc.ListPublished(ctx, models.ListParams{Page: 1, Limit: 10})
	if page1.Posts[0].ID != "id-24" {
		t.Errorf("Expected newest post first, got %s", page1.Posts[0].ID)
	}
}

func TestListPublished_LimitCappedAt50(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)

	list, err := svc.ListPublished(context.Background(), models.ListParams{Limit: 1000})
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if list.Pagination.PostsPerPage != 50 {
		t.Errorf("Expected limit capped to 50, got %d", list.Pagination.PostsPerPage)
	}
}

func TestListPublished_DefaultsFromConfig(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)

	list, err := svc.ListPublished(context.Background(), models.ListParams{})
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if list.Pagination.CurrentPage != 1 {
		t.Errorf("Expected default page 1, got %d", list.Pagination.CurrentPage)
	}
	if list.Pagination.PostsPerPage != 10 {
		t.Errorf("Expected configured posts per page 10, got %d", list.Pagination.PostsPerPage)
	}
}

func TestListPublished_TagFilter(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)
	ctx := context.Background()

	seedPost(repo, "id-1", "a", true, []string{"x"}, time.Now())

	list, err := svc.ListPublished(ctx, models.ListParams{Tag: "x"})
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if len(list.Posts) != 1 || list.Posts[0].Slug != "a" {
		t.Fatalf("Expected exactly the tagged post, got %d posts", len(list.Posts))
	}

	empty, err := svc.ListPublished(ctx, models.ListParams{Tag: "y"})
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if len(empty.Posts) != 0 {
		t.Errorf("Expected empty page for unknown tag, got %d posts", len(empty.Posts))
	}
	if empty.Pagination.TotalPosts != 0 {
		t.Errorf("Expected total_posts 0, got %d", empty.Pagination.TotalPosts)
	}
}

func TestListAll_IncludesUnpublished(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)

	seedPost(repo, "id-1", "live", true, nil, time.Now())
	seedPost(repo, "id-2", "draft", false, nil, time.Now())

	list, err := svc.ListAll(context.Background(), models.ListParams{})
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if list.Pagination.TotalPosts != 2 {
		t.Errorf("Expected 2 total posts, got %d", list.Pagination.TotalPosts)
	}
	if list.Pagination.PostsPerPage != 10 {
		t.Errorf("Expected admin default limit 10, got %d", list.Pagination.PostsPerPage)
	}
}

func TestUpdate_MergeSingleField(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)
	ctx := context.Background()

	created := time.Now().Add(-time.Hour)
	image := "cover.png"
	before := seedPost(repo, "id-1", "a", true, []string{"x"}, created)
	before.FeaturedImage = &image

	title := "New Title"
	after, err := svc.Update(ctx, "id-1", &models.UpdatePostRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if after.Title != "New Title" {
		t.Errorf("Expected title replaced, got %q", after.Title)
	}
	if after.Content != before.Content || after.Excerpt != before.Excerpt ||
		after.Slug != before.Slug || after.Author != before.Author ||
		after.Published != before.Published {
		t.Error("Expected untouched fields to keep their values")
	}
	if after.FeaturedImage == nil || *after.FeaturedImage != "cover.png" {
		t.Errorf("Expected featured image kept, got %v", after.FeaturedImage)
	}
	if len(after.Tags) != 1 || after.Tags[0] != "x" {
		t.Errorf("Expected tags kept, got %v", after.Tags)
	}
	if !after.CreatedAt.Equal(created) {
		t.Errorf("Expected created_at untouched, got %v", after.CreatedAt)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("Expected updated_at to strictly increase, got %v", after.UpdatedAt)
	}
}

func TestUpdate_AbsentFeaturedImageKeepsValue(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)
	ctx := context.Background()

	image := "cover.png"
	post := seedPost(repo, "id-1", "a", true, nil, time.Now().Add(-time.Hour))
	post.FeaturedImage = &image

	// An absent featured_image (and an explicit JSON null, which decodes
	// to the same nil) must NOT clear the stored value.
	title := "t"
	after, err := svc.Update(ctx, "id-1", &models.UpdatePostRequest{Title: &title, FeaturedImage: nil})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if after.FeaturedImage == nil || *after.FeaturedImage != "cover.png" {
		t.Errorf("Expected featured image preserved, got %v", after.FeaturedImage)
	}
}

func TestUpdate_AlwaysRefreshesTimestamp(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)

	before := seedPost(repo, "id-1", "a", true, nil, time.Now().Add(-time.Hour))

	// No fields supplied at all; updated_at still moves forward
	after, err := svc.Update(context.Background(), "id-1", &models.UpdatePostRequest{})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("Expected updated_at refreshed on no-op update, got %v", after.UpdatedAt)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)

	_, err := svc.Update(context.Background(), "missing", &models.UpdatePostRequest{})
	if !errors.Is(err, models.ErrPostNotFound) {
		t.Errorf("Expected ErrPostNotFound, got %v", err)
	}
}

func TestUpdate_RowVanishedBetweenReadAndWrite(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)

	seedPost(repo, "id-1", "a", true, nil, time.Now())
	repo.UpdateFunc = func(ctx context.Context, post *models.Post) (int64, error) {
		return 0, nil
	}

	_, err := svc.Update(context.Background(), "id-1", &models.UpdatePostRequest{})
	if !errors.Is(err, models.ErrPostNotFound) {
		t.Errorf("Expected ErrPostNotFound when zero rows affected, got %v", err)
	}
}

func TestDelete_SecondCallNotFound(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := setupPostService(repo)
	ctx := context.Background()

	seedPost(repo, "id-1", "a", true, nil, time.Now())

	if err := svc.Delete(ctx, "id-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, "id-1"); !errors.Is(err, models.ErrPostNotFound) {
		t.Errorf("Expected ErrPostNotFound on second delete, got %v", err)
	}
}
