package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blog-post-api/internal/database"
	"github.com/blog-post-api/internal/models"
)

const postColumns = "id, title, content, excerpt, slug, author, published, featured_image, tags, created_at, updated_at"

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

// Create inserts a new post
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	tagsJSON, err := json.Marshal(post.Tags)
	if err != nil {
		return err
	}
	if post.Tags == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		INSERT INTO posts (id, title, content, excerpt, slug, author, published, featured_image, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.Excerpt, post.Slug, post.Author,
		post.Published, post.FeaturedImage, tagsJSON,
		post.CreatedAt, post.UpdatedAt,
	)
	return err
}

// GetByID retrieves a post by ID regardless of publication state
func (r *postRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := fmt.Sprintf("SELECT %s FROM posts WHERE id = $1", postColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetPublishedBySlug retrieves a published post by slug. An unpublished
// post with a matching slug is reported the same as a missing one.
func (r *postRepo) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	query := fmt.Sprintf("SELECT %s FROM posts WHERE slug = $1 AND published = true", postColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, slug))
}

// List retrieves a page of posts matching the filter, newest first
func (r *postRepo) List(ctx context.Context, filter PostFilter) ([]*models.Post, error) {
	where, args := buildWhere(filter)

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf("SELECT %s FROM posts%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		postColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Count returns the number of posts matching the filter's predicates.
// The window fields of the filter are ignored.
func (r *postRepo) Count(ctx context.Context, filter PostFilter) (int, error) {
	where, args := buildWhere(filter)

	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts"+where, args...).Scan(&count)
	return count, err
}

// Update persists all mutable columns of the post in a single statement
// matched by id, and reports how many rows were affected.
func (r *postRepo) Update(ctx context.Context, post *models.Post) (int64, error) {
	tagsJSON, err := json.Marshal(post.Tags)
	if err != nil {
		return 0, err
	}
	if post.Tags == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		UPDATE posts
		SET title = $1, content = $2, excerpt = $3, slug = $4, author = $5,
		    published = $6, featured_image = $7, tags = $8, updated_at = $9
		WHERE id = $10
	`
	result, err := r.db.ExecContext(ctx, query,
		post.Title, post.Content, post.Excerpt, post.Slug, post.Author,
		post.Published, post.FeaturedImage, tagsJSON, post.UpdatedAt,
		post.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Delete removes the post with the given id and reports how many rows
// were affected.
func (r *postRepo) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// buildWhere assembles the WHERE clause for the filter. User-supplied
// values are always bound as positional parameters, never interpolated
// into the SQL text.
func buildWhere(filter PostFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.PublishedOnly {
		conditions = append(conditions, "published = true")
	}
	if filter.Tag != "" {
		// Exact membership test against the JSONB tags array
		tagJSON, _ := json.Marshal(filter.Tag)
		args = append(args, string(tagJSON))
		conditions = append(conditions, fmt.Sprintf("tags @> $%d::jsonb", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", n, n))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	var featuredImage sql.NullString
	var tagsJSON []byte

	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.Excerpt, &post.Slug, &post.Author,
		&post.Published, &featuredImage, &tagsJSON, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if featuredImage.Valid {
		post.FeaturedImage = &featuredImage.String
	}
	if err := json.Unmarshal(tagsJSON, &post.Tags); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) scanOne(row *sql.Row) (*models.Post, error) {
	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}
