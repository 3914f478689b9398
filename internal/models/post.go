package models

import (
	"errors"
	"time"
)

// ErrPostNotFound is returned when the requested post does not exist,
// or when an update or delete matched zero rows.
var ErrPostNotFound = errors.New("post not found")

// Post represents a blog post
type Post struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Content       string    `json:"content" db:"content"`
	Excerpt       string    `json:"excerpt" db:"excerpt"`
	Slug          string    `json:"slug" db:"slug"`
	Author        string    `json:"author" db:"author"`
	Published     bool      `json:"published" db:"published"`
	FeaturedImage *string   `json:"featured_image" db:"featured_image"`
	Tags          []string  `json:"tags" db:"-"` // Stored as JSONB in DB
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CreatePostRequest is the payload for creating a post. All fields
// except featured_image are required by the wire shape; no further
// validation is applied before the insert.
type CreatePostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Slug          string   `json:"slug"`
	Author        string   `json:"author"`
	Published     bool     `json:"published"`
	FeaturedImage *string  `json:"featured_image"`
	Tags          []string `json:"tags"`
}

// UpdatePostRequest is the payload for a partial update. A nil field
// keeps the current value. featured_image follows the same rule, so a
// JSON null cannot clear an existing image (it decodes to nil and is
// indistinguishable from an absent field).
type UpdatePostRequest struct {
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	Excerpt       *string   `json:"excerpt"`
	Slug          *string   `json:"slug"`
	Author        *string   `json:"author"`
	Published     *bool     `json:"published"`
	FeaturedImage *string   `json:"featured_image"`
	Tags          *[]string `json:"tags"`
}

// Pagination summarizes a page of list results
type Pagination struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalPosts   int `json:"total_posts"`
	PostsPerPage int `json:"posts_per_page"`
}

// PostList is the response envelope for list endpoints
type PostList struct {
	Posts      []*Post    `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// ListParams carries the normalized inputs for a list query
type ListParams struct {
	Page   int
	Limit  int
	Tag    string
	Search string
}
