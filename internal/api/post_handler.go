package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blog-post-api/internal/config"
	"github.com/blog-post-api/internal/models"
	"github.com/blog-post-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PostHandler handles the post CRUD endpoints
type PostHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// ListPublished handles GET /api/posts?page&limit&tag&search
func (h *PostHandler) ListPublished(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := h.services.Post.ListPublished(ctx, listParams(c))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list posts")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, list)
}

// ListAll handles GET /api/admin/posts?page&limit&tag&search and
// includes unpublished posts.
func (h *PostHandler) ListAll(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := h.services.Post.ListAll(ctx, listParams(c))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list posts")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetBySlug handles GET /api/posts/:slug
func (h *PostHandler) GetBySlug(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")

	post, err := h.services.Post.GetBySlug(ctx, slug)
	if err != nil {
		h.respondError(c, err, "slug", slug)
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetByID handles GET /api/admin/posts/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	post, err := h.services.Post.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err, "id", id)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Create handles POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	post, err := h.services.Post.Create(ctx, &req)
	if err != nil {
		h.log.Error().Err(err).Str("slug", req.Slug).Msg("Failed to create post")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Update handles PUT /api/admin/posts/:id with merge semantics
func (h *PostHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	post, err := h.services.Post.Update(ctx, id, &req)
	if err != nil {
		h.respondError(c, err, "id", id)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/admin/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.services.Post.Delete(ctx, id); err != nil {
		h.respondError(c, err, "id", id)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondError maps a service error to its status code. Failure
// responses carry no body; nothing about the error reaches the client.
func (h *PostHandler) respondError(c *gin.Context, err error, key, value string) {
	if errors.Is(err, models.ErrPostNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	h.log.Error().Err(err).Str(key, value).Msg("Post operation failed")
	c.Status(http.StatusInternalServerError)
}

// listParams extracts the pagination and filter query parameters.
// Unparseable numbers fall back to zero and get their defaults applied
// by the service; empty tag/search strings mean no filter.
func listParams(c *gin.Context) models.ListParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	return models.ListParams{
		Page:   page,
		Limit:  limit,
		Tag:    c.Query("tag"),
		Search: c.Query("search"),
	}
}
