package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-site/backend/internal/model"
	"github.com/portfolio-site/backend/internal/response"
	"github.com/portfolio-site/backend/internal/service"
)

// PostHandler handles blog post endpoints.
type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type importPostRequest struct {
	Filename string `json:"filename" binding:"required,max=255"`
	Content  string `json:"content" binding:"required"`
}

// ListPublicPosts godoc
// GET /api/v1/posts
func (h *PostHandler) ListPublicPosts(c *gin.Context) {
	posts, err := h.postService.List(c.Request.Context(), false)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": posts})
}

// GetPublicPost godoc
// GET /api/v1/posts/:slug
// Returns a public post rendered to HTML.
func (h *PostHandler) GetPublicPost(c *gin.Context) {
	post, err := h.postService.Render(c.Request.Context(), c.Param("slug"))
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": post})
}

// ListPosts godoc
// GET /api/v1/admin/posts
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.List(c.Request.Context(), true)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": posts})
}

// GetPost godoc
// GET /api/v1/admin/posts/:slug
// Returns the raw markdown for editing.
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.Get(c.Request.Context(), c.Param("slug"), true)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": post})
}

// CreatePost godoc
// POST /api/v1/admin/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req model.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postService.Create(c.Request.Context(), &req)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"post": post})
}

// UpdatePost godoc
// PUT /api/v1/admin/posts/:slug
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req model.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postService.Update(c.Request.Context(), c.Param("slug"), &req)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": post})
}

// TogglePost godoc
// PATCH /api/v1/admin/posts/:slug
func (h *PostHandler) TogglePost(c *gin.Context) {
	post, err := h.postService.TogglePublic(c.Request.Context(), c.Param("slug"))
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": post})
}

// DeletePost godoc
// DELETE /api/v1/admin/posts/:slug
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ImportPost godoc
// POST /api/v1/admin/posts/import
// Creates or replaces a post from a markdown file with YAML front matter.
func (h *PostHandler) ImportPost(c *gin.Context) {
	var req importPostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postService.Import(c.Request.Context(), req.Filename, req.Content)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": post})
}
