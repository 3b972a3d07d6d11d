package model

import "time"

// Post is a markdown blog post.
type Post struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	IsPublic  bool      `json:"is_public"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RenderedPost is the public read model of a post with its markdown rendered to HTML.
type RenderedPost struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Date  string `json:"date"`
	HTML  string `json:"html"`
}

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=255"`
	Content  string `json:"content" binding:"required"`
	IsPublic *bool  `json:"is_public"`
}

// UpdatePostRequest is the payload for updating a post. The date is kept.
type UpdatePostRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=255"`
	Content  string `json:"content" binding:"required"`
	IsPublic *bool  `json:"is_public"`
}
