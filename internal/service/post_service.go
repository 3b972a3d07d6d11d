package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/portfolio-site/backend/internal/importer"
	"github.com/portfolio-site/backend/internal/model"
	"github.com/portfolio-site/backend/internal/repository"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrPostExists   = errors.New("a post with this slug already exists")
	ErrInvalidPost  = errors.New("invalid post document")
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Footnote),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// RenderMarkdown converts post content to HTML. Raw HTML in the source is not passed through.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PostService handles blog posts.
type PostService struct {
	posts *repository.PostRepository
	log   zerolog.Logger
}

func NewPostService(posts *repository.PostRepository, log zerolog.Logger) *PostService {
	return &PostService{
		posts: posts,
		log:   log.With().Str("component", "post_service").Logger(),
	}
}

func (s *PostService) List(ctx context.Context, includePrivate bool) ([]model.Post, error) {
	posts, err := s.posts.List(ctx, includePrivate)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Get returns the raw post. Private posts are only visible to admins.
func (s *PostService) Get(ctx context.Context, slug string, callerIsAdmin bool) (*model.Post, error) {
	p, err := s.posts.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", slug, err)
	}
	if !p.IsPublic && !callerIsAdmin {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// Render returns a public post with its markdown converted to HTML.
func (s *PostService) Render(ctx context.Context, slug string) (*model.RenderedPost, error) {
	p, err := s.Get(ctx, slug, false)
	if err != nil {
		return nil, err
	}

	html, err := RenderMarkdown(p.Content)
	if err != nil {
		return nil, fmt.Errorf("render post %s: %w", slug, err)
	}
	return &model.RenderedPost{Slug: p.Slug, Title: p.Title, Date: p.Date, HTML: html}, nil
}

func (s *PostService) Create(ctx context.Context, req *model.CreatePostRequest) (*model.Post, error) {
	now := time.Now()
	p := &model.Post{
		Slug:     datedSlug(req.Title, now),
		Title:    req.Title,
		Date:     now.UTC().Format("2006-01-02"),
		IsPublic: true,
		Content:  req.Content,
	}
	if req.IsPublic != nil {
		p.IsPublic = *req.IsPublic
	}

	if err := s.posts.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrPostExists
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.log.Info().Str("slug", p.Slug).Msg("Post created")
	return p, nil
}

func (s *PostService) Update(ctx context.Context, slug string, req *model.UpdatePostRequest) (*model.Post, error) {
	current, err := s.Get(ctx, slug, true)
	if err != nil {
		return nil, err
	}

	current.Title = req.Title
	current.Content = req.Content
	if req.IsPublic != nil {
		current.IsPublic = *req.IsPublic
	}

	if err := s.posts.Update(ctx, current); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("update post %s: %w", slug, err)
	}
	return current, nil
}

func (s *PostService) TogglePublic(ctx context.Context, slug string) (*model.Post, error) {
	p, err := s.Get(ctx, slug, true)
	if err != nil {
		return nil, err
	}

	p.IsPublic = !p.IsPublic
	if err := s.posts.SetPublic(ctx, slug, p.IsPublic); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("toggle post %s: %w", slug, err)
	}
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, slug string) error {
	if err := s.posts.Delete(ctx, slug); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("delete post %s: %w", slug, err)
	}
	s.log.Info().Str("slug", slug).Msg("Post deleted")
	return nil
}

// Import inserts or replaces a post from a markdown file with YAML front matter.
func (s *PostService) Import(ctx context.Context, filename, doc string) (*model.Post, error) {
	p, err := PostFromDocument(filename, doc, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.posts.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("import post %s: %w", p.Slug, err)
	}
	return p, nil
}

// PostFromDocument builds a post from a front-matter markdown document.
// The slug is the file name without extension. Missing title, date and
// visibility default to the slug, today and public.
func PostFromDocument(filename, doc string, now time.Time) (*model.Post, error) {
	fm, body, err := importer.SplitFrontMatter(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPost, err)
	}

	base := filepath.Base(filename)
	slug := slugify(strings.TrimSuffix(base, filepath.Ext(base)))
	if slug == "" {
		slug = slugify(fm.Title)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: cannot derive a slug from %q", ErrInvalidPost, filename)
	}

	p := &model.Post{
		Slug:     slug,
		Title:    fm.Title,
		Date:     fm.Date,
		IsPublic: true,
		Content:  body,
	}
	if p.Title == "" {
		p.Title = slug
	}
	if p.Date, err = normalizeDate(fm.Date, now); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPost, err)
	}
	if fm.Public != nil {
		p.IsPublic = *fm.Public
	}
	return p, nil
}

func normalizeDate(raw string, now time.Time) (string, error) {
	if raw == "" {
		return now.UTC().Format("2006-01-02"), nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("date %q is neither YYYY-MM-DD nor RFC 3339", raw)
}
