package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nde-labs/campusecho/internal/domain"
)

// CreatePost runs the admission policy once at creation: delegates, admins and
// high-reliability authors publish immediately, everyone else lands in the
// PENDING queue. Only admins publish university-wide; every other author is
// scoped to their own department.
func (s *Service) CreatePost(ctx context.Context, authorID uuid.UUID, req CreatePostRequest) (PostResponse, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return PostResponse{}, domain.ErrInvalidInput
	}
	category := domain.PostCategory(strings.ToUpper(strings.TrimSpace(req.Category)))
	switch category {
	case domain.PostCategoryInfo, domain.PostCategoryAlert, domain.PostCategoryEvent, domain.PostCategoryOfficial:
	default:
		return PostResponse{}, domain.ErrInvalidInput
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return PostResponse{}, domain.ErrAuthorNotFound
		}
		return PostResponse{}, err
	}

	status := domain.PostStatusPending
	if author.CanPublishDirectly() {
		status = domain.PostStatusPublished
	}
	visibility := domain.VisibilityScope{}
	if author.Role != domain.RoleAdmin {
		dept := author.Department
		visibility.Department = &dept
	}

	now := s.nowFn()
	post := domain.Post{
		PostID:     uuid.New(),
		AuthorID:   authorID,
		Title:      title,
		Content:    content,
		Category:   category,
		Status:     status,
		Source:     domain.PostSourceCommunity,
		Visibility: visibility,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	saved, err := s.posts.Save(ctx, post)
	if err != nil {
		return PostResponse{}, fmt.Errorf("create post: %w", err)
	}
	if saved.Status == domain.PostStatusPublished {
		s.invalidateFeedCache(ctx)
	}
	return toPostResponse(saved), nil
}

// ListPublishedFeed serves the public feed through a short-lived cache.
func (s *Service) ListPublishedFeed(ctx context.Context) ([]PostResponse, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, feedCacheKey); err == nil && raw != "" {
			var cached []PostResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	posts, err := s.posts.ListPublished(ctx, s.cfg.FeedPageSize)
	if err != nil {
		return nil, err
	}
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}

	if s.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			_ = s.cache.Set(ctx, feedCacheKey, string(raw), s.cfg.FeedCacheTTL)
		}
	}
	return out, nil
}

func (s *Service) GetPost(ctx context.Context, postID uuid.UUID) (PostResponse, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return PostResponse{}, err
	}
	return toPostResponse(post), nil
}
