package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"campushub/internal/domain/post"
	"campushub/internal/repository"
	campus_errors "campushub/pkg/errors"
)

type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

type CreatePostInput struct {
	Title    string
	Body     string
	ImageURL string
}

func (s *PostService) Create(ctx context.Context, userID uuid.UUID, in CreatePostInput) (post.Post, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Body) == "" {
		return post.Post{}, campus_errors.ErrInvalidInput
	}

	p := post.Post{
		ID:        uuid.New(),
		Title:     in.Title,
		Body:      in.Body,
		Image:     authNullString(in.ImageURL),
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.postRepo.Create(ctx, &p); err != nil {
		return post.Post{}, err
	}
	return p, nil
}

func (s *PostService) List(ctx context.Context, page, limit int) ([]post.Post, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.postRepo.List(ctx, page, limit)
}

func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) (post.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

type UpdatePostInput struct {
	Title string
	Body  string
}

// Update applies non-empty fields; only the owner may mutate.
func (s *PostService) Update(ctx context.Context, userID, postID uuid.UUID, in UpdatePostInput) (post.Post, error) {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return post.Post{}, err
	}
	if p.UserID != userID {
		return post.Post{}, campus_errors.ErrForbidden
	}

	if in.Title != "" {
		p.Title = in.Title
	}
	if in.Body != "" {
		p.Body = in.Body
	}
	p.UpdatedAt = time.Now()

	if err := s.postRepo.Update(ctx, p); err != nil {
		return post.Post{}, err
	}
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return campus_errors.ErrForbidden
	}
	return s.postRepo.Delete(ctx, postID)
}
