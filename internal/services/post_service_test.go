package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"

	"campushub/internal/domain/post"
	campus_errors "campushub/pkg/errors"
)

type fakePostRepository struct {
	mu    sync.Mutex
	posts map[uuid.UUID]post.Post
}

func newFakePostRepository() *fakePostRepository {
	return &fakePostRepository{posts: map[uuid.UUID]post.Post{}}
}

func (f *fakePostRepository) Create(_ context.Context, p *post.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts[p.ID] = *p
	return nil
}

func (f *fakePostRepository) GetByID(_ context.Context, id uuid.UUID) (post.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return post.Post{}, campus_errors.ErrNotFound
	}
	return p, nil
}

func (f *fakePostRepository) List(_ context.Context, page, limit int) ([]post.Post, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]post.Post, 0, len(f.posts))
	for _, p := range f.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (f *fakePostRepository) Update(_ context.Context, p post.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[p.ID]; !ok {
		return campus_errors.ErrNotFound
	}
	f.posts[p.ID] = p
	return nil
}

func (f *fakePostRepository) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return campus_errors.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func TestCreatePostValidation(t *testing.T) {
	svc := NewPostService(newFakePostRepository())
	ctx := context.Background()
	owner := uuid.New()

	if _, err := svc.Create(ctx, owner, CreatePostInput{Title: " ", Body: "body"}); !errors.Is(err, campus_errors.ErrInvalidInput) {
		t.Fatalf("blank title: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(ctx, owner, CreatePostInput{Title: "title", Body: ""}); !errors.Is(err, campus_errors.ErrInvalidInput) {
		t.Fatalf("blank body: expected ErrInvalidInput, got %v", err)
	}
	p, err := svc.Create(ctx, owner, CreatePostInput{Title: "title", Body: "body"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.UserID != owner {
		t.Fatal("post should record its author")
	}
}

func TestOnlyOwnerMayMutatePost(t *testing.T) {
	svc := NewPostService(newFakePostRepository())
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	p, err := svc.Create(ctx, owner, CreatePostInput{Title: "title", Body: "body"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, stranger, p.ID, UpdatePostInput{Title: "hijacked"}); !errors.Is(err, campus_errors.ErrForbidden) {
		t.Fatalf("foreign update: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, stranger, p.ID); !errors.Is(err, campus_errors.ErrForbidden) {
		t.Fatalf("foreign delete: expected ErrForbidden, got %v", err)
	}

	updated, err := svc.Update(ctx, owner, p.ID, UpdatePostInput{Title: "edited"})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "edited" || updated.Body != "body" {
		t.Fatalf("partial update went wrong: %+v", updated)
	}

	if err := svc.Delete(ctx, owner, p.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, p.ID); !errors.Is(err, campus_errors.ErrNotFound) {
		t.Fatalf("deleted post should be gone, got %v", err)
	}
}

func TestListPostsClampsPaging(t *testing.T) {
	repo := newFakePostRepository()
	svc := NewPostService(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, uuid.New(), CreatePostInput{Title: "t", Body: "b"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	items, total, err := svc.List(ctx, -5, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Fatalf("expected all 3 posts on defaulted paging, got %d/%d", len(items), total)
	}
}
