package repository

import (
	"context"

	"github.com/google/uuid"

	"campushub/internal/domain/message"
	"campushub/internal/domain/post"
	"campushub/internal/domain/user"
)

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (message.Message, error)
	// UpdateLocked loads the message while holding a lock that serializes
	// concurrent mutation of the same row, applies fn, and persists the
	// result when fn reports a change. The lock spans the whole
	// read-modify-write.
	UpdateLocked(ctx context.Context, id uuid.UUID, fn func(m *message.Message) (bool, error)) error
	Update(ctx context.Context, m message.Message) error

	// ListForUser returns every message sent by or addressed to the user,
	// across all peers, oldest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]message.Message, error)
	ListForGroup(ctx context.Context, groupID uuid.UUID) ([]message.Message, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByResetToken(ctx context.Context, token string) (user.User, error)
	Update(ctx context.Context, u user.User) error
}

type PostRepository interface {
	Create(ctx context.Context, p *post.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (post.Post, error)
	List(ctx context.Context, page, limit int) ([]post.Post, int64, error)
	Update(ctx context.Context, p post.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}
