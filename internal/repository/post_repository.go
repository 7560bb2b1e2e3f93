package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub/internal/domain/post"
	campus_errors "campushub/pkg/errors"
)

type PostgresPostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) Create(ctx context.Context, p *post.Post) error {
	res := r.db.WithContext(ctx).Create(p)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	return nil
}

func (r *PostgresPostRepository) GetByID(ctx context.Context, id uuid.UUID) (post.Post, error) {
	var p post.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return post.Post{}, campus_errors.ErrNotFound
		}
		return post.Post{}, storageErr(err)
	}
	return p, nil
}

func (r *PostgresPostRepository) List(ctx context.Context, page, limit int) ([]post.Post, int64, error) {
	var posts []post.Post
	var total int64

	q := r.db.WithContext(ctx).Model(&post.Post{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storageErr(err)
	}

	offset := (page - 1) * limit
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, storageErr(err)
	}
	return posts, total, nil
}

func (r *PostgresPostRepository) Update(ctx context.Context, p post.Post) error {
	res := r.db.WithContext(ctx).Save(&p)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return campus_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&post.Post{}, "id = ?", id)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return campus_errors.ErrNotFound
	}
	return nil
}
