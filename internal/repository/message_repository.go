package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campushub/internal/domain/message"
	campus_errors "campushub/pkg/errors"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	res := r.db.WithContext(ctx).Create(m)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || isUniqueViolation(res.Error) {
			return campus_errors.ErrAlreadyExists
		}
		return storageErr(res.Error)
	}
	return nil
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (message.Message, error) {
	var m message.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return message.Message{}, campus_errors.ErrNotFound
		}
		return message.Message{}, storageErr(err)
	}
	return m, nil
}

// UpdateLocked runs fn against the message inside a transaction holding a
// SELECT ... FOR UPDATE row lock, so the reaction/vote read-modify-write is
// serializable per message. The row is saved only when fn reports a change.
func (r *PostgresMessageRepository) UpdateLocked(ctx context.Context, id uuid.UUID, fn func(m *message.Message) (bool, error)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m message.Message
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&m).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return campus_errors.ErrNotFound
			}
			return storageErr(err)
		}

		changed, err := fn(&m)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		if err := tx.Save(&m).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
}

func (r *PostgresMessageRepository) Update(ctx context.Context, m message.Message) error {
	res := r.db.WithContext(ctx).Save(&m)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return campus_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresMessageRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]message.Message, error) {
	var messages []message.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return messages, nil
}

func (r *PostgresMessageRepository) ListForGroup(ctx context.Context, groupID uuid.UUID) ([]message.Message, error) {
	var messages []message.Message
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return messages, nil
}
