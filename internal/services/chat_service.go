package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"campushub/internal/domain/message"
	"campushub/internal/repository"
	campus_errors "campushub/pkg/errors"
)

// ChatService owns the messaging core: sending, history retrieval, reactions
// and poll voting. Reaction and vote mutations go through the repository's
// UpdateLocked, whose lock spans the whole read-modify-write, so the
// single-vote and no-duplicate invariants hold under concurrent requests.
type ChatService struct {
	messages repository.MessageRepository
}

func NewChatService(messages repository.MessageRepository) *ChatService {
	return &ChatService{messages: messages}
}

type SendMessageInput struct {
	SenderID         uuid.UUID
	ReceiverID       uuid.NullUUID
	GroupID          uuid.NullUUID
	Content          string
	FileURL          string
	ImageURL         string
	AudioURL         string
	PollOptions      []string
	ReplyToMessageID uuid.NullUUID
}

func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (message.Message, error) {
	if err := validateSend(in); err != nil {
		return message.Message{}, err
	}

	msg := message.Message{
		ID:               uuid.New(),
		SenderID:         in.SenderID,
		ReceiverID:       in.ReceiverID,
		GroupID:          in.GroupID,
		Content:          chatNullString(in.Content),
		FileURL:          chatNullString(in.FileURL),
		ImageURL:         chatNullString(in.ImageURL),
		AudioURL:         chatNullString(in.AudioURL),
		PollOptions:      datatypes.NewJSONSlice(in.PollOptions),
		Votes:            message.VoteSets{},
		Reactions:        message.ReactionSets{},
		ReplyToMessageID: in.ReplyToMessageID,
		CreatedAt:        time.Now(),
	}

	if err := s.messages.Create(ctx, &msg); err != nil {
		return message.Message{}, err
	}
	return msg, nil
}

func (s *ChatService) GetMessage(ctx context.Context, id uuid.UUID) (message.Message, error) {
	return s.messages.GetByID(ctx, id)
}

// ListMessages returns conversation history, oldest first. A user key selects
// every message the user sent or received across all peers; a group key
// selects the group's messages.
func (s *ChatService) ListMessages(ctx context.Context, key ConversationKey) ([]message.Message, error) {
	switch {
	case key.UserID.Valid:
		return s.messages.ListForUser(ctx, key.UserID.UUID)
	case key.GroupID.Valid:
		return s.messages.ListForGroup(ctx, key.GroupID.UUID)
	default:
		return nil, campus_errors.ErrInvalidInput
	}
}

// React adds userID under the given reaction kind. Reacting twice with the
// same kind is a no-op; reactions are additive only.
func (s *ChatService) React(ctx context.Context, messageID, userID uuid.UUID, kind string) (message.Message, error) {
	if userID == uuid.Nil || strings.TrimSpace(kind) == "" {
		return message.Message{}, campus_errors.ErrInvalidInput
	}

	var out message.Message
	err := s.messages.UpdateLocked(ctx, messageID, func(msg *message.Message) (bool, error) {
		changed := msg.Reactions.Add(kind, userID)
		out = *msg
		return changed, nil
	})
	if err != nil {
		return message.Message{}, err
	}
	return out, nil
}

// Vote records userID's vote for option. Check order: message exists, message
// is a poll, user has not voted yet, option is on the ballot. One vote per
// user per message; no change-vote or take-back.
func (s *ChatService) Vote(ctx context.Context, messageID, userID uuid.UUID, option string) (message.Message, error) {
	if userID == uuid.Nil {
		return message.Message{}, campus_errors.ErrInvalidInput
	}

	var out message.Message
	err := s.messages.UpdateLocked(ctx, messageID, func(msg *message.Message) (bool, error) {
		if !msg.IsPoll() {
			return false, campus_errors.ErrNotAPoll
		}
		if msg.Votes.HasVoted(userID) {
			return false, campus_errors.ErrAlreadyVoted
		}
		if !msg.HasOption(option) {
			return false, campus_errors.ErrInvalidOption
		}
		msg.Votes.Add(option, userID)
		out = *msg
		return true, nil
	})
	if err != nil {
		return message.Message{}, err
	}
	return out, nil
}

func validateSend(in SendMessageInput) error {
	if in.SenderID == uuid.Nil {
		return campus_errors.ErrInvalidInput
	}
	// Exactly one destination: a message addressed to both a receiver and a
	// group, or to neither, is unreachable by either history view.
	if in.ReceiverID.Valid == in.GroupID.Valid {
		return campus_errors.ErrInvalidInput
	}
	hasAttachment := in.FileURL != "" || in.ImageURL != "" || in.AudioURL != ""
	if strings.TrimSpace(in.Content) == "" && !hasAttachment && len(in.PollOptions) == 0 {
		return campus_errors.ErrInvalidInput
	}
	if len(in.PollOptions) > 0 {
		seen := make(map[string]struct{}, len(in.PollOptions))
		for _, option := range in.PollOptions {
			if strings.TrimSpace(option) == "" {
				return campus_errors.ErrInvalidInput
			}
			if _, dup := seen[option]; dup {
				return campus_errors.ErrInvalidInput
			}
			seen[option] = struct{}{}
		}
	}
	return nil
}

func chatNullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
