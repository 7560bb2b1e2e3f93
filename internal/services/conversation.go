package services

import (
	"github.com/google/uuid"

	campus_errors "campushub/pkg/errors"
)

// ConversationKey selects a history view: a user key is the union of messages
// sent by or addressed to that user, a group key is the group's messages.
type ConversationKey struct {
	UserID  uuid.NullUUID
	GroupID uuid.NullUUID
}

// ResolveConversationKey builds a key from raw query values. Exactly one of
// userID/groupID must be supplied.
func ResolveConversationKey(userID, groupID string) (ConversationKey, error) {
	if (userID == "") == (groupID == "") {
		return ConversationKey{}, campus_errors.ErrInvalidInput
	}

	if userID != "" {
		parsed, err := uuid.Parse(userID)
		if err != nil {
			return ConversationKey{}, campus_errors.ErrInvalidInput
		}
		return ConversationKey{UserID: uuid.NullUUID{UUID: parsed, Valid: true}}, nil
	}

	parsed, err := uuid.Parse(groupID)
	if err != nil {
		return ConversationKey{}, campus_errors.ErrInvalidInput
	}
	return ConversationKey{GroupID: uuid.NullUUID{UUID: parsed, Valid: true}}, nil
}
