package message

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Message represents the messages table. A message is addressed either to a
// single receiver (direct) or to a group, never both. PollOptions marks the
// message as a poll; Votes and Reactions are jsonb maps that are never null
// once the row exists.
type Message struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID         uuid.UUID                   `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID       uuid.NullUUID               `gorm:"type:uuid;index" json:"receiver_id,omitempty"`
	GroupID          uuid.NullUUID               `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Content          sql.NullString              `json:"content,omitempty"`
	FileURL          sql.NullString              `json:"file_url,omitempty"`
	ImageURL         sql.NullString              `json:"image_url,omitempty"`
	AudioURL         sql.NullString              `json:"audio_url,omitempty"`
	PollOptions      datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"poll_options,omitempty"`
	Votes            VoteSets                    `gorm:"type:jsonb;not null" json:"votes"`
	Reactions        ReactionSets                `gorm:"type:jsonb;not null" json:"reactions"`
	ReplyToMessageID uuid.NullUUID               `gorm:"type:uuid" json:"reply_to_message_id,omitempty"`
	CreatedAt        time.Time                   `gorm:"index" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

// IsPoll reports whether the message carries a ballot.
func (m *Message) IsPoll() bool {
	return len(m.PollOptions) > 0
}

// HasOption reports whether option is on the ballot.
func (m *Message) HasOption(option string) bool {
	for _, o := range m.PollOptions {
		if o == option {
			return true
		}
	}
	return false
}

// HasAttachment reports whether any attachment URL is set.
func (m *Message) HasAttachment() bool {
	return m.FileURL.Valid || m.ImageURL.Valid || m.AudioURL.Valid
}
