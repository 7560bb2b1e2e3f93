package message

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// UserIDs is an insertion-ordered set of user ids. Serialized as a json
// array, so first-reaction / first-vote order survives round trips.
type UserIDs []uuid.UUID

func (ids UserIDs) Contains(id uuid.UUID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// ReactionSets maps a reaction kind (an emoji or any short label) to the
// users who reacted with it.
type ReactionSets map[string]UserIDs

// Add inserts userID under kind, creating the set if kind is new.
// Returns false without modification when the user already reacted with kind.
func (r ReactionSets) Add(kind string, userID uuid.UUID) bool {
	ids := r[kind]
	if ids.Contains(userID) {
		return false
	}
	r[kind] = append(ids, userID)
	return true
}

func (r ReactionSets) Value() (driver.Value, error) {
	if r == nil {
		r = ReactionSets{}
	}
	return json.Marshal(r)
}

func (r *ReactionSets) Scan(value interface{}) error {
	return scanSets((*map[string]UserIDs)(r), value)
}

func (ReactionSets) GormDataType() string {
	return "jsonb"
}

// VoteSets maps a poll option label to the users who voted for it.
type VoteSets map[string]UserIDs

// HasVoted reports whether userID appears in any option's vote set.
func (v VoteSets) HasVoted(userID uuid.UUID) bool {
	for _, ids := range v {
		if ids.Contains(userID) {
			return true
		}
	}
	return false
}

// Add inserts userID under option, creating the entry if absent.
// Returns false without modification when the user already voted anywhere.
func (v VoteSets) Add(option string, userID uuid.UUID) bool {
	if v.HasVoted(userID) {
		return false
	}
	v[option] = append(v[option], userID)
	return true
}

func (v VoteSets) Value() (driver.Value, error) {
	if v == nil {
		v = VoteSets{}
	}
	return json.Marshal(v)
}

func (v *VoteSets) Scan(value interface{}) error {
	return scanSets((*map[string]UserIDs)(v), value)
}

func (VoteSets) GormDataType() string {
	return "jsonb"
}

// scanSets decodes a jsonb column into dst. NULL and empty values decode to
// an empty map, never nil, so callers can mutate without a presence check.
func scanSets(dst *map[string]UserIDs, value interface{}) error {
	*dst = map[string]UserIDs{}
	if value == nil {
		return nil
	}
	var raw []byte
	switch typed := value.(type) {
	case []byte:
		raw = typed
	case string:
		raw = []byte(typed)
	default:
		return errors.New("unsupported jsonb source type")
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return err
	}
	// Unmarshalling the literal `null` resets a map target to nil.
	if *dst == nil {
		*dst = map[string]UserIDs{}
	}
	return nil
}
