package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	campus_errors "campushub/pkg/errors"
)

func TestResolveConversationKey(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()

	cases := []struct {
		name    string
		userID  string
		groupID string
		wantErr bool
	}{
		{"user key", userID.String(), "", false},
		{"group key", "", groupID.String(), false},
		{"neither", "", "", true},
		{"both", userID.String(), groupID.String(), true},
		{"malformed user id", "not-a-uuid", "", true},
		{"malformed group id", "", "not-a-uuid", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, err := ResolveConversationKey(tc.userID, tc.groupID)
			if tc.wantErr {
				if !errors.Is(err, campus_errors.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if key.UserID.Valid == key.GroupID.Valid {
				t.Fatal("resolved key must select exactly one view")
			}
			if tc.userID != "" && key.UserID.UUID != userID {
				t.Fatalf("wrong user id: %s", key.UserID.UUID)
			}
			if tc.groupID != "" && key.GroupID.UUID != groupID {
				t.Fatalf("wrong group id: %s", key.GroupID.UUID)
			}
		})
	}
}
