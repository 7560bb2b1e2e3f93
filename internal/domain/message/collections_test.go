package message

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestReactionSetsAddIsIdempotent(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	r := ReactionSets{}
	if !r.Add("👍", alice) {
		t.Fatal("first reaction should report a change")
	}
	if r.Add("👍", alice) {
		t.Fatal("repeated reaction should be a no-op")
	}
	if !r.Add("👍", bob) {
		t.Fatal("second user should be able to add the same kind")
	}
	if !r.Add("🔥", alice) {
		t.Fatal("same user should be able to add a different kind")
	}

	if got := len(r["👍"]); got != 2 {
		t.Fatalf("expected 2 users under 👍, got %d", got)
	}
	if r["👍"][0] != alice || r["👍"][1] != bob {
		t.Fatal("reaction order should be insertion order")
	}
}

func TestVoteSetsSingleVotePerUser(t *testing.T) {
	alice := uuid.New()

	v := VoteSets{}
	if !v.Add("go", alice) {
		t.Fatal("first vote should succeed")
	}
	if v.Add("go", alice) {
		t.Fatal("repeat vote on same option should be rejected")
	}
	if v.Add("rust", alice) {
		t.Fatal("vote on another option should be rejected once a vote exists")
	}
	if !v.HasVoted(alice) {
		t.Fatal("HasVoted should report the recorded vote")
	}
	if v.HasVoted(uuid.New()) {
		t.Fatal("HasVoted should be false for users who never voted")
	}
}

func TestScanHandlesNullAndEmpty(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
	}{
		{"nil", nil},
		{"empty bytes", []byte{}},
		{"empty string", ""},
		{"null literal", []byte("null")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r ReactionSets
			if err := r.Scan(tc.value); err != nil {
				t.Fatalf("Scan(%v): %v", tc.value, err)
			}
			if r == nil {
				t.Fatal("Scan must never leave a nil map")
			}
			// Mutation without a presence check must be safe.
			r.Add("👍", uuid.New())
		})
	}
}

func TestVoteSetsRoundTrip(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	v := VoteSets{}
	v.Add("yes", alice)
	v.Add("no", bob)

	raw, err := v.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var back VoteSets
	if err := back.Scan(raw); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !back["yes"].Contains(alice) || !back["no"].Contains(bob) {
		t.Fatalf("round trip lost votes: %v", back)
	}
}

func TestNilMapsSerializeAsEmptyObject(t *testing.T) {
	var r ReactionSets
	raw, err := r.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw.([]byte), &decoded); err != nil {
		t.Fatalf("nil ReactionSets should serialize as a json object: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("expected empty object, got %v", decoded)
	}
}

func TestMessageIsPollAndHasOption(t *testing.T) {
	plain := Message{}
	if plain.IsPoll() {
		t.Fatal("message without options is not a poll")
	}

	poll := Message{PollOptions: []string{"a", "b"}}
	if !poll.IsPoll() {
		t.Fatal("message with options is a poll")
	}
	if !poll.HasOption("a") || poll.HasOption("c") {
		t.Fatal("HasOption should match the ballot exactly")
	}
}
