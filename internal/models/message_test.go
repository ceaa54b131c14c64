package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRelayMessageStripped(t *testing.T) {
	relay := RelayMessage{
		Sender:             "alice",
		Recipient:          "bob",
		Content:            "hi",
		CreatedAt:          time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		RecipientPushToken: "ExponentPushToken[abc]",
		SenderFullName:     "Alice Tan",
	}

	msg := relay.Stripped()
	if msg.Sender != "alice" || msg.Recipient != "bob" || msg.Content != "hi" {
		t.Fatalf("unexpected stripped message: %+v", msg)
	}
	if !msg.CreatedAt.Equal(relay.CreatedAt) {
		t.Error("expected createdAt preserved")
	}
	if msg.Seen {
		t.Error("expected a fresh message to be unseen")
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "PushToken") || strings.Contains(string(data), "FullName") {
		t.Errorf("delivery hints leaked into persisted form: %s", data)
	}
}
